package controllers

import (
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"plannr/internal/delivery/http/views"
	"plannr/internal/domain"
)

// emailRegex matches a simple email format (local@domain with at least one dot in domain).
var emailRegex = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// MaxDescriptionLength is the longest event description, counted in characters.
const MaxDescriptionLength = 200

const (
	msgEmail        = "Please enter a valid email address"
	msgFirstName    = "Please enter your first name"
	msgLastName     = "Please enter your last name"
	msgPassword     = "Please enter your password"
	msgTitle        = "Please enter a title"
	msgTimes        = "Please select start and end times"
	msgEndAfter     = "End time must be after start time"
	msgDescription  = "Description must be 200 characters or fewer"
	msgRole         = "Please select a role"
	msgInviteStatus = "Please choose accept or decline"
)

func validEmail(s string) bool {
	return emailRegex.MatchString(strings.TrimSpace(s))
}

// SignUpForm holds the sign-up fields as typed. The password is never echoed back.
type SignUpForm struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
}

func signUpFormFrom(r *http.Request) SignUpForm {
	return SignUpForm{
		Email:     strings.TrimSpace(r.PostFormValue("email")),
		FirstName: strings.TrimSpace(r.PostFormValue("first_name")),
		LastName:  strings.TrimSpace(r.PostFormValue("last_name")),
		Password:  r.PostFormValue("password"),
	}
}

// Validate implements Validator.
func (f SignUpForm) Validate() []string {
	var errs []string
	if !validEmail(f.Email) {
		errs = append(errs, msgEmail)
	}
	if f.FirstName == "" {
		errs = append(errs, msgFirstName)
	}
	if f.LastName == "" {
		errs = append(errs, msgLastName)
	}
	if f.Password == "" {
		errs = append(errs, msgPassword)
	}
	return errs
}

func (f SignUpForm) Input() domain.SignUpInput {
	return domain.SignUpInput{Email: f.Email, Password: f.Password, FirstName: f.FirstName, LastName: f.LastName}
}

type SignInForm struct {
	Email    string
	Password string
}

func signInFormFrom(r *http.Request) SignInForm {
	return SignInForm{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
}

// Validate implements Validator.
func (f SignInForm) Validate() []string {
	var errs []string
	if !validEmail(f.Email) {
		errs = append(errs, msgEmail)
	}
	if f.Password == "" {
		errs = append(errs, msgPassword)
	}
	return errs
}

func (f SignInForm) Credentials() domain.Credentials {
	return domain.Credentials{Email: f.Email, Password: f.Password}
}

// eventRules checks an event in rule order. A zero time counts as not selected.
func eventRules(title string, start, end time.Time, description string) []string {
	var errs []string
	if strings.TrimSpace(title) == "" {
		errs = append(errs, msgTitle)
	}
	if start.IsZero() || end.IsZero() {
		errs = append(errs, msgTimes)
	} else if !end.After(start) {
		errs = append(errs, msgEndAfter)
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		errs = append(errs, msgDescription)
	}
	return errs
}

// EventForm holds the event editor's fields as typed. Times are datetime-local values
// read in the renderer's location.
type EventForm struct {
	Title       string
	StartTime   string
	EndTime     string
	Description string

	loc *time.Location
}

func eventFormFrom(r *http.Request, loc *time.Location) EventForm {
	return EventForm{
		Title:       strings.TrimSpace(r.PostFormValue("title")),
		StartTime:   r.PostFormValue("start_time"),
		EndTime:     r.PostFormValue("end_time"),
		Description: strings.TrimSpace(strings.ReplaceAll(r.PostFormValue("description"), "\r\n", "\n")),
		loc:         loc,
	}
}

func eventFormFromEvent(e *domain.Event, loc *time.Location) EventForm {
	return EventForm{
		Title:       e.Title,
		StartTime:   e.StartTime.In(loc).Format(views.InputTimeLayout),
		EndTime:     e.EndTime.In(loc).Format(views.InputTimeLayout),
		Description: e.Description,
		loc:         loc,
	}
}

func (f EventForm) parse(s string) time.Time {
	loc := f.loc
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(views.InputTimeLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Validate implements Validator.
func (f EventForm) Validate() []string {
	return eventRules(f.Title, f.parse(f.StartTime), f.parse(f.EndTime), f.Description)
}

func (f EventForm) Input() domain.EventInput {
	return domain.EventInput{
		Title:       f.Title,
		Description: f.Description,
		StartTime:   f.parse(f.StartTime).UTC(),
		EndTime:     f.parse(f.EndTime).UTC(),
	}
}

type InviteForm struct {
	Email string
	Role  domain.EventRole
}

func inviteFormFrom(r *http.Request) InviteForm {
	return InviteForm{
		Email: strings.TrimSpace(r.PostFormValue("email")),
		Role:  domain.EventRole(r.PostFormValue("role")),
	}
}

// Validate implements Validator.
func (f InviteForm) Validate() []string {
	var errs []string
	if !validEmail(f.Email) {
		errs = append(errs, msgEmail)
	}
	if !f.Role.Valid() {
		errs = append(errs, msgRole)
	}
	return errs
}

func (f InviteForm) Input() domain.InviteInput {
	return domain.InviteInput{Email: f.Email, Role: f.Role}
}
