package api

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"plannr/internal/domain"
)

// The backend speaks snake_case; everything past this file uses domain types.
// Each entity has exactly one pair of mapping functions here.

var wireTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// wireTime accepts RFC 3339 and the backend's zone-less ISO timestamps, which are UTC.
// It always marshals as RFC 3339 in UTC.
type wireTime struct {
	time.Time
}

func (t *wireTime) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	parsed, err := parseWireTime(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t wireTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(time.RFC3339))
}

func parseWireTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range wireTimeLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("timestamp %q is not ISO-8601", s)
}

type userWire struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsRegistered *bool  `json:"is_registered,omitempty"`
}

// userFromWire returns nil when the payload does not identify a user.
func userFromWire(w userWire) *domain.User {
	if w.ID == 0 || w.Email == "" {
		return nil
	}
	registered := true
	if w.IsRegistered != nil {
		registered = *w.IsRegistered
	}
	return &domain.User{
		ID:           w.ID,
		Email:        w.Email,
		FirstName:    w.FirstName,
		LastName:     w.LastName,
		IsRegistered: registered,
	}
}

type signUpWire struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func signUpToWire(in domain.SignUpInput) signUpWire {
	return signUpWire{
		Email:     in.Email,
		Password:  in.Password,
		FirstName: in.FirstName,
		LastName:  in.LastName,
	}
}

type credentialsWire struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func credentialsToWire(c domain.Credentials) credentialsWire {
	return credentialsWire{Email: c.Email, Password: c.Password}
}

type eventWire struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Description  *string  `json:"description"`
	StartTime    wireTime `json:"start_time"`
	EndTime      wireTime `json:"end_time"`
	HostID       int64    `json:"host_id"`
	HostName     string   `json:"host_name"`
	Participants []string `json:"participants,omitempty"`
}

func eventFromWire(w eventWire) *domain.Event {
	e := &domain.Event{
		ID:           w.ID,
		Title:        w.Title,
		StartTime:    w.StartTime.Time,
		EndTime:      w.EndTime.Time,
		HostID:       w.HostID,
		HostName:     w.HostName,
		Participants: w.Participants,
	}
	if w.Description != nil {
		e.Description = *w.Description
	}
	return e
}

func eventsFromWire(ws []eventWire) []*domain.Event {
	out := make([]*domain.Event, 0, len(ws))
	for _, w := range ws {
		out = append(out, eventFromWire(w))
	}
	return out
}

func summaryFromWire(w eventWire) domain.EventSummary {
	e := eventFromWire(w)
	return domain.EventSummary{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		HostID:      e.HostID,
		HostName:    e.HostName,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
	}
}

type eventInputWire struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	StartTime   wireTime `json:"start_time"`
	EndTime     wireTime `json:"end_time"`
}

func eventInputToWire(in domain.EventInput) eventInputWire {
	return eventInputWire{
		Title:       in.Title,
		Description: in.Description,
		StartTime:   wireTime{in.StartTime},
		EndTime:     wireTime{in.EndTime},
	}
}

type participantWire struct {
	ParticipantName string `json:"participant_name"`
	Role            string `json:"role"`
}

func participantsFromWire(ws []participantWire) []*domain.Participant {
	out := make([]*domain.Participant, 0, len(ws))
	for _, w := range ws {
		out = append(out, &domain.Participant{Name: w.ParticipantName, Role: domain.EventRole(w.Role)})
	}
	return out
}

type inviteWire struct {
	ID       int64      `json:"id"`
	Token    string     `json:"token"`
	Email    string     `json:"email"`
	Role     string     `json:"role"`
	Status   string     `json:"status"`
	UserName *string    `json:"user_name"`
	Event    *eventWire `json:"event"`
}

func inviteFromWire(w inviteWire) *domain.Invite {
	inv := &domain.Invite{
		ID:     w.ID,
		Token:  w.Token,
		Email:  w.Email,
		Role:   domain.EventRole(w.Role),
		Status: domain.InviteStatus(w.Status),
	}
	if w.UserName != nil {
		inv.UserName = *w.UserName
	}
	if w.Event != nil {
		inv.Event = summaryFromWire(*w.Event)
	}
	return inv
}

func invitesFromWire(ws []inviteWire) []*domain.Invite {
	out := make([]*domain.Invite, 0, len(ws))
	for _, w := range ws {
		out = append(out, inviteFromWire(w))
	}
	return out
}

type inviteInputWire struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

func inviteInputToWire(in domain.InviteInput) inviteInputWire {
	return inviteInputWire{Email: in.Email, Role: string(in.Role)}
}

type inviteResponseWire struct {
	Status string `json:"status"`
}
