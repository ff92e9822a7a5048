package controllers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"plannr/internal/delivery/http/middleware"
	"plannr/internal/delivery/http/views"
	"plannr/internal/domain"

	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

var testCookie = middleware.SessionCookie{Name: "plannr_session", TTL: time.Hour}

var (
	alice = &domain.User{ID: 1, Email: "alice@example.com", FirstName: "Alice", LastName: "Smith"}
	bob   = &domain.User{ID: 2, Email: "bob@example.com", FirstName: "Bob", LastName: "Jones"}
)

func testBase(t *testing.T) Base {
	t.Helper()
	r, err := views.NewRenderer(time.UTC)
	require.NoError(t, err)
	return Base{Logger: testLogger, Views: r}
}

func signedIn(u *domain.User) *domain.Session {
	return &domain.Session{ID: "sid-" + u.Email, State: domain.SessionAuthenticated, User: u, Token: "tok"}
}

func anonymous() *domain.Session {
	return &domain.Session{State: domain.SessionAnonymous}
}

// newRequest builds a request carrying sess, a urlencoded form when form is non-nil and
// the given path values.
func newRequest(method, target string, form url.Values, sess *domain.Session, pathValues ...string) *http.Request {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for i := 0; i+1 < len(pathValues); i += 2 {
		req.SetPathValue(pathValues[i], pathValues[i+1])
	}
	return req.WithContext(middleware.SetSession(req.Context(), sess))
}

// fakeSessions implements domain.SessionService.
type fakeSessions struct {
	user       *domain.User
	signInErr  error
	signUpErr  error
	signOutErr error
	lastCreds  domain.Credentials
	lastSignUp domain.SignUpInput
	signIns    int
	signOuts   int
}

func (f *fakeSessions) Bootstrap(context.Context, string) *domain.Session { return anonymous() }

func (f *fakeSessions) SignIn(_ context.Context, sess *domain.Session, creds domain.Credentials) error {
	f.signIns++
	f.lastCreds = creds
	if f.signInErr != nil {
		return f.signInErr
	}
	return sess.SignedIn("new-sid", "tok", f.user)
}

func (f *fakeSessions) SignUp(_ context.Context, sess *domain.Session, in domain.SignUpInput) error {
	f.lastSignUp = in
	if f.signUpErr != nil {
		return f.signUpErr
	}
	return sess.SignedIn("new-sid", "tok", &domain.User{ID: 9, Email: in.Email, FirstName: in.FirstName})
}

func (f *fakeSessions) SignOut(_ context.Context, sess *domain.Session) error {
	f.signOuts++
	if f.signOutErr != nil {
		return f.signOutErr
	}
	return sess.SignedOut()
}

// fakeEvents implements domain.EventService.
type fakeEvents struct {
	events     []*domain.Event
	listErr    error
	lastFilter domain.EventFilter
	lastScope  string
	event      *domain.Event
	getErr     error
	detail     *domain.EventDetail
	lastStatus domain.InviteStatus
	created    []domain.EventInput
	createErr  error
	updated    []domain.EventInput
	updateErr  error
	deleted    []int64
	deleteErr  error
	public     *domain.PublicEvent
	publicErr  error
}

func (f *fakeEvents) ListEvents(_ context.Context, scope string, filter domain.EventFilter) ([]*domain.Event, error) {
	f.lastScope = scope
	f.lastFilter = filter
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return f.events, f.listErr
}

func (f *fakeEvents) GetEvent(context.Context, int64) (*domain.Event, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.event, nil
}

func (f *fakeEvents) GetEventDetail(_ context.Context, scope string, viewer *domain.User, _ int64, status domain.InviteStatus) (*domain.EventDetail, error) {
	f.lastScope = scope
	f.lastStatus = status
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.detail != nil {
		return f.detail, nil
	}
	return &domain.EventDetail{Event: f.event, IsHost: f.event.IsHostedBy(viewer), InviteStatus: domain.InviteAccepted}, nil
}

func (f *fakeEvents) CreateEvent(_ context.Context, in domain.EventInput) (*domain.Event, error) {
	f.created = append(f.created, in)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &domain.Event{ID: 42, Title: in.Title, StartTime: in.StartTime, EndTime: in.EndTime}, nil
}

func (f *fakeEvents) UpdateEvent(_ context.Context, id int64, in domain.EventInput) (*domain.Event, error) {
	f.updated = append(f.updated, in)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &domain.Event{ID: id, Title: in.Title}, nil
}

func (f *fakeEvents) DeleteEvent(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

func (f *fakeEvents) GetPublicEvent(context.Context, string) (*domain.PublicEvent, error) {
	if f.publicErr != nil {
		return nil, f.publicErr
	}
	return f.public, nil
}

// fakeInvites implements domain.InviteService.
type fakeInvites struct {
	invites    []*domain.Invite
	listErr    error
	lastFilter domain.InviteFilter
	lastScope  string
	created    []domain.InviteInput
	createErr  error
	responses  []domain.InviteStatus
	respondErr error
}

func (f *fakeInvites) ListInvites(_ context.Context, scope string, filter domain.InviteFilter) ([]*domain.Invite, error) {
	f.lastScope = scope
	f.lastFilter = filter
	return f.invites, f.listErr
}

func (f *fakeInvites) CreateInvite(_ context.Context, _ int64, in domain.InviteInput) (*domain.Invite, error) {
	f.created = append(f.created, in)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &domain.Invite{ID: 5, Email: in.Email, Role: in.Role, Status: domain.InvitePending}, nil
}

func (f *fakeInvites) Respond(_ context.Context, token string, status domain.InviteStatus) (*domain.Invite, error) {
	f.responses = append(f.responses, status)
	if f.respondErr != nil {
		return nil, f.respondErr
	}
	return &domain.Invite{ID: 5, Token: token, Status: status}, nil
}
