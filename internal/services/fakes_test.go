package services

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"plannr/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// stepClock is a clock tests can move forward.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stepClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// fakeAuthAPI implements domain.AuthAPI.
type fakeAuthAPI struct {
	mu          sync.Mutex
	user        *domain.User
	token       string
	signInErr   error
	signUpErr   error
	signUpToken *string
	meErr       error
	signOutErr  error
	meCalls     int
	meTokens    []string
	signInCalls int
	signOuts    []string
}

func (f *fakeAuthAPI) Me(ctx context.Context) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.meCalls++
	token, _ := domain.BackendTokenFromContext(ctx)
	f.meTokens = append(f.meTokens, token)
	if f.meErr != nil {
		return nil, f.meErr
	}
	return f.user, nil
}

func (f *fakeAuthAPI) SignUp(_ context.Context, in domain.SignUpInput) (*domain.User, string, error) {
	if f.signUpErr != nil {
		return nil, "", f.signUpErr
	}
	token := f.token
	if f.signUpToken != nil {
		token = *f.signUpToken
	}
	return &domain.User{ID: f.user.ID, Email: in.Email, FirstName: in.FirstName, LastName: in.LastName}, token, nil
}

func (f *fakeAuthAPI) SignIn(_ context.Context, _ domain.Credentials) (*domain.User, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signInCalls++
	if f.signInErr != nil {
		return nil, "", f.signInErr
	}
	return f.user, f.token, nil
}

func (f *fakeAuthAPI) SignOut(ctx context.Context) error {
	token, _ := domain.BackendTokenFromContext(ctx)
	f.signOuts = append(f.signOuts, token)
	return f.signOutErr
}

// fakeSealer "encrypts" by prefixing, which is enough to prove tokens are sealed before
// storage and opened after.
type fakeSealer struct{}

func (fakeSealer) Seal(p []byte) ([]byte, error) { return append([]byte("sealed:"), p...), nil }

func (fakeSealer) Open(b []byte) ([]byte, error) {
	s, ok := strings.CutPrefix(string(b), "sealed:")
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	return []byte(s), nil
}

// fakeInspector reports a fixed expiry for every token in exp.
type fakeInspector struct {
	exp map[string]time.Time
}

func (f fakeInspector) ExpiresAt(token string) (time.Time, bool) {
	t, ok := f.exp[token]
	return t, ok
}

// fakeEventAPI implements domain.EventAPI.
type fakeEventAPI struct {
	mu           sync.Mutex
	byRole       map[domain.EventRole][]*domain.Event
	event        *domain.Event
	getErr       error
	byToken      *domain.Event
	participants []*domain.Participant
	partErr      error
	listCalls    []domain.EventFilter
	deleted      []int64
}

func (f *fakeEventAPI) ListEvents(_ context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls = append(f.listCalls, filter)
	return f.byRole[filter.Role], nil
}

func (f *fakeEventAPI) CreateEvent(_ context.Context, in domain.EventInput) (*domain.Event, error) {
	return &domain.Event{ID: 1, Title: in.Title, StartTime: in.StartTime, EndTime: in.EndTime}, nil
}

func (f *fakeEventAPI) GetEvent(_ context.Context, id int64) (*domain.Event, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.event, nil
}

func (f *fakeEventAPI) UpdateEvent(_ context.Context, id int64, in domain.EventInput) (*domain.Event, error) {
	return &domain.Event{ID: id, Title: in.Title}, nil
}

func (f *fakeEventAPI) DeleteEvent(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeEventAPI) GetEventByToken(_ context.Context, token string) (*domain.Event, error) {
	if f.byToken == nil {
		return nil, &domain.APIError{Op: "get event by token", StatusCode: 404, Message: "Event not found", Err: domain.ErrNotFound}
	}
	return f.byToken, nil
}

func (f *fakeEventAPI) ListParticipants(_ context.Context, eventID int64) ([]*domain.Participant, error) {
	return f.participants, f.partErr
}

// fakeInviteAPI implements domain.InviteAPI.
type fakeInviteAPI struct {
	mu        sync.Mutex
	byStatus  map[domain.InviteStatus][]*domain.Invite
	listErr   error
	listCalls []domain.InviteFilter
	created   []domain.InviteInput
	responses []domain.InviteStatus

	// a list for the hold status signals started, then waits for release or cancellation
	hold    domain.InviteStatus
	started chan struct{}
	release chan struct{}
}

func (f *fakeInviteAPI) CreateInvite(_ context.Context, eventID int64, in domain.InviteInput) (*domain.Invite, error) {
	f.created = append(f.created, in)
	return &domain.Invite{ID: 1, Email: in.Email, Role: in.Role, Status: domain.InvitePending}, nil
}

func (f *fakeInviteAPI) ListInvites(ctx context.Context, filter domain.InviteFilter) ([]*domain.Invite, error) {
	if f.started != nil && filter.Status == f.hold {
		f.started <- struct{}{}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-f.release:
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls = append(f.listCalls, filter)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.byStatus[filter.Status], nil
}

func (f *fakeInviteAPI) RespondToInvite(_ context.Context, token string, status domain.InviteStatus) (*domain.Invite, error) {
	f.responses = append(f.responses, status)
	return &domain.Invite{ID: 1, Token: token, Status: status}, nil
}
