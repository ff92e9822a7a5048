package domain

import (
	"context"
	"fmt"
)

// SessionState is where a browser request stands in resolving who is signed in.
type SessionState string

const (
	SessionUninitialized SessionState = "uninitialized"
	SessionResolving     SessionState = "resolving"
	SessionAuthenticated SessionState = "authenticated"
	SessionAnonymous     SessionState = "anonymous"
)

// Session is the per-request answer to "is someone signed in, and as whom". Its state only
// changes through the transition methods below; an illegal move returns
// ErrInvalidSessionTransition and leaves the session untouched.
type Session struct {
	// ID is the raw browser session id sent in the cookie. Empty unless authenticated.
	ID    string
	State SessionState
	User  *User
	// Token is the backend session token. Empty unless authenticated.
	Token string
	// Stale reports that the browser's session id no longer refers to a usable session
	// and its cookie should be dropped. A session that could not be confirmed because
	// something was unreachable is anonymous but not stale.
	Stale bool
}

func NewSession() *Session {
	return &Session{State: SessionUninitialized}
}

func (s *Session) BeginResolve() error {
	if s.State != SessionUninitialized {
		return s.invalid("begin resolve")
	}
	s.State = SessionResolving
	return nil
}

// Resolved completes a bootstrap with the user the backend confirmed for id and token.
func (s *Session) Resolved(id, token string, u *User) error {
	if s.State != SessionResolving || u == nil {
		return s.invalid("resolve")
	}
	s.ID, s.Token, s.User = id, token, u
	s.State = SessionAuthenticated
	return nil
}

// ResolveFailed ends a bootstrap anonymously. Any failure to resolve lands here.
func (s *Session) ResolveFailed() error {
	if s.State != SessionResolving {
		return s.invalid("fail resolve")
	}
	s.clear()
	return nil
}

// SignedIn is legal from any state and replaces whoever was signed in.
func (s *Session) SignedIn(id, token string, u *User) error {
	if u == nil {
		return s.invalid("sign in")
	}
	s.ID, s.Token, s.User = id, token, u
	s.State = SessionAuthenticated
	s.Stale = false
	return nil
}

func (s *Session) SignedOut() error {
	if s.State != SessionAuthenticated {
		return s.invalid("sign out")
	}
	s.clear()
	return nil
}

// IsLoading is true until the session has been resolved one way or the other.
func (s *Session) IsLoading() bool {
	return s.State == SessionUninitialized || s.State == SessionResolving
}

func (s *Session) IsAuthenticated() bool {
	return s != nil && s.State == SessionAuthenticated && s.User != nil
}

func (s *Session) clear() {
	s.ID, s.Token, s.User = "", "", nil
	s.State = SessionAnonymous
}

func (s *Session) invalid(op string) error {
	return fmt.Errorf("%s from %s: %w", op, s.State, ErrInvalidSessionTransition)
}

// SessionService owns browser sessions. Bootstrap never fails: anything that prevents
// confirming a user yields an anonymous session.
type SessionService interface {
	Bootstrap(ctx context.Context, browserSessionID string) *Session
	SignIn(ctx context.Context, sess *Session, creds Credentials) error
	SignUp(ctx context.Context, sess *Session, in SignUpInput) error
	SignOut(ctx context.Context, sess *Session) error
}
