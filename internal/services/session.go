package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"plannr/internal/clock"
	"plannr/internal/domain"

	"github.com/google/uuid"
)

type sessionService struct {
	auth           domain.AuthAPI
	repo           domain.BrowserSessionRepository
	sealer         domain.TokenSealer
	inspector      domain.TokenInspector
	clock          clock.Clock
	ttl            time.Duration
	contextTimeout time.Duration
	logger         *slog.Logger
	newID          func() string
}

func NewSessionService(
	auth domain.AuthAPI,
	repo domain.BrowserSessionRepository,
	sealer domain.TokenSealer,
	inspector domain.TokenInspector,
	clk clock.Clock,
	ttl time.Duration,
	timeout time.Duration,
	logger *slog.Logger,
) domain.SessionService {
	return &sessionService{
		auth:           auth,
		repo:           repo,
		sealer:         sealer,
		inspector:      inspector,
		clock:          clk,
		ttl:            ttl,
		contextTimeout: timeout,
		logger:         logger,
		newID:          uuid.NewString,
	}
}

// HashSessionID is the storage key for a browser session id. The raw id only ever
// lives in the browser's cookie.
func HashSessionID(id string) string {
	sum := sha256.Sum256([]byte(id))
	return hex.EncodeToString(sum[:])
}

func (s *sessionService) Bootstrap(ctx context.Context, browserSessionID string) *domain.Session {
	sess := domain.NewSession()
	_ = sess.BeginResolve()
	if browserSessionID == "" {
		_ = sess.ResolveFailed()
		return sess
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, token, err := s.resolve(ctx, browserSessionID)
	if err != nil {
		gone := errors.Is(err, domain.ErrSessionNotFound) || errors.Is(err, domain.ErrUnauthenticated)
		if gone {
			s.logger.DebugContext(ctx, "session not resolved", "err", err)
		} else {
			s.logger.WarnContext(ctx, "session bootstrap failed", "err", err)
		}
		_ = sess.ResolveFailed()
		// an outage or a slow store leaves the cookie so the next request can retry
		sess.Stale = gone
		return sess
	}
	_ = sess.Resolved(browserSessionID, token, user)
	return sess
}

func (s *sessionService) resolve(ctx context.Context, id string) (*domain.User, string, error) {
	idHash := HashSessionID(id)
	rec, err := s.repo.GetByIDHash(ctx, idHash)
	if err != nil {
		return nil, "", fmt.Errorf("load browser session: %w", err)
	}
	now := s.clock.Now()
	if rec.Expired(now) {
		s.forget(ctx, idHash)
		return nil, "", fmt.Errorf("browser session expired: %w", domain.ErrSessionNotFound)
	}
	raw, err := s.sealer.Open(rec.SealedToken)
	if err != nil {
		s.forget(ctx, idHash)
		return nil, "", fmt.Errorf("open backend token: %w: %w", domain.ErrSessionNotFound, err)
	}
	token := string(raw)
	if exp, ok := s.inspector.ExpiresAt(token); ok && !now.Before(exp) {
		s.forget(ctx, idHash)
		return nil, "", fmt.Errorf("backend token expired: %w", domain.ErrUnauthenticated)
	}

	user, err := s.auth.Me(domain.WithBackendToken(ctx, token))
	if err != nil {
		// a backend outage leaves the record alone; a rejected token does not
		if errors.Is(err, domain.ErrUnauthenticated) {
			s.forget(ctx, idHash)
		}
		return nil, "", fmt.Errorf("who am i: %w", err)
	}
	return user, token, nil
}

func (s *sessionService) SignIn(ctx context.Context, sess *domain.Session, creds domain.Credentials) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, token, err := s.auth.SignIn(ctx, creds)
	if err != nil {
		return fmt.Errorf("sign in: %w", err)
	}
	if token == "" {
		return fmt.Errorf("sign in: %w", &domain.APIError{Op: "sign in", Message: "Sign in failed. Please try again.", Err: domain.ErrBadResponse})
	}
	return s.establish(ctx, sess, user, token)
}

func (s *sessionService) SignUp(ctx context.Context, sess *domain.Session, in domain.SignUpInput) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	user, token, err := s.auth.SignUp(ctx, in)
	if err != nil {
		return fmt.Errorf("sign up: %w", err)
	}
	if token == "" {
		// the account exists; start its session the ordinary way
		user, token, err = s.auth.SignIn(ctx, in.Credentials())
		if err != nil {
			return fmt.Errorf("sign in after sign up: %w", err)
		}
	}
	if token == "" {
		return fmt.Errorf("sign up: %w", &domain.APIError{Op: "sign up", Message: "Account created. Please sign in.", Err: domain.ErrBadResponse})
	}
	return s.establish(ctx, sess, user, token)
}

// establish stores a fresh browser session for token and moves sess to Authenticated.
// The browser session id always rotates.
func (s *sessionService) establish(ctx context.Context, sess *domain.Session, user *domain.User, token string) error {
	if sess.ID != "" {
		s.forget(ctx, HashSessionID(sess.ID))
	}
	sealed, err := s.sealer.Seal([]byte(token))
	if err != nil {
		return fmt.Errorf("seal backend token: %w", err)
	}
	now := s.clock.Now()
	expiresAt := now.Add(s.ttl)
	if exp, ok := s.inspector.ExpiresAt(token); ok && exp.Before(expiresAt) {
		expiresAt = exp
	}
	id := s.newID()
	rec := &domain.BrowserSession{
		IDHash:      HashSessionID(id),
		SealedToken: sealed,
		UserID:      user.ID,
		ExpiresAt:   expiresAt,
		CreatedAt:   now,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return fmt.Errorf("store browser session: %w", err)
	}
	return sess.SignedIn(id, token, user)
}

// SignOut only clears the session once the backend has let go of it. A backend that
// already considers the token invalid counts as confirmation.
func (s *sessionService) SignOut(ctx context.Context, sess *domain.Session) error {
	if !sess.IsAuthenticated() {
		return fmt.Errorf("sign out: %w", domain.ErrInvalidSessionTransition)
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.auth.SignOut(domain.WithBackendToken(ctx, sess.Token)); err != nil && !errors.Is(err, domain.ErrUnauthenticated) {
		return fmt.Errorf("sign out: %w", err)
	}
	s.forget(ctx, HashSessionID(sess.ID))
	return sess.SignedOut()
}

func (s *sessionService) forget(ctx context.Context, idHash string) {
	if err := s.repo.Delete(ctx, idHash); err != nil {
		s.logger.WarnContext(ctx, "failed to delete browser session", "err", err)
	}
}
