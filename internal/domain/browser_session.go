package domain

import (
	"context"
	"time"
)

// BrowserSession is the stored link between a browser cookie and a backend token.
// Only a hash of the browser session id is stored, and the token is sealed.
type BrowserSession struct {
	IDHash      string
	SealedToken []byte
	UserID      int64
	ExpiresAt   time.Time
	CreatedAt   time.Time
}

func (b *BrowserSession) Expired(now time.Time) bool {
	return !now.Before(b.ExpiresAt)
}

type BrowserSessionRepository interface {
	Create(ctx context.Context, s *BrowserSession) error
	// GetByIDHash returns ErrSessionNotFound when nothing is stored under idHash.
	GetByIDHash(ctx context.Context, idHash string) (*BrowserSession, error)
	Delete(ctx context.Context, idHash string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// TokenSealer encrypts backend tokens before they are stored.
type TokenSealer interface {
	Seal(plaintext []byte) ([]byte, error)
	Open(sealed []byte) ([]byte, error)
}

// TokenInspector reads the expiry a backend token claims for itself. It does not verify
// the token; the backend remains the authority.
type TokenInspector interface {
	ExpiresAt(token string) (time.Time, bool)
}
