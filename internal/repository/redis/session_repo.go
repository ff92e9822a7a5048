package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"plannr/internal/clock"
	"plannr/internal/domain"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "plannr:web_session:"

type storedSession struct {
	SealedToken []byte    `json:"sealed_token"`
	UserID      int64     `json:"user_id"`
	ExpiresAt   time.Time `json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
}

type BrowserSessionRepository struct {
	Client *goredis.Client
	clock  clock.Clock
}

// NewBrowserSessionRepository stores browser sessions as JSON values whose Redis TTL
// matches the session's expiry, so expired sessions disappear on their own.
func NewBrowserSessionRepository(client *goredis.Client, clk clock.Clock) domain.BrowserSessionRepository {
	return &BrowserSessionRepository{Client: client, clock: clk}
}

func key(idHash string) string {
	return keyPrefix + idHash
}

func (r *BrowserSessionRepository) Create(ctx context.Context, s *domain.BrowserSession) error {
	ttl := s.ExpiresAt.Sub(r.clock.Now())
	if ttl <= 0 {
		return fmt.Errorf("create browser session: already expired: %w", domain.ErrInvalidInput)
	}
	payload, err := json.Marshal(storedSession{
		SealedToken: s.SealedToken,
		UserID:      s.UserID,
		ExpiresAt:   s.ExpiresAt,
		CreatedAt:   s.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("create browser session: %w", err)
	}
	ok, err := r.Client.SetNX(ctx, key(s.IDHash), payload, ttl).Result()
	if err != nil {
		return fmt.Errorf("create browser session: %w", err)
	}
	if !ok {
		return fmt.Errorf("create browser session: %w", domain.ErrConflict)
	}
	return nil
}

func (r *BrowserSessionRepository) GetByIDHash(ctx context.Context, idHash string) (*domain.BrowserSession, error) {
	payload, err := r.Client.Get(ctx, key(idHash)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get browser session: %w", err)
	}
	var stored storedSession
	if err := json.Unmarshal(payload, &stored); err != nil {
		return nil, fmt.Errorf("get browser session: %w", err)
	}
	return &domain.BrowserSession{
		IDHash:      idHash,
		SealedToken: stored.SealedToken,
		UserID:      stored.UserID,
		ExpiresAt:   stored.ExpiresAt,
		CreatedAt:   stored.CreatedAt,
	}, nil
}

func (r *BrowserSessionRepository) Delete(ctx context.Context, idHash string) error {
	if err := r.Client.Del(ctx, key(idHash)).Err(); err != nil {
		return fmt.Errorf("delete browser session: %w", err)
	}
	return nil
}

// DeleteExpired is a no-op: Redis expires the keys itself.
func (r *BrowserSessionRepository) DeleteExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}
