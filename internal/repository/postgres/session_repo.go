package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"plannr/internal/domain"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type BrowserSessionRepository struct {
	DB *sql.DB
}

func NewBrowserSessionRepository(db *sql.DB) domain.BrowserSessionRepository {
	return &BrowserSessionRepository{
		DB: db,
	}
}

func (r *BrowserSessionRepository) Create(ctx context.Context, s *domain.BrowserSession) error {
	query := `
		INSERT INTO web_sessions (id_hash, sealed_token, user_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.DB.ExecContext(ctx, query, s.IDHash, s.SealedToken, s.UserID, s.ExpiresAt, s.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("create browser session: %w", domain.ErrConflict)
		}
		return fmt.Errorf("create browser session: %w", err)
	}
	return nil
}

func (r *BrowserSessionRepository) GetByIDHash(ctx context.Context, idHash string) (*domain.BrowserSession, error) {
	query := `
		SELECT id_hash, sealed_token, user_id, expires_at, created_at
		FROM web_sessions
		WHERE id_hash = $1
	`
	s := &domain.BrowserSession{}
	err := r.DB.QueryRowContext(ctx, query, idHash).Scan(&s.IDHash, &s.SealedToken, &s.UserID, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get browser session: %w", err)
	}
	return s, nil
}

func (r *BrowserSessionRepository) Delete(ctx context.Context, idHash string) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM web_sessions WHERE id_hash = $1`, idHash); err != nil {
		return fmt.Errorf("delete browser session: %w", err)
	}
	return nil
}

// DeleteExpired removes every session that expired at or before now and reports how many.
func (r *BrowserSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM web_sessions WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired browser sessions: %w", err)
	}
	return res.RowsAffected()
}
