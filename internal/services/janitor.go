package services

import (
	"context"
	"log/slog"
	"time"

	"plannr/internal/clock"
	"plannr/internal/domain"
)

// SessionJanitor periodically removes expired browser sessions.
type SessionJanitor struct {
	repo     domain.BrowserSessionRepository
	clock    clock.Clock
	interval time.Duration
	logger   *slog.Logger
}

func NewSessionJanitor(repo domain.BrowserSessionRepository, clk clock.Clock, interval time.Duration, logger *slog.Logger) *SessionJanitor {
	return &SessionJanitor{repo: repo, clock: clk, interval: interval, logger: logger}
}

// Start sweeps every interval until ctx is done.
func (j *SessionJanitor) Start(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.logger.InfoContext(ctx, "session janitor started", "interval", j.interval)
	for {
		select {
		case <-ctx.Done():
			j.logger.InfoContext(ctx, "session janitor stopped")
			return
		case <-ticker.C:
			j.Sweep(ctx)
		}
	}
}

// Sweep deletes sessions that have expired and returns how many went.
func (j *SessionJanitor) Sweep(ctx context.Context) int64 {
	n, err := j.repo.DeleteExpired(ctx, j.clock.Now())
	if err != nil {
		j.logger.ErrorContext(ctx, "failed to delete expired sessions", "err", err)
		return 0
	}
	if n > 0 {
		j.logger.InfoContext(ctx, "deleted expired sessions", "count", n)
	}
	return n
}
