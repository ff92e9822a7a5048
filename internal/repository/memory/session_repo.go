package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"plannr/internal/domain"
)

// BrowserSessionRepository keeps sessions in process memory. Sessions are lost on restart
// and are not shared between instances.
type BrowserSessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]domain.BrowserSession
}

func NewBrowserSessionRepository() *BrowserSessionRepository {
	return &BrowserSessionRepository{sessions: make(map[string]domain.BrowserSession)}
}

func (r *BrowserSessionRepository) Create(_ context.Context, s *domain.BrowserSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[s.IDHash]; ok {
		return fmt.Errorf("create browser session: %w", domain.ErrConflict)
	}
	r.sessions[s.IDHash] = *s
	return nil
}

func (r *BrowserSessionRepository) GetByIDHash(_ context.Context, idHash string) (*domain.BrowserSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[idHash]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &s, nil
}

func (r *BrowserSessionRepository) Delete(_ context.Context, idHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, idHash)
	return nil
}

func (r *BrowserSessionRepository) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for k, s := range r.sessions {
		if s.Expired(now) {
			delete(r.sessions, k)
			n++
		}
	}
	return n, nil
}

// Len reports how many sessions are stored.
func (r *BrowserSessionRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
