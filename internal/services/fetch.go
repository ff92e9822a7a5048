package services

import (
	"context"
	"sync"

	"plannr/internal/domain"
)

// FetchCoordinator makes sure only the newest fetch for a key gets to report a result.
// Starting a fetch cancels the in-flight one it supersedes; a superseded fetch returns
// domain.ErrSuperseded whatever its own outcome was.
type FetchCoordinator struct {
	mu       sync.Mutex
	next     uint64
	inflight map[string]*fetchSlot
}

type fetchSlot struct {
	gen    uint64
	cancel context.CancelCauseFunc
}

func NewFetchCoordinator() *FetchCoordinator {
	return &FetchCoordinator{inflight: make(map[string]*fetchSlot)}
}

func (c *FetchCoordinator) begin(ctx context.Context, key string) (context.Context, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if prev, ok := c.inflight[key]; ok {
		prev.cancel(domain.ErrSuperseded)
	}
	c.next++
	fctx, cancel := context.WithCancelCause(ctx)
	c.inflight[key] = &fetchSlot{gen: c.next, cancel: cancel}
	return fctx, c.next
}

// finish reports whether gen is still the newest fetch for key, releasing it if so.
func (c *FetchCoordinator) finish(key string, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	slot, ok := c.inflight[key]
	if !ok || slot.gen != gen {
		return false
	}
	slot.cancel(nil)
	delete(c.inflight, key)
	return true
}

// InFlight reports how many keys have a fetch running.
func (c *FetchCoordinator) InFlight() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.inflight)
}

// latestIn runs fetch under c for view within scope, or plainly when scope is empty.
func latestIn[T any](ctx context.Context, c *FetchCoordinator, scope, view string, fetch func(context.Context) (T, error)) (T, error) {
	if scope == "" {
		return fetch(ctx)
	}
	return Latest(ctx, c, scope+":"+view, fetch)
}

// Latest runs fetch under c for key.
func Latest[T any](ctx context.Context, c *FetchCoordinator, key string, fetch func(context.Context) (T, error)) (T, error) {
	fctx, gen := c.begin(ctx, key)
	v, err := fetch(fctx)
	if !c.finish(key, gen) {
		var zero T
		return zero, domain.ErrSuperseded
	}
	return v, err
}
