package ratelimit

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrLimitExceeded is returned by Check when the caller's window is full.
var ErrLimitExceeded = errors.New("rate limit exceeded")

// Limiter enforces a fixed-window quota per caller token over an injected
// CounterStore. The window is anchored at the first request for a token; when
// it elapses the counter resets and a new window starts at the next request.
type Limiter struct {
	mu     sync.Mutex
	store  CounterStore
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewLimiter creates a limiter allowing limit requests per token per window.
func NewLimiter(store CounterStore, limit int, window time.Duration) *Limiter {
	return &Limiter{
		store:  store,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Check records one request for token, or fails with ErrLimitExceeded when
// the window is already full. The check-and-increment sequence runs inside a
// single critical section so concurrent callers cannot jointly slip past the
// limit. A request rejected here is never counted.
func (l *Limiter) Check(ctx context.Context, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	state, ok, err := l.store.Get(ctx, token)
	if err != nil {
		return err
	}

	if ok && now.Sub(state.WindowStart) >= l.window {
		if err := l.store.Reset(ctx, token); err != nil {
			return err
		}
		ok = false
	}

	if ok && state.Count >= l.limit {
		return ErrLimitExceeded
	}

	_, err = l.store.Increment(ctx, token, now)
	return err
}
