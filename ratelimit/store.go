package ratelimit

import (
	"context"
	"time"
)

// WindowState is one caller's counter inside its current fixed window. The
// window is anchored at the first request's timestamp and lasts until the
// limiter resets it.
type WindowState struct {
	Count       int
	WindowStart time.Time
}

// CounterStore holds per-token window state. The limiter is the only mutator;
// implementations do not need to serialize across operations themselves, but
// each operation must be safe to call concurrently. Backing the store with a
// shared service such as Redis lets multiple instances enforce one quota.
type CounterStore interface {
	// Get returns the token's current window, or ok=false when none exists.
	Get(ctx context.Context, token string) (state WindowState, ok bool, err error)

	// Increment adds one to the token's counter, creating a window anchored
	// at start when none exists, and returns the resulting state.
	Increment(ctx context.Context, token string, start time.Time) (WindowState, error)

	// Reset discards the token's window so the next increment opens a new one.
	Reset(ctx context.Context, token string) error
}
