package ratelimit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestLimiter_FixedWindow(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewLimiter(NewMemoryStore(), 7, 24*time.Hour)
	limiter.now = func() time.Time { return now }

	ctx := context.Background()

	for i := 1; i <= 7; i++ {
		if err := limiter.Check(ctx, "caller"); err != nil {
			t.Fatalf("request %d: expected allow, got %v", i, err)
		}
	}

	if err := limiter.Check(ctx, "caller"); !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("request 8: expected ErrLimitExceeded, got %v", err)
	}

	// Still inside the window: the rejection stands.
	now = now.Add(23 * time.Hour)
	if err := limiter.Check(ctx, "caller"); !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("expected ErrLimitExceeded before window elapses, got %v", err)
	}

	// Past the window: counter resets and the next request opens a new one.
	now = now.Add(2 * time.Hour)
	if err := limiter.Check(ctx, "caller"); err != nil {
		t.Fatalf("expected allow after window reset, got %v", err)
	}

	state, ok, err := limiter.store.Get(ctx, "caller")
	if err != nil || !ok {
		t.Fatalf("expected window state after reset, got ok=%v err=%v", ok, err)
	}
	if state.Count != 1 {
		t.Errorf("expected count 1 in the fresh window, got %d", state.Count)
	}
	if !state.WindowStart.Equal(now) {
		t.Errorf("expected new window anchored at %v, got %v", now, state.WindowStart)
	}
}

func TestLimiter_TokensAreIndependent(t *testing.T) {
	limiter := NewLimiter(NewMemoryStore(), 1, time.Hour)
	ctx := context.Background()

	if err := limiter.Check(ctx, "a"); err != nil {
		t.Fatalf("token a: %v", err)
	}
	if err := limiter.Check(ctx, "b"); err != nil {
		t.Fatalf("token b should have its own window: %v", err)
	}
	if err := limiter.Check(ctx, "a"); !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("token a second request: expected ErrLimitExceeded, got %v", err)
	}
}

func TestLimiter_RejectedRequestIsNotCounted(t *testing.T) {
	limiter := NewLimiter(NewMemoryStore(), 2, time.Hour)
	ctx := context.Background()

	_ = limiter.Check(ctx, "caller")
	_ = limiter.Check(ctx, "caller")
	_ = limiter.Check(ctx, "caller") // rejected

	state, _, err := limiter.store.Get(ctx, "caller")
	if err != nil {
		t.Fatal(err)
	}
	if state.Count != 2 {
		t.Errorf("rejections must not increment the counter, got count %d", state.Count)
	}
}

func TestLimiter_ConcurrentCallersCannotExceedLimit(t *testing.T) {
	const limit = 7
	const attempts = 50

	limiter := NewLimiter(NewMemoryStore(), limit, 24*time.Hour)
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := limiter.Check(ctx, "caller"); err == nil {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != limit {
		t.Errorf("expected exactly %d allowed requests, got %d", limit, allowed)
	}
}
