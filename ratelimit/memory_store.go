package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the default in-process CounterStore.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]WindowState
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		windows: make(map[string]WindowState),
	}
}

func (m *MemoryStore) Get(_ context.Context, token string) (WindowState, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.windows[token]
	return state, ok, nil
}

func (m *MemoryStore) Increment(_ context.Context, token string, start time.Time) (WindowState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.windows[token]
	if !ok {
		state = WindowState{WindowStart: start}
	}
	state.Count++
	m.windows[token] = state
	return state, nil
}

func (m *MemoryStore) Reset(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.windows, token)
	return nil
}
