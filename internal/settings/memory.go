package settings

import (
	"context"
	"sync"
)

// MemoryStore is the default in-process settings store.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[int64]Settings
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[int64]Settings)}
}

// Get returns the user's settings, or defaults when none were saved.
func (m *MemoryStore) Get(_ context.Context, userID int64) (Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if s, ok := m.users[userID]; ok {
		return s, nil
	}
	return Defaults(), nil
}

// Set saves the user's settings.
func (m *MemoryStore) Set(_ context.Context, userID int64, s Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[userID] = s
	return nil
}

// Reset drops the user's settings back to defaults.
func (m *MemoryStore) Reset(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, userID)
	return nil
}
