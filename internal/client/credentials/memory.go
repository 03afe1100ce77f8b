package credentials

import (
	"context"
	"sync"
)

// MemoryStore keeps Credentials in process memory. It is used by tests and
// by callers that do not want the session to survive a restart.
type MemoryStore struct {
	mu    sync.RWMutex
	creds *Credentials
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Get(ctx context.Context) (*Credentials, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.creds == nil || !m.creds.Complete() {
		return nil, nil
	}
	c := *m.creds
	return &c, nil
}

func (m *MemoryStore) Save(ctx context.Context, c Credentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = &c
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = nil
	return nil
}
