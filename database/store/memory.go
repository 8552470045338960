package store

import (
	"context"
	"sync"
)

// MemoryStore keeps collections in process memory. It backs tests and
// throwaway development servers.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte

	// FailWrites, when set, is returned by every Set and SetMany call
	// without touching the stored data.
	FailWrites error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (m *MemoryStore) Get(_ context.Context, collection string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	blob, ok := m.blobs[collection]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), blob...), nil
}

func (m *MemoryStore) Set(ctx context.Context, collection string, blob []byte) error {
	return m.SetMany(ctx, map[string][]byte{collection: blob})
}

func (m *MemoryStore) SetMany(_ context.Context, blobs map[string][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	for name, blob := range blobs {
		m.blobs[name] = append([]byte(nil), blob...)
	}
	return nil
}

func (m *MemoryStore) Ping(context.Context) error { return nil }

func (m *MemoryStore) Close(context.Context) error { return nil }
