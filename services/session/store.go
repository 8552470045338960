package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"rideshare/utils"

	"github.com/go-redis/redis/v8"
)

// Store keeps the identity bound to each issued session id.
type Store interface {
	Save(ctx context.Context, id string, s utils.AuthSession, ttl time.Duration) error
	Get(ctx context.Context, id string) (*utils.AuthSession, error)
	Delete(ctx context.Context, id string) error
}

// RedisStore is the session store used in production.
type RedisStore struct {
	Client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{Client: client}
}

func (r *RedisStore) Save(ctx context.Context, id string, s utils.AuthSession, ttl time.Duration) error {
	return utils.SaveAuthSession(ctx, r.Client, id, s, ttl)
}

func (r *RedisStore) Get(ctx context.Context, id string) (*utils.AuthSession, error) {
	return utils.GetAuthSession(ctx, r.Client, id)
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return utils.DeleteAuthSession(ctx, r.Client, id)
}

type memoryEntry struct {
	session   utils.AuthSession
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory, expiring them against clock.
type MemoryStore struct {
	mu      sync.Mutex
	clock   utils.Clock
	entries map[string]memoryEntry
}

func NewMemoryStore(clock utils.Clock) *MemoryStore {
	if clock == nil {
		clock = utils.RealClock()
	}
	return &MemoryStore{clock: clock, entries: make(map[string]memoryEntry)}
}

func (m *MemoryStore) Save(_ context.Context, id string, s utils.AuthSession, ttl time.Duration) error {
	if id == "" {
		return errors.New("empty session id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[id] = memoryEntry{session: s, expiresAt: m.clock.Now().Add(ttl)}
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*utils.AuthSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return nil, utils.ErrSessionNotFound
	}
	if !m.clock.Now().Before(e.expiresAt) {
		delete(m.entries, id)
		return nil, utils.ErrSessionNotFound
	}
	s := e.session
	return &s, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}
