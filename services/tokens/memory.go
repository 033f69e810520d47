package tokens

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps token records in a mutex-guarded map. Expiry is checked
// lazily on read: an expired record is evicted during lookup, mirroring the
// TTL eviction of the redis backend.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]Record),
	}
}

func (m *MemoryStore) Save(_ context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[storeKey(rec.Kind, rec.TokenHash)] = rec
	return nil
}

func (m *MemoryStore) FindByHash(_ context.Context, kind Kind, hash string) (*Record, error) {
	key := storeKey(kind, hash)

	m.mu.RLock()
	rec, exists := m.records[key]
	m.mu.RUnlock()

	if !exists {
		return nil, ErrTokenNotFound
	}

	if time.Now().After(rec.ExpiresAt) {
		m.mu.Lock()
		delete(m.records, key)
		m.mu.Unlock()
		return nil, ErrTokenNotFound
	}

	return &rec, nil
}

func (m *MemoryStore) SetRevoked(_ context.Context, kind Kind, hash string) error {
	key := storeKey(kind, hash)

	m.mu.Lock()
	defer m.mu.Unlock()

	rec, exists := m.records[key]
	if !exists {
		return ErrTokenNotFound
	}

	// Expiry window untouched; the flag is monotonic.
	rec.Revoked = true
	m.records[key] = rec
	return nil
}
