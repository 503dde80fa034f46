package cache

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/metsukeai/metsuke-api/internal/models"
)

// MemoryStore provides an in-process NewsStore for tests and for running
// without Redis. It round-trips through JSON so corrupt-blob behavior can be
// exercised the same way as the Redis store.
type MemoryStore struct {
	mu   sync.RWMutex
	blob []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Close() error {
	return nil
}

func (m *MemoryStore) Load(ctx context.Context) (*models.NewsCache, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.blob == nil {
		return nil, nil
	}

	var cached models.NewsCache
	if err := json.Unmarshal(m.blob, &cached); err != nil {
		return nil, nil
	}

	return &cached, nil
}

func (m *MemoryStore) Save(ctx context.Context, cache *models.NewsCache) error {
	data, err := json.Marshal(cache)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.blob = data
	m.mu.Unlock()
	return nil
}

// SetRaw installs an arbitrary blob, letting tests simulate a corrupt cache.
func (m *MemoryStore) SetRaw(blob []byte) {
	m.mu.Lock()
	m.blob = blob
	m.mu.Unlock()
}
