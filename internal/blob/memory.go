package blob

import (
	"context"
	"sync"

	"github.com/i474232898/geo-window-export/internal/common"
)

// MemoryStore is an in-process blob store for local runs and tests.
type MemoryStore struct {
	mu        sync.RWMutex
	objects   map[string][]byte
	public    map[string]bool
	publishes int
	baseURL   string
}

// NewMemoryStore creates an empty MemoryStore whose URLs start with baseURL.
func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{
		objects: make(map[string][]byte),
		public:  make(map[string]bool),
		baseURL: baseURL,
	}
}

func (m *MemoryStore) Exists(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.objects[key]
	return ok, nil
}

// Publish stores a copy of body under key, replacing any previous object.
func (m *MemoryStore) Publish(ctx context.Context, key string, body []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.objects[key] = append([]byte(nil), body...)
	m.public[key] = true
	m.publishes++
	return nil
}

func (m *MemoryStore) URL(key string) string {
	return common.JoinURL(m.baseURL, key)
}

// Get returns the object stored under key.
func (m *MemoryStore) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.objects[key]
	return b, ok
}

// Public reports whether key was published with public read.
func (m *MemoryStore) Public(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.public[key]
}

// Publishes reports how many objects have been written.
func (m *MemoryStore) Publishes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.publishes
}
