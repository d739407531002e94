package store

import (
	"context"
	"sync"

	"github.com/i474232898/geo-window-export/internal/geo"
	"github.com/i474232898/geo-window-export/internal/window"
)

// Row is a stored post: its creation time in ISO text plus coordinates.
type Row struct {
	CreatedAt string
	C0        string
	C1        string
}

// MemoryStore is a concurrency-safe in-memory record store. Rows are
// returned in insertion order.
type MemoryStore struct {
	mu    sync.RWMutex
	rows  []Row
	scans int
}

// NewMemoryStore creates a MemoryStore seeded with rows.
func NewMemoryStore(rows ...Row) *MemoryStore {
	return &MemoryStore{rows: append([]Row(nil), rows...)}
}

// Add appends rows to the store.
func (s *MemoryStore) Add(rows ...Row) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rows = append(s.rows, rows...)
}

// Scan returns the coordinates of every row matching filter.
func (s *MemoryStore) Scan(ctx context.Context, filter window.Filter) ([]geo.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.scans++

	var result []geo.Record
	for _, r := range s.rows {
		if filter.Match(r.CreatedAt) {
			result = append(result, geo.Record{C0: r.C0, C1: r.C1})
		}
	}
	return result, nil
}

// Scans reports how many scans have been served.
func (s *MemoryStore) Scans() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.scans
}
