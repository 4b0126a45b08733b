package banking

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRecorder is an in-process HistoryRecorder.
//
// MemoryRecorder is safe for concurrent use.
type MemoryRecorder struct {
	mu      sync.RWMutex
	entries map[uuid.UUID][]History
}

// NewMemoryRecorder returns an empty MemoryRecorder.
func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{entries: make(map[uuid.UUID][]History)}
}

// Record appends h to the player's history.
func (m *MemoryRecorder) Record(ctx context.Context, h History) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	m.entries[h.PlayerID] = append(m.entries[h.PlayerID], h)
	m.mu.Unlock()
	return nil
}

// List returns the player's entries created strictly after since, in
// insertion order.
func (m *MemoryRecorder) List(ctx context.Context, playerID uuid.UUID, since time.Time) ([]History, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []History
	for _, h := range m.entries[playerID] {
		if h.CreatedAt.After(since) {
			out = append(out, h)
		}
	}
	return out, nil
}
