// Package store persists the snake high score in a single named slot.
package store

import (
	"context"
	"sync"
)

// Store is a high-score slot that can be released when the session ends.
type Store interface {
	Load(ctx context.Context) (int, error)
	Save(ctx context.Context, score int) error
	Close() error
}

// Open picks a backend: MySQL when dsn is set, a JSON file when path is set,
// otherwise an in-memory slot.
func Open(ctx context.Context, dsn, path, slot string) (Store, error) {
	switch {
	case dsn != "":
		s, err := OpenSQL(ctx, dsn, slot)
		if err != nil {
			return nil, err
		}
		return s, nil
	case path != "":
		return NewFile(path, slot), nil
	default:
		return NewMemory(0), nil
	}
}

// Memory keeps the high score in process memory.
type Memory struct {
	mu    sync.Mutex
	score int
}

// NewMemory returns a slot holding initial.
func NewMemory(initial int) *Memory {
	return &Memory{score: initial}
}

func (m *Memory) Load(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.score, nil
}

// Save stores score unless a higher value is already present.
func (m *Memory) Save(ctx context.Context, score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if score > m.score {
		m.score = score
	}
	return nil
}

func (m *Memory) Close() error { return nil }

var (
	_ Store = (*Memory)(nil)
	_ Store = (*File)(nil)
	_ Store = (*SQL)(nil)
)
