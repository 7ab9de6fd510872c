// Package store selects the backing store from a database path.
package store

import (
	"context"
	"strings"

	"github.com/warp/shift-calendar/shift"
	memstore "github.com/warp/shift-calendar/shift/store"
	"github.com/warp/shift-calendar/store/sqlite"
)

// Repository is a shift.Repository that owns resources.
type Repository interface {
	shift.Repository
	Ping(ctx context.Context) error
	Close() error
}

// MemoryPath selects the in-memory store instead of SQLite.
const MemoryPath = "memory"

// Open returns the in-memory store for MemoryPath and a SQLite store otherwise.
func Open(path string) (Repository, error) {
	if strings.EqualFold(path, MemoryPath) {
		return memoryRepository{memstore.NewMemory()}, nil
	}
	s, err := sqlite.New(path)
	if err != nil {
		return nil, err
	}
	return s, nil
}

type memoryRepository struct {
	*memstore.Memory
}

func (memoryRepository) Ping(context.Context) error { return nil }
func (memoryRepository) Close() error               { return nil }
