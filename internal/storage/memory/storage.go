package memory

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"sync"

	"github.com/mcoot/candyledger/internal/storage"
)

// Storage is an in-memory implementation of the storage backend.
// It keeps the encoded families of the last save, so loads go through the
// same codec as the durable backends.
type Storage struct {
	mu sync.RWMutex

	families map[storage.Family][]byte
	saves    int
	logger   *slog.Logger
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		families: make(map[storage.Family][]byte),
		logger:   slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
}

// Ensure Storage implements the interface
var _ storage.Backend = (*Storage)(nil)

func (s *Storage) Save(ctx context.Context, snap *storage.Snapshot) error {
	encoded, err := storage.Encode(snap)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.families = encoded
	s.saves++
	return nil
}

func (s *Storage) Load(ctx context.Context) (*storage.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return storage.Decode(s.families, s.logger), nil
}

func (s *Storage) Close() error {
	return nil
}

// Raw returns a copy of the encoded families from the last save
func (s *Storage) Raw() map[storage.Family][]byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.families)
}

// SetRaw replaces the stored families, for loading hand-crafted data in tests
func (s *Storage) SetRaw(families map[storage.Family][]byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.families = maps.Clone(families)
}

// Saves returns how many times Save has succeeded
func (s *Storage) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}
