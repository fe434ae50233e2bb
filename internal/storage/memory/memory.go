// Package memory provides an in-memory storage.Store, used by tests and by
// the -dry-run mode of the CLI.
package memory

import (
	"context"
	"sync"

	"github.com/mmynk/kirana/internal/models"
	"github.com/mmynk/kirana/internal/storage"
)

// Ensure MemoryStore implements storage.Store
var _ storage.Store = (*MemoryStore)(nil)

// MemoryStore keeps the last saved snapshot in memory.
type MemoryStore struct {
	mu       sync.RWMutex
	snapshot *models.Snapshot
	saves    int

	// LoadErr and SaveErr, when set, are returned by Load and Save.
	LoadErr error
	SaveErr error
}

// New creates an empty MemoryStore.
func New() *MemoryStore {
	return &MemoryStore{}
}

// NewWithSnapshot creates a MemoryStore pre-populated with snapshot.
func NewWithSnapshot(snapshot *models.Snapshot) *MemoryStore {
	return &MemoryStore{snapshot: snapshot.Clone()}
}

func (s *MemoryStore) Location() string { return "memory" }

func (s *MemoryStore) Close() error { return nil }

// Load returns a copy of the last saved snapshot, or an empty one.
func (s *MemoryStore) Load(ctx context.Context) (*models.Snapshot, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.LoadErr != nil {
		return nil, &models.PersistenceError{Op: "load", Path: "memory", Err: s.LoadErr}
	}
	if s.snapshot == nil {
		return models.NewSnapshot(), nil
	}
	return s.snapshot.Clone(), nil
}

// Save stores a copy of snapshot.
func (s *MemoryStore) Save(ctx context.Context, snapshot *models.Snapshot) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.SaveErr != nil {
		return &models.PersistenceError{Op: "save", Path: "memory", Err: s.SaveErr}
	}
	s.snapshot = snapshot.Clone()
	s.saves++
	return nil
}

// Saves returns how many successful saves have happened.
func (s *MemoryStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

// Saved returns a copy of the last saved snapshot, or nil.
func (s *MemoryStore) Saved() *models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return nil
	}
	return s.snapshot.Clone()
}
