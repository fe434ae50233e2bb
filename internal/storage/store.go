// Package storage provides abstractions for persistent ledger storage.
package storage

import (
	"context"

	"github.com/mmynk/kirana/internal/models"
)

// Store defines the interface for snapshot persistence.
// The whole ledger is read and written at once; there are no incremental
// writes. This abstraction allows swapping backends (JSON file, SQLite)
// without changing the ledger or service layers.
type Store interface {
	// Load reads the full snapshot. A store that does not exist yet yields an
	// empty snapshot and no error. Unreadable or malformed data yields a
	// *models.PersistenceError and no partial snapshot.
	Load(ctx context.Context) (*models.Snapshot, error)

	// Save replaces the stored snapshot with the given one.
	Save(ctx context.Context, snapshot *models.Snapshot) error

	// Location describes where the store lives (file path), for logs.
	Location() string

	// Close releases any resources held by the store.
	Close() error
}
