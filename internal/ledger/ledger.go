// Package ledger holds the in-memory shop state and ties every mutation to a
// full snapshot save.
//
// A Ledger is built explicitly with Open and passed to the services that use
// it. All reads go through Read and all mutations through Write; Write runs
// the mutation against the live state, saves the whole snapshot, and restores
// the previous state if either step fails, so callers never observe a
// mutation that is not on disk.
package ledger

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/mmynk/kirana/internal/models"
	"github.com/mmynk/kirana/internal/storage"
)

// Ledger is the shop state plus the store it is persisted to.
type Ledger struct {
	mu    sync.Mutex
	store storage.Store
	state *models.Snapshot
}

// Open loads the ledger from store. It always returns a usable Ledger: when
// the store cannot be read the failure is logged and returned, and the ledger
// starts empty. Nothing from a malformed store is kept.
func Open(ctx context.Context, store storage.Store) (*Ledger, error) {
	l := &Ledger{store: store, state: models.NewSnapshot()}

	snapshot, err := store.Load(ctx)
	if err != nil {
		slog.Error("Failed to load ledger, starting empty", "location", store.Location(), "error", err)
		return l, err
	}
	if snapshot == nil {
		return l, nil
	}

	snapshot.Normalize()
	l.state = snapshot
	slog.Info("Ledger loaded",
		"location", store.Location(),
		"products", len(snapshot.Products),
		"customers", len(snapshot.Customers),
		"bills", len(snapshot.Bills),
	)
	return l, nil
}

// Tx is a view of the state handed to Read and Write callbacks. It must not
// be retained after the callback returns.
type Tx struct {
	s *models.Snapshot
}

// Catalog returns the product view.
func (tx Tx) Catalog() Catalog { return Catalog{s: tx.s} }

// Directory returns the customer view.
func (tx Tx) Directory() Directory { return Directory{s: tx.s} }

// Bills returns the bill view.
func (tx Tx) Bills() Bills { return Bills{s: tx.s} }

// Read runs fn against the current state.
func (l *Ledger) Read(fn func(tx Tx)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(Tx{s: l.state})
}

// Write runs fn against the state and then saves the full snapshot. If fn or
// the save fails, the state is rolled back to what it was before the call.
func (l *Ledger) Write(ctx context.Context, fn func(tx Tx) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	before := l.state.Clone()
	if err := fn(Tx{s: l.state}); err != nil {
		l.state = before
		return err
	}
	if err := l.store.Save(ctx, l.state); err != nil {
		l.state = before
		slog.Error("Failed to save ledger, change rolled back", "location", l.store.Location(), "error", err)
		return err
	}
	return nil
}

// Flush saves the current state without changing it. Used on shutdown.
func (l *Ledger) Flush(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store.Save(ctx, l.state)
}

// Snapshot returns a deep copy of the current state.
func (l *Ledger) Snapshot() *models.Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.Clone()
}

// IsLoadFailure reports whether err came from a store that could not be read.
func IsLoadFailure(err error) bool {
	var perr *models.PersistenceError
	return errors.As(err, &perr) && perr.Op == "load"
}
