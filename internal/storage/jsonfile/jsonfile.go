// Package jsonfile provides the flat-file implementation of storage.Store.
// The ledger is kept as one indented JSON document keyed by entity type.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mmynk/kirana/internal/models"
	"github.com/mmynk/kirana/internal/storage"
)

// Ensure FileStore implements storage.Store
var _ storage.Store = (*FileStore)(nil)

// FileStore implements storage.Store on a single JSON file.
type FileStore struct {
	path string
}

// New creates a FileStore for the given path, creating parent directories.
// The file itself is created on the first Save.
func New(path string) (*FileStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

// Location returns the backing file path.
func (s *FileStore) Location() string {
	return s.path
}

// Close is a no-op; the file is only open during Load and Save.
func (s *FileStore) Close() error {
	return nil
}

// Load reads and decodes the whole file. A missing file is an empty ledger.
// Any decoding problem rejects the whole file.
func (s *FileStore) Load(_ context.Context) (*models.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return models.NewSnapshot(), nil
	}
	if err != nil {
		return nil, &models.PersistenceError{Op: "load", Path: s.path, Err: err}
	}

	snapshot, err := decode(data)
	if err != nil {
		return nil, &models.PersistenceError{Op: "load", Path: s.path, Err: err}
	}
	return snapshot, nil
}

// Save writes the snapshot to a temp file next to the target, syncs it and
// renames it into place, so a crash mid-write leaves the previous file intact.
func (s *FileStore) Save(_ context.Context, snapshot *models.Snapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return &models.PersistenceError{Op: "save", Path: s.path, Err: err}
	}

	if err := writeAtomic(s.path, data); err != nil {
		return &models.PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	return nil
}

func decode(data []byte) (*models.Snapshot, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var snapshot models.Snapshot
	if err := dec.Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if dec.More() {
		return nil, errors.New("unexpected data after snapshot")
	}
	if err := checkKeys(&snapshot); err != nil {
		return nil, err
	}

	snapshot.Normalize()
	return &snapshot, nil
}

// checkKeys fills empty record IDs from their map key and rejects records
// filed under a key that disagrees with their own ID.
func checkKeys(s *models.Snapshot) error {
	for key, p := range s.Products {
		if p.ID == "" {
			p.ID = key
			s.Products[key] = p
		}
		if p.ID != key {
			return fmt.Errorf("product %q stored under key %q", p.ID, key)
		}
	}
	for key, c := range s.Customers {
		if c.ID == "" {
			c.ID = key
			s.Customers[key] = c
		}
		if c.ID != key {
			return fmt.Errorf("customer %q stored under key %q", c.ID, key)
		}
	}
	for key, b := range s.Bills {
		if b.ID == "" {
			b.ID = key
			s.Bills[key] = b
		}
		if b.ID != key {
			return fmt.Errorf("bill %q stored under key %q", b.ID, key)
		}
	}
	return nil
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace data file: %w", err)
	}
	return nil
}
