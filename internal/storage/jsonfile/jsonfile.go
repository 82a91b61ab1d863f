// Package jsonfile provides a single-document implementation of the
// storage.Store interface: the whole list graph lives in one JSON file,
// loaded once at startup and rewritten after every mutation.
//
// The in-memory document cache is owned exclusively by this package and is
// never left ahead of disk: a failed flush rolls the cache back and the
// mutation surfaces as ErrUnavailable.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/mariovida/list-backend/internal/models"
	"github.com/mariovida/list-backend/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// listDoc is the persisted form of one list within the document.
type listDoc struct {
	Name       string        `json:"name"`
	CreatedAt  int64         `json:"created_at"`
	NextItemID int64         `json:"next_item_id"`
	Items      []models.Item `json:"items"`
}

// Store implements storage.Store on top of a single JSON document.
// One mutex serializes every write, which trivially satisfies the
// same-list write ordering the engine relies on.
type Store struct {
	path string

	mu    sync.Mutex
	lists map[string]*listDoc
}

// New loads the document at path, creating parent directories as needed.
// A missing file starts empty; a corrupt file is logged and reset to empty
// rather than failing startup.
func New(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &Store{
		path:  path,
		lists: make(map[string]*listDoc),
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}
	if err := json.Unmarshal(b, &s.lists); err != nil {
		slog.Error("Data file is corrupt, starting empty", "path", path, "error", err)
		s.lists = make(map[string]*listDoc)
	}

	return s, nil
}

// Close is a no-op; every mutation is already flushed.
func (s *Store) Close() error {
	return nil
}

// flush rewrites the whole document. Caller must hold s.mu.
func (s *Store) flush() error {
	b, err := json.MarshalIndent(s.lists, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", storage.ErrUnavailable)
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("failed to write data file: %w", storage.ErrUnavailable)
	}
	return nil
}

// cloneDoc deep-copies a list document so a failed flush can roll back.
func cloneDoc(doc *listDoc) *listDoc {
	c := *doc
	c.Items = append([]models.Item(nil), doc.Items...)
	return &c
}
