// Package storage provides abstractions for persistent list storage.
package storage

import (
	"context"
	"errors"

	"github.com/mariovida/list-backend/internal/models"
)

// Error kinds surfaced by every Store implementation. Implementations wrap
// these with context via fmt.Errorf("...: %w", Err...); callers classify
// with errors.Is.
var (
	// ErrNotFound means the referenced list or item does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation means the input was malformed, missing or out of range.
	ErrValidation = errors.New("invalid input")

	// ErrUnavailable means the backing store could not complete the
	// operation. The operation was not applied.
	ErrUnavailable = errors.New("store unavailable")
)

// Store defines the interface for list storage operations.
// This abstraction allows swapping storage backends (the single-document
// JSON file store, SQLite, PostgreSQL, etc.) without changing the service
// layer.
//
// Every operation is atomic with respect to the store's durability
// boundary, and writes against the same list are serialized by the store,
// so a ListItems call issued after a mutation returns observes that
// mutation.
type Store interface {
	// CreateList persists a new, empty list with the given display name and
	// returns it with a freshly generated token. Returns ErrValidation if
	// the name is blank after trimming.
	CreateList(ctx context.Context, name string) (*models.List, error)

	// GetList retrieves a list and all of its items as a point-in-time
	// snapshot. Returns ErrNotFound if the token is unknown.
	GetList(ctx context.Context, listID string) (*models.List, error)

	// AppendItem adds a new, unchecked item to the end of the list and
	// returns it with its assigned ID. A nil quantity gets
	// models.DefaultQuantity; a negative quantity is ErrValidation, as is
	// blank content.
	AppendItem(ctx context.Context, listID, content string, quantity *int) (*models.Item, error)

	// RemoveItem deletes the item with the given ID from the list.
	// Returns ErrNotFound if the list or the item is unknown.
	RemoveItem(ctx context.Context, listID string, itemID int64) error

	// RemoveItemByContent deletes the first item whose content equals the
	// given string. Legacy compatibility mode for clients that predate item
	// IDs; prefer RemoveItem.
	RemoveItemByContent(ctx context.Context, listID, content string) error

	// SetItemChecked updates the checked flag of one item.
	SetItemChecked(ctx context.Context, listID string, itemID int64, checked bool) error

	// SetItemQuantity updates the quantity of one item. Negative quantities
	// are ErrValidation.
	SetItemQuantity(ctx context.Context, listID string, itemID int64, quantity int) error

	// ListItems returns the list's items in insertion order. This is the
	// canonical read-back used as the broadcast payload after a mutation.
	ListItems(ctx context.Context, listID string) ([]models.Item, error)

	// Close releases any resources held by the store.
	Close() error
}
