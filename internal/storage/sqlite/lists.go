package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mariovida/list-backend/internal/models"
	"github.com/mariovida/list-backend/internal/storage"
)

// CreateList inserts a new empty list and returns it with its token.
func (s *SQLiteStore) CreateList(ctx context.Context, name string) (*models.List, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("list name is required: %w", storage.ErrValidation)
	}

	list := &models.List{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().Unix(),
		Items:     []models.Item{},
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO lists (id, name, created_at) VALUES (?, ?, ?)",
		list.ID, list.Name, list.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert list: %w", storage.ErrUnavailable)
	}

	return list, nil
}

// GetList retrieves a list by token, including all of its items.
func (s *SQLiteStore) GetList(ctx context.Context, listID string) (*models.List, error) {
	list := &models.List{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM lists WHERE id = ?",
		listID,
	).Scan(&list.ID, &list.Name, &list.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("list %s: %w", listID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get list: %w", storage.ErrUnavailable)
	}

	items, err := s.queryItems(ctx, listID)
	if err != nil {
		return nil, err
	}
	list.Items = items

	return list, nil
}

// ListItems returns the list's items in insertion order.
func (s *SQLiteStore) ListItems(ctx context.Context, listID string) ([]models.Item, error) {
	items, err := s.queryItems(ctx, listID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		// Distinguish an empty list from an unknown token.
		if err := s.checkListExists(ctx, listID); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// queryItems reads all items of a list ordered by insertion.
func (s *SQLiteStore) queryItems(ctx context.Context, listID string) ([]models.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, content, quantity, checked, created_at FROM items WHERE list_id = ? ORDER BY id",
		listID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", storage.ErrUnavailable)
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		var item models.Item
		if err := rows.Scan(&item.ID, &item.Content, &item.Quantity, &item.Checked, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", storage.ErrUnavailable)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", storage.ErrUnavailable)
	}

	return items, nil
}

// checkListExists returns ErrNotFound if the token is unknown.
func (s *SQLiteStore) checkListExists(ctx context.Context, listID string) error {
	var one int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM lists WHERE id = ?", listID).Scan(&one)
	if err == sql.ErrNoRows {
		return fmt.Errorf("list %s: %w", listID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check list: %w", storage.ErrUnavailable)
	}
	return nil
}
