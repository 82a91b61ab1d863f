package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/mariovida/list-backend/internal/models"
	"github.com/mariovida/list-backend/internal/storage"
)

// AppendItem inserts a new unchecked item at the end of the list.
func (s *SQLiteStore) AppendItem(ctx context.Context, listID, content string, quantity *int) (*models.Item, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("item content is required: %w", storage.ErrValidation)
	}

	qty := models.DefaultQuantity
	if quantity != nil {
		if *quantity < 0 {
			return nil, fmt.Errorf("quantity must be non-negative: %w", storage.ErrValidation)
		}
		qty = *quantity
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", storage.ErrUnavailable)
	}
	defer tx.Rollback()

	var one int
	if err := tx.QueryRowContext(ctx, "SELECT 1 FROM lists WHERE id = ?", listID).Scan(&one); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("list %s: %w", listID, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to check list: %w", storage.ErrUnavailable)
	}

	item := &models.Item{
		Content:   content,
		Quantity:  qty,
		Checked:   false,
		CreatedAt: time.Now().Unix(),
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO items (list_id, content, quantity, checked, created_at) VALUES (?, ?, ?, ?, ?)",
		listID, item.Content, item.Quantity, item.Checked, item.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert item: %w", storage.ErrUnavailable)
	}

	item.ID, err = res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read item id: %w", storage.ErrUnavailable)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", storage.ErrUnavailable)
	}

	return item, nil
}

// RemoveItem deletes the item with the given ID from the list.
func (s *SQLiteStore) RemoveItem(ctx context.Context, listID string, itemID int64) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM items WHERE list_id = ? AND id = ?",
		listID, itemID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", storage.ErrUnavailable)
	}
	return s.requireRow(res, fmt.Sprintf("item %d in list %s", itemID, listID))
}

// RemoveItemByContent deletes the first item with matching content.
// Legacy mode for clients that reference items by text instead of ID;
// with duplicate contents the oldest match wins.
func (s *SQLiteStore) RemoveItemByContent(ctx context.Context, listID, content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("item content is required: %w", storage.ErrValidation)
	}

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM items WHERE id = (
			SELECT id FROM items WHERE list_id = ? AND content = ? ORDER BY id LIMIT 1
		)`,
		listID, content,
	)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", storage.ErrUnavailable)
	}
	return s.requireRow(res, fmt.Sprintf("item %q in list %s", content, listID))
}

// SetItemChecked updates the checked flag of one item.
func (s *SQLiteStore) SetItemChecked(ctx context.Context, listID string, itemID int64, checked bool) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE items SET checked = ? WHERE list_id = ? AND id = ?",
		checked, listID, itemID,
	)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", storage.ErrUnavailable)
	}
	return s.requireRow(res, fmt.Sprintf("item %d in list %s", itemID, listID))
}

// SetItemQuantity updates the quantity of one item.
func (s *SQLiteStore) SetItemQuantity(ctx context.Context, listID string, itemID int64, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("quantity must be non-negative: %w", storage.ErrValidation)
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE items SET quantity = ? WHERE list_id = ? AND id = ?",
		quantity, listID, itemID,
	)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", storage.ErrUnavailable)
	}
	return s.requireRow(res, fmt.Sprintf("item %d in list %s", itemID, listID))
}

// requireRow converts a zero-rows-affected result into ErrNotFound.
func (s *SQLiteStore) requireRow(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count affected rows: %w", storage.ErrUnavailable)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, storage.ErrNotFound)
	}
	return nil
}
