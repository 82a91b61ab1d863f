package jsonfile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mariovida/list-backend/internal/models"
	"github.com/mariovida/list-backend/internal/storage"
)

// CreateList adds a new empty list to the document and flushes it.
func (s *Store) CreateList(_ context.Context, name string) (*models.List, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("list name is required: %w", storage.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list := &models.List{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().Unix(),
		Items:     []models.Item{},
	}
	s.lists[list.ID] = &listDoc{
		Name:       list.Name,
		CreatedAt:  list.CreatedAt,
		NextItemID: 1,
		Items:      []models.Item{},
	}

	if err := s.flush(); err != nil {
		delete(s.lists, list.ID)
		return nil, err
	}
	return list, nil
}

// GetList returns a snapshot of the list and its items.
func (s *Store) GetList(_ context.Context, listID string) (*models.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.lists[listID]
	if !ok {
		return nil, fmt.Errorf("list %s: %w", listID, storage.ErrNotFound)
	}
	return &models.List{
		ID:        listID,
		Name:      doc.Name,
		CreatedAt: doc.CreatedAt,
		Items:     append([]models.Item(nil), doc.Items...),
	}, nil
}

// ListItems returns the list's items in insertion order.
func (s *Store) ListItems(_ context.Context, listID string) ([]models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.lists[listID]
	if !ok {
		return nil, fmt.Errorf("list %s: %w", listID, storage.ErrNotFound)
	}
	return append([]models.Item(nil), doc.Items...), nil
}

// AppendItem adds a new unchecked item at the end of the list.
func (s *Store) AppendItem(_ context.Context, listID, content string, quantity *int) (*models.Item, error) {
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

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.lists[listID]
	if !ok {
		return nil, fmt.Errorf("list %s: %w", listID, storage.ErrNotFound)
	}

	snapshot := cloneDoc(doc)
	item := models.Item{
		ID:        doc.NextItemID,
		Content:   content,
		Quantity:  qty,
		Checked:   false,
		CreatedAt: time.Now().Unix(),
	}
	doc.NextItemID++
	doc.Items = append(doc.Items, item)

	if err := s.flush(); err != nil {
		s.lists[listID] = snapshot
		return nil, err
	}
	return &item, nil
}

// RemoveItem deletes the item with the given ID from the list.
func (s *Store) RemoveItem(_ context.Context, listID string, itemID int64) error {
	return s.removeWhere(listID, fmt.Sprintf("item %d", itemID), func(it models.Item) bool {
		return it.ID == itemID
	})
}

// RemoveItemByContent deletes the first item with matching content.
// Legacy mode; with duplicate contents the first match by position wins.
func (s *Store) RemoveItemByContent(_ context.Context, listID, content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("item content is required: %w", storage.ErrValidation)
	}
	return s.removeWhere(listID, fmt.Sprintf("item %q", content), func(it models.Item) bool {
		return it.Content == content
	})
}

// removeWhere deletes the first item matching the predicate.
func (s *Store) removeWhere(listID, what string, match func(models.Item) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.lists[listID]
	if !ok {
		return fmt.Errorf("list %s: %w", listID, storage.ErrNotFound)
	}

	idx := -1
	for i, it := range doc.Items {
		if match(it) {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fmt.Errorf("%s in list %s: %w", what, listID, storage.ErrNotFound)
	}

	snapshot := cloneDoc(doc)
	doc.Items = append(doc.Items[:idx:idx], doc.Items[idx+1:]...)

	if err := s.flush(); err != nil {
		s.lists[listID] = snapshot
		return err
	}
	return nil
}

// SetItemChecked updates the checked flag of one item.
func (s *Store) SetItemChecked(_ context.Context, listID string, itemID int64, checked bool) error {
	return s.updateItem(listID, itemID, func(it *models.Item) {
		it.Checked = checked
	})
}

// SetItemQuantity updates the quantity of one item.
func (s *Store) SetItemQuantity(_ context.Context, listID string, itemID int64, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("quantity must be non-negative: %w", storage.ErrValidation)
	}
	return s.updateItem(listID, itemID, func(it *models.Item) {
		it.Quantity = quantity
	})
}

// updateItem applies fn to the item with the given ID and flushes.
func (s *Store) updateItem(listID string, itemID int64, fn func(*models.Item)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.lists[listID]
	if !ok {
		return fmt.Errorf("list %s: %w", listID, storage.ErrNotFound)
	}

	idx := -1
	for i := range doc.Items {
		if doc.Items[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fmt.Errorf("item %d in list %s: %w", itemID, listID, storage.ErrNotFound)
	}

	snapshot := cloneDoc(doc)
	fn(&doc.Items[idx])

	if err := s.flush(); err != nil {
		s.lists[listID] = snapshot
		return err
	}
	return nil
}
