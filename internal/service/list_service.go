// Package service contains the list synchronization engine: it applies
// mutations against the store and propagates the committed state to every
// subscriber of the list's room.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mariovida/list-backend/internal/channel"
	"github.com/mariovida/list-backend/internal/metrics"
	"github.com/mariovida/list-backend/internal/models"
	"github.com/mariovida/list-backend/internal/storage"
)

// ListService orchestrates mutations against the Store and broadcasts the
// canonical post-mutation item collection to the list's room.
//
// Every mutating operation runs under a per-list lock covering the
// mutate + read-back + broadcast sequence, so broadcasts for one list
// always arrive in store-commit order. Lists never share a lock.
type ListService struct {
	store    storage.Store
	registry *channel.Registry

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewListService creates a ListService with the given storage backend and
// channel registry.
func NewListService(store storage.Store, registry *channel.Registry) *ListService {
	return &ListService{
		store:    store,
		registry: registry,
		locks:    make(map[string]*sync.Mutex),
	}
}

// lockList acquires the mutation lock for one list token.
func (s *ListService) lockList(listID string) *sync.Mutex {
	s.mu.Lock()
	l, ok := s.locks[listID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[listID] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l
}

// CreateList creates a new empty list and returns it with its token.
// Nothing is broadcast: no subscriber can exist before the token is handed
// out.
func (s *ListService) CreateList(ctx context.Context, name string) (*models.List, error) {
	slog.Info("CreateList request received", "name", name)

	list, err := s.store.CreateList(ctx, name)
	if err != nil {
		slog.Error("CreateList failed", "error", err)
		return nil, err
	}

	metrics.MutationsTotal.WithLabelValues("create_list").Inc()
	slog.Info("List created", "list_id", list.ID)
	return list, nil
}

// GetList is a pure pass-through to the store. It never broadcasts.
func (s *ListService) GetList(ctx context.Context, listID string) (*models.List, error) {
	if listID == "" {
		return nil, fmt.Errorf("list id is required: %w", storage.ErrValidation)
	}
	return s.store.GetList(ctx, listID)
}

// AddItem appends a new item to the list and broadcasts the result.
func (s *ListService) AddItem(ctx context.Context, listID, content string, quantity *int) (*models.Item, error) {
	slog.Info("AddItem request received", "list_id", listID, "content", content)
	if listID == "" {
		return nil, fmt.Errorf("list id is required: %w", storage.ErrValidation)
	}

	defer s.lockList(listID).Unlock()

	item, err := s.store.AppendItem(ctx, listID, content, quantity)
	if err != nil {
		slog.Error("AddItem failed", "list_id", listID, "error", err)
		return nil, err
	}

	if err := s.publish(ctx, listID, "add_item"); err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem deletes one item by ID and broadcasts the result.
func (s *ListService) RemoveItem(ctx context.Context, listID string, itemID int64) error {
	slog.Info("RemoveItem request received", "list_id", listID, "item_id", itemID)
	if listID == "" {
		return fmt.Errorf("list id is required: %w", storage.ErrValidation)
	}

	defer s.lockList(listID).Unlock()

	if err := s.store.RemoveItem(ctx, listID, itemID); err != nil {
		slog.Error("RemoveItem failed", "list_id", listID, "item_id", itemID, "error", err)
		return err
	}
	return s.publish(ctx, listID, "remove_item")
}

// RemoveItemByContent deletes the first item with matching content and
// broadcasts the result. Legacy compatibility mode; prefer RemoveItem.
func (s *ListService) RemoveItemByContent(ctx context.Context, listID, content string) error {
	slog.Info("RemoveItemByContent request received", "list_id", listID, "content", content)
	if listID == "" {
		return fmt.Errorf("list id is required: %w", storage.ErrValidation)
	}

	defer s.lockList(listID).Unlock()

	if err := s.store.RemoveItemByContent(ctx, listID, content); err != nil {
		slog.Error("RemoveItemByContent failed", "list_id", listID, "error", err)
		return err
	}
	return s.publish(ctx, listID, "remove_item")
}

// SetItemChecked updates one item's checked flag and broadcasts the result.
func (s *ListService) SetItemChecked(ctx context.Context, listID string, itemID int64, checked bool) error {
	slog.Info("SetItemChecked request received", "list_id", listID, "item_id", itemID, "checked", checked)
	if listID == "" {
		return fmt.Errorf("list id is required: %w", storage.ErrValidation)
	}

	defer s.lockList(listID).Unlock()

	if err := s.store.SetItemChecked(ctx, listID, itemID, checked); err != nil {
		slog.Error("SetItemChecked failed", "list_id", listID, "item_id", itemID, "error", err)
		return err
	}
	return s.publish(ctx, listID, "set_checked")
}

// SetItemQuantity updates one item's quantity and broadcasts the result.
func (s *ListService) SetItemQuantity(ctx context.Context, listID string, itemID int64, quantity int) error {
	slog.Info("SetItemQuantity request received", "list_id", listID, "item_id", itemID, "quantity", quantity)
	if listID == "" {
		return fmt.Errorf("list id is required: %w", storage.ErrValidation)
	}

	defer s.lockList(listID).Unlock()

	if err := s.store.SetItemQuantity(ctx, listID, itemID, quantity); err != nil {
		slog.Error("SetItemQuantity failed", "list_id", listID, "item_id", itemID, "error", err)
		return err
	}
	return s.publish(ctx, listID, "set_quantity")
}

// publish re-reads the canonical item collection and hands it to the
// registry. Broadcasting the fresh read-back rather than echoing the input
// delta means every subscriber converges to the same state an independent
// GetList would return. A read-back failure surfaces to the caller; the
// mutation is durable and recoverable via GetList, but it is never
// reported as a clean success.
func (s *ListService) publish(ctx context.Context, listID, operation string) error {
	items, err := s.store.ListItems(ctx, listID)
	if err != nil {
		slog.Error("Post-mutation read-back failed", "list_id", listID, "error", err)
		return err
	}

	metrics.MutationsTotal.WithLabelValues(operation).Inc()
	metrics.BroadcastsTotal.Inc()
	s.registry.Broadcast(listID, items)
	return nil
}

// Join subscribes a connection to the list's room. A join for an unknown
// list is logged and ignored rather than failing the connection:
// subscribing is not a mutation and the client may simply hold a stale
// token.
func (s *ListService) Join(ctx context.Context, listID string, sub channel.Subscriber) {
	if _, err := s.store.GetList(ctx, listID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			slog.Info("Ignoring join of unknown list", "list_id", listID)
		} else {
			slog.Error("Could not verify list on join, ignoring", "list_id", listID, "error", err)
		}
		return
	}

	s.registry.Subscribe(listID, sub)
	slog.Info("Subscriber joined list", "list_id", listID, "room_size", s.registry.RoomSize(listID))
}

// Leave removes a connection from every room it joined.
func (s *ListService) Leave(sub channel.Subscriber) {
	s.registry.Unsubscribe(sub)
}
