// Package channel tracks which connections are subscribed to which list
// and fans committed updates out to them.
package channel

import (
	"log/slog"
	"sync"

	"github.com/mariovida/list-backend/internal/models"
)

// Subscriber is one live connection interested in list updates. The
// registry only ever calls SendListUpdate; transport concerns (framing,
// write serialization) live behind the implementation.
type Subscriber interface {
	SendListUpdate(listID string, items []models.Item) error
}

// Registry maps list tokens to their current set of subscribers ("rooms").
// Lists are independent: no operation ever touches more than one room plus
// the reverse membership index.
type Registry struct {
	mu     sync.RWMutex
	rooms  map[string]map[Subscriber]struct{}
	joined map[Subscriber]map[string]struct{}
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		rooms:  make(map[string]map[Subscriber]struct{}),
		joined: make(map[Subscriber]map[string]struct{}),
	}
}

// Subscribe adds sub to the room for listID. Joining the same room twice
// is idempotent; the subscriber still receives each broadcast once.
func (r *Registry) Subscribe(listID string, sub Subscriber) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[listID]
	if !ok {
		room = make(map[Subscriber]struct{})
		r.rooms[listID] = room
	}
	room[sub] = struct{}{}

	lists, ok := r.joined[sub]
	if !ok {
		lists = make(map[string]struct{})
		r.joined[sub] = lists
	}
	lists[listID] = struct{}{}
}

// Unsubscribe removes sub from every room it joined. Idempotent; called
// on disconnect.
func (r *Registry) Unsubscribe(sub Subscriber) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unsubscribeLocked(sub)
}

func (r *Registry) unsubscribeLocked(sub Subscriber) {
	for listID := range r.joined[sub] {
		delete(r.rooms[listID], sub)
		if len(r.rooms[listID]) == 0 {
			delete(r.rooms, listID)
		}
	}
	delete(r.joined, sub)
}

// Broadcast delivers the item collection to every subscriber of listID,
// best-effort. A subscriber whose send fails (typically already
// disconnected) is dropped from all rooms and skipped, never retried.
func (r *Registry) Broadcast(listID string, items []models.Item) {
	r.mu.RLock()
	subs := make([]Subscriber, 0, len(r.rooms[listID]))
	for sub := range r.rooms[listID] {
		subs = append(subs, sub)
	}
	r.mu.RUnlock()

	for _, sub := range subs {
		if err := sub.SendListUpdate(listID, items); err != nil {
			slog.Warn("Dropping unreachable subscriber", "list_id", listID, "error", err)
			r.Unsubscribe(sub)
		}
	}
}

// RoomSize reports how many subscribers the list currently has.
func (r *Registry) RoomSize(listID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms[listID])
}
