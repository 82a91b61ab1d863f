package channel

import (
	"errors"
	"sync"
	"testing"

	"github.com/mariovida/list-backend/internal/models"
)

// fakeSubscriber records every update it receives.
type fakeSubscriber struct {
	mu      sync.Mutex
	updates []string
	fail    bool
}

func (f *fakeSubscriber) SendListUpdate(listID string, _ []models.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("connection closed")
	}
	f.updates = append(f.updates, listID)
	return nil
}

func (f *fakeSubscriber) received() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.updates...)
}

func TestSubscribeIsIdempotent(t *testing.T) {
	r := NewRegistry()
	sub := &fakeSubscriber{}

	r.Subscribe("list-1", sub)
	r.Subscribe("list-1", sub)

	if got := r.RoomSize("list-1"); got != 1 {
		t.Fatalf("room size: got %d, want 1", got)
	}

	r.Broadcast("list-1", nil)
	if got := len(sub.received()); got != 1 {
		t.Errorf("expected exactly one delivery after double join, got %d", got)
	}
}

func TestBroadcastReachesOnlyRoomMembers(t *testing.T) {
	r := NewRegistry()
	a, b, other := &fakeSubscriber{}, &fakeSubscriber{}, &fakeSubscriber{}

	r.Subscribe("list-1", a)
	r.Subscribe("list-1", b)
	r.Subscribe("list-2", other)

	r.Broadcast("list-1", []models.Item{{ID: 1, Content: "bread"}})

	if len(a.received()) != 1 || len(b.received()) != 1 {
		t.Errorf("both room members should receive the broadcast: a=%d b=%d",
			len(a.received()), len(b.received()))
	}
	if len(other.received()) != 0 {
		t.Errorf("subscriber of another list received %d updates", len(other.received()))
	}
}

func TestBroadcastToEmptyRoomIsNoop(t *testing.T) {
	r := NewRegistry()
	r.Broadcast("unknown", nil)
}

func TestUnsubscribeRemovesFromAllRooms(t *testing.T) {
	r := NewRegistry()
	sub := &fakeSubscriber{}

	r.Subscribe("list-1", sub)
	r.Subscribe("list-2", sub)
	r.Unsubscribe(sub)

	if r.RoomSize("list-1") != 0 || r.RoomSize("list-2") != 0 {
		t.Error("expected subscriber gone from every room")
	}

	r.Broadcast("list-1", nil)
	r.Broadcast("list-2", nil)
	if got := len(sub.received()); got != 0 {
		t.Errorf("unsubscribed connection received %d updates", got)
	}

	// Idempotent on repeat.
	r.Unsubscribe(sub)
}

func TestFailingSubscriberIsDropped(t *testing.T) {
	r := NewRegistry()
	dead := &fakeSubscriber{fail: true}
	alive := &fakeSubscriber{}

	r.Subscribe("list-1", dead)
	r.Subscribe("list-1", alive)

	r.Broadcast("list-1", nil)

	if len(alive.received()) != 1 {
		t.Error("a dead subscriber must not block delivery to the rest of the room")
	}
	if got := r.RoomSize("list-1"); got != 1 {
		t.Errorf("room size after drop: got %d, want 1", got)
	}
}
