package transport

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/mariovida/list-backend/internal/metrics"
	"github.com/mariovida/list-backend/internal/models"
)

// clientFrame is what a websocket client sends. The only supported event
// is joinList.
type clientFrame struct {
	Event  string `json:"event"`
	ListID string `json:"listId"`
}

// updateFrame is the server push sent on every committed mutation.
type updateFrame struct {
	Event  string        `json:"event"`
	ListID string        `json:"listId"`
	Items  []models.Item `json:"items"`
}

// wsSubscriber adapts a websocket connection to channel.Subscriber.
// Broadcasts can arrive from many mutating requests concurrently, so
// writes are serialized with a mutex (gorilla allows one writer at a time).
type wsSubscriber struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsSubscriber) SendListUpdate(listID string, items []models.Item) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(updateFrame{Event: "listUpdated", ListID: listID, Items: items})
}

// serveWS upgrades the connection and reads joinList frames until the
// client disconnects, at which point the subscriber leaves every room.
func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("Websocket upgrade failed", "error", err, "remote_addr", r.RemoteAddr)
		return
	}

	sub := &wsSubscriber{conn: conn}
	metrics.SubscribersActive.Inc()
	slog.Info("Websocket connected", "remote_addr", r.RemoteAddr)

	defer func() {
		s.svc.Leave(sub)
		conn.Close()
		metrics.SubscribersActive.Dec()
		slog.Info("Websocket disconnected", "remote_addr", r.RemoteAddr)
	}()

	for {
		var frame clientFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Warn("Websocket read failed", "error", err)
			}
			return
		}

		switch frame.Event {
		case "joinList":
			s.svc.Join(r.Context(), frame.ListID, sub)
		default:
			slog.Info("Ignoring unknown websocket event", "event", frame.Event)
		}
	}
}
