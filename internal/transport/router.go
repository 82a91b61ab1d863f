// Package transport terminates HTTP requests and long-lived websocket
// connections and translates them into engine calls and room
// subscriptions. The wire surface mirrors the original list API: JSON
// bodies, token-addressed routes, a listUpdated push event.
package transport

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/mariovida/list-backend/internal/metrics"
	"github.com/mariovida/list-backend/internal/middleware"
	"github.com/mariovida/list-backend/internal/service"
)

// Server holds the engine and websocket upgrader behind the HTTP routes.
type Server struct {
	svc      *service.ListService
	upgrader websocket.Upgrader
}

// NewRouter wires all routes, middleware and the metrics endpoint.
// allowedOrigins is the CORS allow-list shared with the websocket
// origin check.
//
// Middleware wraps the router from the outside so that preflight OPTIONS
// requests and unmatched paths still pass through CORS and logging.
func NewRouter(svc *service.ListService, allowedOrigins []string) http.Handler {
	s := &Server{
		svc: svc,
		upgrader: websocket.Upgrader{
			CheckOrigin: originChecker(allowedOrigins),
		},
	}

	r := mux.NewRouter()

	r.Methods(http.MethodPost).Path("/api/create-list").HandlerFunc(s.createList)
	r.Methods(http.MethodGet).Path("/api/lists/{id}").HandlerFunc(s.getList)
	r.Methods(http.MethodPost).Path("/api/lists/{id}").HandlerFunc(s.addItem)
	r.Methods(http.MethodDelete).Path("/api/lists/{id}/item").HandlerFunc(s.removeItemByContent)
	r.Methods(http.MethodDelete).Path("/api/lists/{id}/items/{itemID}").HandlerFunc(s.removeItem)
	r.Methods(http.MethodPut).Path("/api/lists/{id}/items/{itemID}/checked").HandlerFunc(s.setChecked)
	r.Methods(http.MethodPut).Path("/api/lists/{id}/items/{itemID}/quantity").HandlerFunc(s.setQuantity)

	r.Methods(http.MethodGet).Path("/ws").HandlerFunc(s.serveWS)
	r.Methods(http.MethodGet).Path("/metrics").Handler(metrics.Handler())

	return middleware.Logging(middleware.CORS(allowedOrigins)(r))
}

// originChecker mirrors the CORS allow-list for websocket upgrades.
// Connections without an Origin header (non-browser clients) are accepted.
func originChecker(allowedOrigins []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowedOrigins {
			if o == origin {
				return true
			}
		}
		return false
	}
}
