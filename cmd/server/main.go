package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/mariovida/list-backend/internal/channel"
	"github.com/mariovida/list-backend/internal/service"
	"github.com/mariovida/list-backend/internal/storage"
	"github.com/mariovida/list-backend/internal/storage/jsonfile"
	"github.com/mariovida/list-backend/internal/storage/sqlite"
	"github.com/mariovida/list-backend/internal/transport"
	"github.com/mariovida/list-backend/pkg/logging"
)

const defaultPort = "3000"

// defaultOrigins matches the origins the frontend is deployed to.
var defaultOrigins = []string{
	"http://localhost:5173",
	"https://list-app-two.vercel.app",
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// newStore selects the storage backend from STORE_BACKEND.
func newStore() (storage.Store, error) {
	switch backend := getEnv("STORE_BACKEND", "sqlite"); backend {
	case "sqlite":
		return sqlite.New(getEnv("DB_PATH", "./data/lists.db"))
	case "jsonfile":
		return jsonfile.New(getEnv("DATA_FILE", "./data/lists.json"))
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", backend)
	}
}

func allowedOrigins() []string {
	if raw := os.Getenv("ALLOWED_ORIGINS"); raw != "" {
		origins := strings.Split(raw, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		return origins
	}
	return defaultOrigins
}

func main() {
	logging.Setup()

	store, err := newStore()
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "backend", getEnv("STORE_BACKEND", "sqlite"))

	registry := channel.NewRegistry()
	svc := service.NewListService(store, registry)
	router := transport.NewRouter(svc, allowedOrigins())

	addr := ":" + getEnv("PORT", defaultPort)
	slog.Info("Server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
	if err := http.ListenAndServe(addr, router); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
