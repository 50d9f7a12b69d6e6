package handler

import (
	"context"
	"log/slog"
	"net/http"
)

// Pinger is satisfied by the storage context (*sqlite.DB).
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health answers GET /healthz with 200 "ok" while the database responds.
func Health(db Pinger, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := db.Ping(r.Context()); err != nil {
			logger.Error("health check failed", slog.String("error", err.Error()))
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	}
}
