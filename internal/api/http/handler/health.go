package handler

import (
	"context"
	"net/http"
)

// Pinger reports database reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health handles the liveness endpoint.
type Health struct {
	db Pinger
}

// NewHealth creates a new Health handler.
func NewHealth(db Pinger) *Health {
	return &Health{db: db}
}

// Check reports service and database health.
func (h *Health) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		WriteError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	WriteData(w, http.StatusOK, map[string]string{"status": "ok"})
}
