package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/yndnr/respkv/internal/telemetry/logger"
	"github.com/yndnr/respkv/internal/telemetry/metric"
)

// Handler serves the health endpoint.
type Handler struct {
	store   metric.Sizer
	logger  logger.Logger
	started time.Time
}

// New creates a new Handler over store.
func New(store metric.Sizer, log logger.Logger) *Handler {
	return &Handler{
		store:   store,
		logger:  log,
		started: time.Now(),
	}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.handleHealth(w, r)
}

// writeJSON writes a JSON response.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}
