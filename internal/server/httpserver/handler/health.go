package handler

import (
	"net/http"
	"time"

	"github.com/yndnr/respkv/internal/infra/buildinfo"
)

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status  string         `json:"status"`
	Time    string         `json:"time"`
	Uptime  string         `json:"uptime"`
	Keys    int            `json:"keys"`
	Version buildinfo.Info `json:"version"`
}

// handleHealth handles GET /healthz.
func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	keys := 0
	if h.store != nil {
		keys = h.store.Len()
	}
	h.writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Time:    time.Now().UTC().Format(time.RFC3339),
		Uptime:  time.Since(h.started).Truncate(time.Second).String(),
		Keys:    keys,
		Version: buildinfo.Get(),
	})
}
