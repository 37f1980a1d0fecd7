package httpserver

import (
	"net/http"

	"github.com/yndnr/respkv/internal/server/httpserver/handler"
	"github.com/yndnr/respkv/internal/telemetry/logger"
	"github.com/yndnr/respkv/internal/telemetry/metric"
)

// RouterConfig holds configuration for the admin router.
type RouterConfig struct {
	// Store is reported in /healthz.
	Store metric.Sizer
	// Metrics is served at /metrics. Nil disables the endpoint.
	Metrics *metric.Registry
	// Logger for request logging.
	Logger logger.Logger
}

// NewRouter creates the admin handler with its middleware chain.
func NewRouter(cfg *RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}

	mux := http.NewServeMux()
	mux.Handle("GET /healthz", handler.New(cfg.Store, log))
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics.Handler())
	}

	return Chain(mux, Recover(log), AccessLog(log))
}
