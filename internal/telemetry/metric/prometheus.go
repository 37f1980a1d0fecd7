package metric

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "respkv"

// Registry holds all application metrics.
//
// The recording methods are safe to call on a nil *Registry, which records nothing.
type Registry struct {
	registry *prometheus.Registry

	ConnectionsTotal  prometheus.Counter
	ConnectionsActive prometheus.Gauge
	CommandsTotal     *prometheus.CounterVec
	CommandDuration   *prometheus.HistogramVec
	DecodeErrors      prometheus.Counter
}

// NewRegistry creates a registry with the server metrics and the Go and
// process collectors registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Registry{
		registry: reg,
		ConnectionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_total",
			Help:      "Total number of accepted client connections.",
		}),
		ConnectionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connections_active",
			Help:      "Number of currently open client connections.",
		}),
		CommandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Total number of dispatched commands by command and result.",
		}, []string{"command", "result"}),
		CommandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "command_duration_seconds",
			Help:      "Command execution latency in seconds.",
			Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05, .1},
		}, []string{"command"}),
		DecodeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decode_errors_total",
			Help:      "Connections closed because the request stream was malformed or over limits.",
		}),
	}

	reg.MustRegister(
		r.ConnectionsTotal,
		r.ConnectionsActive,
		r.CommandsTotal,
		r.CommandDuration,
		r.DecodeErrors,
	)
	return r
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Register adds an extra collector to the registry.
func (r *Registry) Register(c prometheus.Collector) error {
	return r.registry.Register(c)
}

// ConnOpened records an accepted connection.
func (r *Registry) ConnOpened() {
	if r == nil {
		return
	}
	r.ConnectionsTotal.Inc()
	r.ConnectionsActive.Inc()
}

// ConnClosed records a closed connection.
func (r *Registry) ConnClosed() {
	if r == nil {
		return
	}
	r.ConnectionsActive.Dec()
}

// RecordCommand records one dispatched command.
func (r *Registry) RecordCommand(command, result string, d time.Duration) {
	if r == nil {
		return
	}
	r.CommandsTotal.WithLabelValues(command, result).Inc()
	r.CommandDuration.WithLabelValues(command).Observe(d.Seconds())
}

// IncDecodeError records a connection dropped for a malformed stream.
func (r *Registry) IncDecodeError() {
	if r == nil {
		return
	}
	r.DecodeErrors.Inc()
}
