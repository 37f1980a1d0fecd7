package metric

import "github.com/prometheus/client_golang/prometheus"

// Sizer reports the number of stored keys.
type Sizer interface {
	Len() int
}

// Collector reports store statistics at scrape time.
type Collector struct {
	store Sizer
	keys  *prometheus.Desc
}

// NewCollector creates a collector over store.
func NewCollector(store Sizer) *Collector {
	return &Collector{
		store: store,
		keys: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "keys"),
			"Number of keys currently stored.",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.keys
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.keys, prometheus.GaugeValue, float64(c.store.Len()))
}
