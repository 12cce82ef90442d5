package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/kestrelsoft/docstore/conversions"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Registry metrics
	RegistryPairs *prometheus.GaugeVec

	// Resolution cache metrics
	CacheHits   *prometheus.GaugeVec
	CacheMisses *prometheus.GaugeVec
	PairScans   *prometheus.GaugeVec

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),

		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "docstore_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "docstore_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),

		RegistryPairs: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "docstore_registry_pairs",
				Help: "Number of registered convertible pairs",
			},
			[]string{"direction"},
		),

		CacheHits: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "docstore_resolution_cache_hits_total",
				Help: "Resolution cache hits since registry construction",
			},
			[]string{"direction"},
		),
		CacheMisses: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "docstore_resolution_cache_misses_total",
				Help: "Resolution cache misses since registry construction",
			},
			[]string{"direction"},
		),
		PairScans: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "docstore_resolution_pair_scans_total",
				Help: "Linear pair scans since registry construction",
			},
			[]string{"direction"},
		),

		Uptime: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "docstore_uptime_seconds",
				Help: "Daemon uptime in seconds",
			},
		),
	}

	// Start uptime updater
	go m.updateUptime()

	return m
}

// updateUptime continuously updates the uptime metric
func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.Uptime.Set(time.Since(m.startTime).Seconds())
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// SyncRegistry refreshes the registry and cache gauges from the given
// registry's counters.
func (m *Metrics) SyncRegistry(c *conversions.Conversions) {
	m.RegistryPairs.WithLabelValues("read").Set(float64(len(c.ReadingPairs())))
	m.RegistryPairs.WithLabelValues("write").Set(float64(len(c.WritingPairs())))

	stats := c.Stats()
	m.CacheHits.WithLabelValues("read").Set(float64(stats.ReadHits))
	m.CacheHits.WithLabelValues("write").Set(float64(stats.WriteHits))
	m.CacheMisses.WithLabelValues("read").Set(float64(stats.ReadMisses))
	m.CacheMisses.WithLabelValues("write").Set(float64(stats.WriteMisses))
	m.PairScans.WithLabelValues("read").Set(float64(stats.ReadScans))
	m.PairScans.WithLabelValues("write").Set(float64(stats.WriteScans))
}

// WatchRegistry periodically refreshes registry gauges until stop is closed.
func (m *Metrics) WatchRegistry(c *conversions.Conversions, interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.SyncRegistry(c)
		case <-stop:
			return
		}
	}
}
