package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics of the backoffice
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Cache Metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Business Metrics
	InlineUpdatesTotal   *prometheus.CounterVec
	ImageUploadsTotal    *prometheus.CounterVec
	VersionChecksTotal   *prometheus.CounterVec
	PushDispatchTotal    *prometheus.CounterVec
	PushDispatchDuration *prometheus.HistogramVec
}

// NewMetricsRegistry registers every metric with reg. The server passes
// prometheus.DefaultRegisterer, tests pass a fresh prometheus.NewRegistry().
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	factory := promauto.With(reg)

	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "appfiy_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "appfiy_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "appfiy_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),

		// Cache Metrics
		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "appfiy_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "appfiy_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		// Business Metrics
		InlineUpdatesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "appfiy_inline_updates_total",
				Help: "Inline field updates by entity, field and result",
			},
			[]string{"entity", "field", "result"},
		),
		ImageUploadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "appfiy_static_image_uploads_total",
				Help: "Static screen image uploads by result",
			},
			[]string{"result"},
		),
		VersionChecksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "appfiy_version_checks_total",
				Help: "Mobile version checks by outcome",
			},
			[]string{"outcome"},
		),
		PushDispatchTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "appfiy_push_dispatch_total",
				Help: "Build notification dispatches by platform and result",
			},
			[]string{"platform", "result"},
		),
		PushDispatchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "appfiy_push_dispatch_duration_seconds",
				Help:    "Push endpoint latency in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"platform"},
		),
	}
}

// ObserveCache records a hit or a miss for a key pattern. Safe on a nil
// registry so services can run without metrics in tests.
func (m *MetricsRegistry) ObserveCache(pattern string, hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheHitsTotal.WithLabelValues(pattern).Inc()
		return
	}
	m.CacheMissesTotal.WithLabelValues(pattern).Inc()
}

func (m *MetricsRegistry) ObserveInlineUpdate(entity, field, result string) {
	if m == nil {
		return
	}
	m.InlineUpdatesTotal.WithLabelValues(entity, field, result).Inc()
}

func (m *MetricsRegistry) ObserveImageUpload(result string) {
	if m == nil {
		return
	}
	m.ImageUploadsTotal.WithLabelValues(result).Inc()
}

func (m *MetricsRegistry) ObserveVersionCheck(outcome string) {
	if m == nil {
		return
	}
	m.VersionChecksTotal.WithLabelValues(outcome).Inc()
}

func (m *MetricsRegistry) ObservePushDispatch(platform, result string, seconds float64) {
	if m == nil {
		return
	}
	m.PushDispatchTotal.WithLabelValues(platform, result).Inc()
	m.PushDispatchDuration.WithLabelValues(platform).Observe(seconds)
}
