package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "orbit"

// Metrics Prometheus collectors of the service. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	DashboardRequests *prometheus.CounterVec
	DashboardDuration prometheus.Histogram
	CanalMessages     *prometheus.CounterVec
	WarmedBrands      *prometheus.CounterVec
}

// NewMetrics registers every collector on a private registry
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "endpoint", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "endpoint"}),
		DashboardRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dashboard_requests_total",
			Help:      "Dashboard lookups by cache outcome",
		}, []string{"cache"}),
		DashboardDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dashboard_compute_duration_seconds",
			Help:      "Time spent loading rows and running the aggregation engine",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}),
		CanalMessages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "canal_messages_total",
			Help:      "Binlog messages consumed",
		}, []string{"table", "status"}),
		WarmedBrands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dashboard_warm_brands_total",
			Help:      "Brands handled by the warm job",
		}, []string{"result"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.DashboardRequests,
		m.DashboardDuration,
		m.CanalMessages,
		m.WarmedBrands,
	)
	return m
}

// Middleware records request count and latency per route
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unknown"
		}
		m.httpRequestsTotal.WithLabelValues(c.Request.Method, endpoint, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpRequestDuration.WithLabelValues(c.Request.Method, endpoint).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

func (m *Metrics) ObserveDashboard(cache string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.DashboardRequests.WithLabelValues(cache).Inc()
	if cache != CacheHit {
		m.DashboardDuration.Observe(elapsed.Seconds())
	}
}

func (m *Metrics) CountCanal(table, status string) {
	if m == nil {
		return
	}
	m.CanalMessages.WithLabelValues(table, status).Inc()
}

func (m *Metrics) CountWarm(result string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.WarmedBrands.WithLabelValues(result).Add(float64(n))
}

// cache label values
const (
	CacheHit    = "hit"
	CacheMiss   = "miss"
	CacheBypass = "bypass"
)
