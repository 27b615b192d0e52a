package metrics

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics captures low-cardinality HTTP server metrics.
type HTTPMetrics struct {
	requestDuration *prometheus.HistogramVec
	inFlight        prometheus.Gauge
}

var (
	httpMetricsOnce sync.Once
	httpMetrics     *HTTPMetrics
)

func HTTP() *HTTPMetrics {
	return HTTPWithConfig(Config{})
}

func HTTPWithConfig(cfg Config) *HTTPMetrics {
	httpMetricsOnce.Do(func() {
		httpMetrics = newHTTPMetrics(prometheus.DefaultRegisterer, cfg)
	})
	return httpMetrics
}

func ResetHTTPMetricsForTest() {
	httpMetricsOnce = sync.Once{}
	httpMetrics = nil
}

func newHTTPMetrics(registerer prometheus.Registerer, cfg Config) *HTTPMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "cartd"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}

	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	m := &HTTPMetrics{
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_server_duration_ms",
			Help:        "HTTP request duration in milliseconds.",
			Buckets:     []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
			ConstLabels: constLabels,
		}, []string{"endpoint", "status_code"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "http_server_in_flight",
			Help:        "In-flight HTTP requests.",
			ConstLabels: constLabels,
		}),
	}

	registerer.MustRegister(m.requestDuration, m.inFlight)
	return m
}

// GinMiddleware records request duration and in-flight counts. The routed
// path template keeps label cardinality bounded.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		m.inFlight.Inc()
		start := time.Now()
		c.Next()
		m.inFlight.Dec()

		endpoint := normalizeEndpoint(c.FullPath())
		status := strconv.Itoa(c.Writer.Status())
		m.requestDuration.WithLabelValues(endpoint, status).
			Observe(float64(time.Since(start).Milliseconds()))
	}
}

func normalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return "unknown"
	}
	return endpoint
}
