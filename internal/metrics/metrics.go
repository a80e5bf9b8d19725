package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "satchecker_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"path", "method", "code"},
	)

	httpDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "satchecker_http_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)

	// EphemerisSamples counts assembled ephemeris points across all requests.
	EphemerisSamples = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "satchecker_ephemeris_samples_total",
			Help: "Total number of ephemeris points computed.",
		},
	)

	// PropagationErrors counts orbital model failures.
	PropagationErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "satchecker_propagation_errors_total",
			Help: "Total number of failed propagation attempts.",
		},
	)

	// RateLimited counts requests rejected by the rate limiter.
	RateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "satchecker_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter.",
		},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpDurationSeconds)
	prometheus.MustRegister(EphemerisSamples)
	prometheus.MustRegister(PropagationErrors)
	prometheus.MustRegister(RateLimited)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request count and duration for each request. Routes are
// labeled by their registered pattern, not the raw URL, to bound cardinality.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		path := c.Route().Path
		method := c.Method()
		code := strconv.Itoa(c.Response().StatusCode())

		httpRequestsTotal.WithLabelValues(path, method, code).Inc()
		httpDurationSeconds.WithLabelValues(path, method).Observe(time.Since(start).Seconds())
		return err
	}
}
