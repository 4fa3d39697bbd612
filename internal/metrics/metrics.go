package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	upstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dogs",
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Requests sent to the dog API, by endpoint and outcome.",
		},
		[]string{"endpoint", "outcome"},
	)

	upstreamDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dogs",
			Subsystem: "upstream",
			Name:      "request_duration_seconds",
			Help:      "Duration of requests to the dog API.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~40s
		},
		[]string{"endpoint"},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dogs",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dogs",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	activeSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "dogs",
			Subsystem: "sessions",
			Name:      "active",
			Help:      "Number of open browsing sessions.",
		},
	)

	screenFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dogs",
			Subsystem: "screen",
			Name:      "fetches_total",
			Help:      "Completed screen fetches, by screen and result kind.",
		},
		[]string{"screen", "kind"},
	)

	refreshesDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dogs",
			Subsystem: "screen",
			Name:      "refreshes_dropped_total",
			Help:      "Refresh requests ignored because a fetch was already in flight.",
		},
		[]string{"screen"},
	)
)

func init() {
	Registry.MustRegister(
		upstreamRequests,
		upstreamDuration,
		httpRequests,
		httpDuration,
		activeSessions,
		screenFetches,
		refreshesDropped,
	)
}

// Handler serves the application registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func ObserveUpstream(endpoint, outcome string, d time.Duration) {
	upstreamRequests.WithLabelValues(endpoint, outcome).Inc()
	upstreamDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

func ObserveHTTP(method, path, status string, d time.Duration) {
	httpRequests.WithLabelValues(method, path, status).Inc()
	httpDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

func SessionOpened() { activeSessions.Inc() }

func SessionClosed() { activeSessions.Dec() }

func ScreenFetched(screen, kind string) {
	screenFetches.WithLabelValues(screen, kind).Inc()
}

func RefreshDropped(screen string) {
	refreshesDropped.WithLabelValues(screen).Inc()
}
