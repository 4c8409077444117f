package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are registered in the default Prometheus registry and exposed by
// promhttp.Handler on /metrics.
var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sharesplit",
			Name:      "requests_total",
			Help:      "Total number of handled API requests.",
		},
		[]string{"transport", "route", "code"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sharesplit",
			Name:      "request_duration_seconds",
			Help:      "API request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"transport", "route"},
	)
)

// ObserveRequest records one finished request.
func ObserveRequest(transport, route, code string, duration time.Duration) {
	requestsTotal.WithLabelValues(transport, route, code).Inc()
	requestDuration.WithLabelValues(transport, route).Observe(duration.Seconds())
}
