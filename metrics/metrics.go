package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request latency in seconds, labelled by the chi route pattern.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "opsboard_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "route", "status"},
	)

	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "opsboard_login_attempts_total",
			Help: "Login attempts by role and result",
		},
		[]string{"role", "result"}, // result: success, invalid, disabled
	)

	RecordMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "opsboard_record_mutations_total",
			Help: "Successful record writes by resource and operation",
		},
		[]string{"resource", "operation"}, // operation: create, update, delete, complete, reactivate, move, toggle
	)

	AccessDenied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "opsboard_access_denied_total",
			Help: "Requests refused by the access policy",
		},
		[]string{"route"},
	)
)

func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}

func RecordLogin(role, result string) {
	LoginAttempts.WithLabelValues(role, result).Inc()
}

func RecordMutation(resource, operation string) {
	RecordMutations.WithLabelValues(resource, operation).Inc()
}

func RecordAccessDenied(route string) {
	AccessDenied.WithLabelValues(route).Inc()
}
