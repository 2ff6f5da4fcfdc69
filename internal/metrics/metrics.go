// Package metrics defines the Prometheus metrics exported by the API.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Enrollment outcomes used as the "outcome" label value.
const (
	OutcomeEnrolled         = "enrolled"
	OutcomeClientNotFound   = "client_not_found"
	OutcomeTripNotFound     = "trip_not_found"
	OutcomeAlreadyEnrolled  = "already_enrolled"
	OutcomeCapacityExceeded = "capacity_exceeded"
	OutcomeInvalid          = "invalid"
	OutcomeError            = "error"
)

var latencyBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}

// Metrics holds every metric the API records.
type Metrics struct {
	Enrollments    *prometheus.CounterVec
	EnrollDuration prometheus.Histogram
	Unenrollments  prometheus.Counter

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
}

// New creates all metrics and registers them with reg.
// main passes its own registry; tests pass prometheus.NewRegistry() so
// repeated construction never collides.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Enrollments: f.NewCounterVec(prometheus.CounterOpts{
			Name: "travelagency_enrollments_total",
			Help: "Enrollment attempts by outcome",
		}, []string{"outcome"}),
		EnrollDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "travelagency_enroll_duration_seconds",
			Help:    "Duration of Enroll operations, including time spent waiting on the trip lock",
			Buckets: latencyBuckets,
		}),
		Unenrollments: f.NewCounter(prometheus.CounterOpts{
			Name: "travelagency_unenrollments_total",
			Help: "Enrollments removed",
		}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "travelagency_http_requests_total",
			Help: "HTTP requests by method, route pattern, and status",
		}, []string{"method", "route", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "travelagency_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route pattern",
			Buckets: latencyBuckets,
		}, []string{"method", "route"}),
	}
}

// ObserveEnroll records one Enroll attempt.
// Call with time.Now() taken at the start of the operation.
func (m *Metrics) ObserveEnroll(outcome string, start time.Time) {
	m.Enrollments.WithLabelValues(outcome).Inc()
	m.EnrollDuration.Observe(time.Since(start).Seconds())
}

// IncrementUnenrolled records a successful unenroll.
func (m *Metrics) IncrementUnenrolled() {
	m.Unenrollments.Inc()
}

// ObserveHTTPRequest records one served request.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, start time.Time) {
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
}
