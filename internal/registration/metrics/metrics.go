package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the registration module. One instance is
// shared by all domain services; the domain key is a label.
type Metrics struct {
	RegistrationsCreated *prometheus.CounterVec
	DuplicatesRejected   *prometheus.CounterVec
	TransitionsApplied   *prometheus.CounterVec
	DispatchFailures     *prometheus.CounterVec
	ListDuration         prometheus.Histogram
	TransitionDuration   prometheus.Histogram
}

// New creates a Metrics instance with all registration metrics registered.
func New() *Metrics {
	return &Metrics{
		RegistrationsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "flock_registrations_created_total",
			Help: "Total number of registrations created",
		}, []string{"domain"}),
		DuplicatesRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "flock_registrations_duplicates_rejected_total",
			Help: "Total sign-up attempts rejected as already registered",
		}, []string{"domain"}),
		TransitionsApplied: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "flock_registration_transitions_total",
			Help: "Total status transitions persisted, by target status",
		}, []string{"domain", "status"}),
		DispatchFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "flock_registration_dispatch_failures_total",
			Help: "Total disposition notifications that failed after a successful status write",
		}, []string{"domain"}),
		ListDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "flock_registration_list_duration_seconds",
			Help:    "Duration of listing queries (search + aggregation)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		TransitionDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "flock_registration_transition_duration_seconds",
			Help:    "Duration of apply-transition operations including dispatch",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementCreated records a successful registration create.
func (m *Metrics) IncrementCreated(domain string) {
	if m == nil {
		return
	}
	m.RegistrationsCreated.WithLabelValues(domain).Inc()
}

// IncrementDuplicateRejected records a rejected duplicate sign-up.
func (m *Metrics) IncrementDuplicateRejected(domain string) {
	if m == nil {
		return
	}
	m.DuplicatesRejected.WithLabelValues(domain).Inc()
}

// IncrementTransition records a persisted status transition.
func (m *Metrics) IncrementTransition(domain, status string) {
	if m == nil {
		return
	}
	m.TransitionsApplied.WithLabelValues(domain, status).Inc()
}

// IncrementDispatchFailure records a notification failure after persistence.
func (m *Metrics) IncrementDispatchFailure(domain string) {
	if m == nil {
		return
	}
	m.DispatchFailures.WithLabelValues(domain).Inc()
}

// ObserveList records the duration of a listing query.
func (m *Metrics) ObserveList(start time.Time) {
	if m == nil {
		return
	}
	m.ListDuration.Observe(time.Since(start).Seconds())
}

// ObserveTransition records the duration of an apply-transition operation.
func (m *Metrics) ObserveTransition(start time.Time) {
	if m == nil {
		return
	}
	m.TransitionDuration.Observe(time.Since(start).Seconds())
}
