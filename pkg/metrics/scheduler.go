package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SchedulerMetrics records planning and commit outcomes for the assignment engine.
type SchedulerMetrics struct {
	duration    *prometheus.HistogramVec
	suggestions prometheus.Counter
	applied     prometheus.Counter
	rejected    *prometheus.CounterVec
}

// NewSchedulerMetrics registers the scheduler metrics on the provided registerer.
func NewSchedulerMetrics(reg prometheus.Registerer) *SchedulerMetrics {
	if reg == nil {
		return &SchedulerMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "scheduler_operation_duration_seconds",
		Help:    "Duration of scheduler operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	suggestions := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scheduler_suggestions_total",
		Help: "Volunteer suggestions emitted by the planner.",
	})
	applied := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scheduler_assignments_applied_total",
		Help: "Assignments durably created by the commit engine.",
	})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scheduler_assignments_rejected_total",
		Help: "Assignment attempts rejected at commit time.",
	}, []string{"reason"})
	reg.MustRegister(duration, suggestions, applied, rejected)
	return &SchedulerMetrics{
		duration:    duration,
		suggestions: suggestions,
		applied:     applied,
		rejected:    rejected,
	}
}

// ObserveDuration records the duration for the named operation.
func (s *SchedulerMetrics) ObserveDuration(operation string, duration time.Duration) {
	if s == nil || s.duration == nil {
		return
	}
	s.duration.WithLabelValues(normalizeLabel(operation)).Observe(duration.Seconds())
}

// AddSuggestions counts emitted volunteer suggestions.
func (s *SchedulerMetrics) AddSuggestions(n int) {
	if s == nil || s.suggestions == nil || n <= 0 {
		return
	}
	s.suggestions.Add(float64(n))
}

// AddApplied counts assignments created by the commit engine.
func (s *SchedulerMetrics) AddApplied(n int) {
	if s == nil || s.applied == nil || n <= 0 {
		return
	}
	s.applied.Add(float64(n))
}

// IncRejected counts a commit-time rejection by reason.
func (s *SchedulerMetrics) IncRejected(reason string) {
	if s == nil || s.rejected == nil {
		return
	}
	s.rejected.WithLabelValues(normalizeLabel(reason)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
