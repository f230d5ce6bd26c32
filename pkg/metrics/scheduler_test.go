package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNewSchedulerMetricsRegisters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSchedulerMetrics(reg)

	m.ObserveDuration("plan", 120*time.Millisecond)
	m.AddSuggestions(3)
	m.AddApplied(2)
	m.IncRejected("duplicate")
	m.IncRejected("")

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(families) != 4 {
		t.Fatalf("expected 4 metric families, got %d", len(families))
	}
}

func TestSchedulerMetricsNilSafe(t *testing.T) {
	var m *SchedulerMetrics
	m.ObserveDuration("plan", time.Second)
	m.AddSuggestions(1)
	m.AddApplied(1)
	m.IncRejected("conflict")

	empty := NewSchedulerMetrics(nil)
	empty.AddSuggestions(5)
}
