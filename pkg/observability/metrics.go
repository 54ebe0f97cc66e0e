package observability

import (
	"context"

	"github.com/aretw0/qso/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the conversation collectors.
type Metrics struct {
	Transitions       *prometheus.CounterVec
	Rejects           *prometheus.CounterVec
	ThresholdExceeded *prometheus.CounterVec
	Failures          prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qso_transitions_total",
				Help: "Total number of phase transitions",
			},
			[]string{"transition", "from", "to"},
		),
		Rejects: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qso_rejected_messages_total",
				Help: "Total number of messages that did not advance the conversation",
			},
			[]string{"phase"},
		),
		ThresholdExceeded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "qso_threshold_exceeded_total",
				Help: "Total number of messages processed with the failure counter above threshold",
			},
			[]string{"phase"},
		),
		Failures: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "qso_failure_counter",
				Help: "Current value of the engine failure counter",
			},
		),
	}
	reg.MustRegister(m.Transitions, m.Rejects, m.ThresholdExceeded, m.Failures)
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: func(ctx context.Context, e *domain.TransitionEvent) {
			m.Transitions.WithLabelValues(string(e.Transition), string(e.From), string(e.To)).Inc()
			m.Failures.Set(0)
		},
		OnReject: func(ctx context.Context, e *domain.RejectEvent) {
			m.Rejects.WithLabelValues(string(e.Phase)).Inc()
			m.Failures.Set(float64(e.Failures))
		},
		OnThresholdExceeded: func(ctx context.Context, e *domain.ThresholdEvent) {
			m.ThresholdExceeded.WithLabelValues(string(e.Phase)).Inc()
		},
	}
}
