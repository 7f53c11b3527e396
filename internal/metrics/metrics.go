// Package metrics exposes Prometheus instrumentation for the conversation
// engine, wired in through domain.Hooks.
package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/blocksecure/tradedesk/pkg/domain"
)

// Metrics holds the engine collectors.
type Metrics struct {
	sessionsStarted prometheus.Counter
	sessionsEnded   *prometheus.CounterVec
	stepsAccepted   *prometheus.CounterVec
	inputsRejected  *prometheus.CounterVec
	notifyFailures  prometheus.Counter
}

// New creates and registers the collectors.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		sessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tradedesk_sessions_started_total",
			Help: "Total number of intake sessions started",
		}),
		sessionsEnded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tradedesk_sessions_ended_total",
			Help: "Total number of intake sessions ended, by reason",
		}, []string{"reason"}),
		stepsAccepted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tradedesk_steps_accepted_total",
			Help: "Total number of accepted answers, by step entered",
		}, []string{"step"}),
		inputsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tradedesk_inputs_rejected_total",
			Help: "Total number of rejected answers, by step",
		}, []string{"step"}),
		notifyFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tradedesk_notify_failures_total",
			Help: "Total number of submissions that could not be delivered to the operator channel",
		}),
	}
	reg.MustRegister(m.sessionsStarted, m.sessionsEnded, m.stepsAccepted, m.inputsRejected, m.notifyFailures)
	return m
}

// Hooks returns engine callbacks that feed the collectors.
func (m *Metrics) Hooks() domain.Hooks {
	return domain.Hooks{
		OnSessionStart: func(_ context.Context, _ *domain.SessionEvent) {
			m.sessionsStarted.Inc()
		},
		OnSessionEnd: func(_ context.Context, e *domain.SessionEvent) {
			m.sessionsEnded.WithLabelValues(string(e.Reason)).Inc()
		},
		OnStepEnter: func(_ context.Context, e *domain.StepEvent) {
			m.stepsAccepted.WithLabelValues(string(e.To)).Inc()
		},
		OnInputRejected: func(_ context.Context, e *domain.StepEvent) {
			m.inputsRejected.WithLabelValues(string(e.From)).Inc()
		},
		OnNotifyFailed: func(_ context.Context, _ *domain.SessionEvent) {
			m.notifyFailures.Inc()
		},
	}
}
