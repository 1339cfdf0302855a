package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// InterpreterMetrics groups the prometheus collectors for the chat pipeline.
// A nil *InterpreterMetrics is valid and records nothing, so tests can run
// the interpreter without a registry.
type InterpreterMetrics struct {
	registry      *prometheus.Registry
	invocations   prometheus.Counter
	parseFailures prometheus.Counter
	taskOutcomes  *prometheus.CounterVec
	duration      prometheus.Histogram
}

// NewInterpreterMetrics creates and registers all interpreter collectors on a
// dedicated registry.
func NewInterpreterMetrics() *InterpreterMetrics {
	registry := prometheus.NewRegistry()

	invocations := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pantrybot_interpreter_invocations_total",
		Help: "Number of interpreter invocations",
	})

	parseFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pantrybot_interpreter_parse_failures_total",
		Help: "Completions that fell back to plain text because the payload could not be parsed",
	})

	taskOutcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pantrybot_task_outcomes_total",
		Help: "Executed task outcomes by action and result",
	}, []string{"action", "result"})

	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pantrybot_interpreter_duration_seconds",
		Help:    "End-to-end duration of one interpreter invocation",
		Buckets: prometheus.DefBuckets,
	})

	registry.MustRegister(invocations, parseFailures, taskOutcomes, duration)

	return &InterpreterMetrics{
		registry:      registry,
		invocations:   invocations,
		parseFailures: parseFailures,
		taskOutcomes:  taskOutcomes,
		duration:      duration,
	}
}

// Registry returns the registry backing these collectors for the /metrics
// endpoint.
func (m *InterpreterMetrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveInvocation records one completed interpreter invocation.
func (m *InterpreterMetrics) ObserveInvocation(d time.Duration, parseFailed bool) {
	if m == nil {
		return
	}
	m.invocations.Inc()
	m.duration.Observe(d.Seconds())
	if parseFailed {
		m.parseFailures.Inc()
	}
}

// RecordTaskOutcome records the result of one executed or rejected task.
func (m *InterpreterMetrics) RecordTaskOutcome(action string, success bool) {
	if m == nil {
		return
	}
	result := "failure"
	if success {
		result = "success"
	}
	m.taskOutcomes.WithLabelValues(action, result).Inc()
}
