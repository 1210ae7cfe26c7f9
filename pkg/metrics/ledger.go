package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// LedgerMetrics records how ledger reconciliations behave in production:
// how long the two-source merge takes and how often it fails.
type LedgerMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewLedgerMetrics registers the ledger metrics on the provided registerer.
func NewLedgerMetrics(reg prometheus.Registerer) *LedgerMetrics {
	if reg == nil {
		return &LedgerMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ledger_compute_duration_seconds",
		Help:    "Duration of ledger history/totals computations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"op", "mode"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_compute_success",
		Help: "Successful ledger computations.",
	}, []string{"op", "mode"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_compute_failure",
		Help: "Failed ledger computations.",
	}, []string{"op", "mode"})
	reg.MustRegister(duration, success, failure)
	return &LedgerMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// ObserveDuration records the duration for the named operation and lookup mode.
func (m *LedgerMetrics) ObserveDuration(op, mode string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(op), normalizeLabel(mode)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter.
func (m *LedgerMetrics) IncSuccess(op, mode string) {
	if m == nil || m.success == nil {
		return
	}
	m.success.WithLabelValues(normalizeLabel(op), normalizeLabel(mode)).Inc()
}

// IncFailure increments the failure counter.
func (m *LedgerMetrics) IncFailure(op, mode string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(normalizeLabel(op), normalizeLabel(mode)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
