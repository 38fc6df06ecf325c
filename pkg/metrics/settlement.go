package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SettlementMetrics records outcomes of checkout settlements.
type SettlementMetrics struct {
	duration *prometheus.HistogramVec
	success  prometheus.Counter
	failure  *prometheus.CounterVec
}

// NewSettlementMetrics registers the settlement metrics on the provided registerer.
func NewSettlementMetrics(reg prometheus.Registerer) *SettlementMetrics {
	if reg == nil {
		return &SettlementMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "settlement_duration_seconds",
		Help:    "Duration of checkout settlements in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	success := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "settlement_success_total",
		Help: "Successful checkout settlements.",
	})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "settlement_failure_total",
		Help: "Failed checkout settlements by reason.",
	}, []string{"reason"})
	reg.MustRegister(duration, success, failure)
	return &SettlementMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// ObserveDuration records how long a settlement attempt took.
func (m *SettlementMetrics) ObserveDuration(outcome string, d time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(outcome).Observe(d.Seconds())
}

// IncSuccess increments the success counter.
func (m *SettlementMetrics) IncSuccess() {
	if m == nil || m.success == nil {
		return
	}
	m.success.Inc()
}

// IncFailure increments the failure counter for the given reason.
func (m *SettlementMetrics) IncFailure(reason string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(reason).Inc()
}
