package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the decision module.
type Metrics struct {
	// Decision outcomes by status and segment
	DecisionOutcome *prometheus.CounterVec

	// Approved amounts
	ApprovedAmount prometheus.Histogram

	// Overall evaluation latency
	EvaluateLatency prometheus.Histogram
}

// New creates a new Metrics instance with all decision module metrics registered.
func New() *Metrics {
	return &Metrics{
		DecisionOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "otsus_decision_outcomes_total",
			Help: "Total decision outcomes by status and applicant segment",
		}, []string{"status", "segment"}),

		ApprovedAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "otsus_decision_approved_amount",
			Help:    "Approved loan amounts",
			Buckets: []float64{2000, 3000, 4000, 5000, 6000, 7000, 8000, 9000, 10000},
		}),

		EvaluateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "otsus_decision_evaluate_duration_seconds",
			Help:    "Duration of full decision evaluation including record persistence",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
	}
}

// IncrementOutcome records a decision outcome.
func (m *Metrics) IncrementOutcome(status, segment string) {
	if m != nil {
		m.DecisionOutcome.WithLabelValues(status, segment).Inc()
	}
}

// ObserveApprovedAmount records an approved loan amount.
func (m *Metrics) ObserveApprovedAmount(amount int) {
	if m != nil {
		m.ApprovedAmount.Observe(float64(amount))
	}
}

// ObserveEvaluateLatency records the total evaluation duration.
func (m *Metrics) ObserveEvaluateLatency(d time.Duration) {
	if m != nil {
		m.EvaluateLatency.Observe(d.Seconds())
	}
}
