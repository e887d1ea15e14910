package state

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics instruments a Store.
type Metrics struct {
	dispatches      *prometheus.CounterVec
	persistDuration *prometheus.HistogramVec
	records         *prometheus.GaugeVec
}

// NewMetrics creates the store collectors and registers them with reg.
// A nil reg skips registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fintrack",
			Name:      "dispatch_total",
			Help:      "Dispatched actions by name and result.",
		}, []string{"action", "result"}),
		persistDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "fintrack",
			Name:      "persist_duration_seconds",
			Help:      "Time spent persisting aggregates during dispatch.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}, []string{"effect"}),
		records: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "fintrack",
			Name:      "records",
			Help:      "Records currently held per sequence.",
		}, []string{"sequence"}),
	}
	if reg != nil {
		reg.MustRegister(m.dispatches, m.persistDuration, m.records)
	}
	return m
}

func (m *Metrics) observeDispatch(a Action, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.dispatches.WithLabelValues(actionName(a), result).Inc()
}

func (m *Metrics) observePersist(e Effect, seconds float64) {
	if m == nil {
		return
	}
	m.persistDuration.WithLabelValues(e.String()).Observe(seconds)
}

func (m *Metrics) observeState(s AppState) {
	if m == nil {
		return
	}
	m.records.WithLabelValues(string(SequenceIncome)).Set(float64(len(s.Data.Income)))
	m.records.WithLabelValues(string(SequenceExpenses)).Set(float64(len(s.Data.Expenses)))
	m.records.WithLabelValues(string(SequenceAssets)).Set(float64(len(s.Data.Assets)))
	m.records.WithLabelValues(string(SequenceLiabilities)).Set(float64(len(s.Data.Liabilities)))
}

func actionName(a Action) string {
	if a == nil {
		return "nil"
	}
	return a.Name()
}
