// Package metrics provides Prometheus collectors for sequence requests.
package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/whhaicheng/AverageCalc/internal/domain/sequence"
)

const namespace = "averagecalc"

// Outcome labels.
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeCanceled = "canceled"
)

// Metrics holds the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	resolves   *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	superseded prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		resolves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolves_total",
			Help:      "Sequence resolutions by source kind and outcome.",
		}, []string{"kind", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "resolve_duration_seconds",
			Help:      "Time spent resolving a sequence.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
		superseded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "superseded_total",
			Help:      "Results discarded because a newer request was issued.",
		}),
	}

	for _, c := range []prometheus.Collector{m.resolves, m.duration, m.superseded} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveResolve records one resolution of kind that took d and ended with err.
func (m *Metrics) ObserveResolve(kind sequence.SourceKind, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.resolves.WithLabelValues(string(kind), Outcome(err)).Inc()
	m.duration.WithLabelValues(string(kind)).Observe(d.Seconds())
}

// IncSuperseded records a discarded result.
func (m *Metrics) IncSuperseded() {
	if m == nil {
		return
	}
	m.superseded.Inc()
}

// Outcome maps an error to its outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, context.Canceled):
		return OutcomeCanceled
	default:
		return OutcomeFailure
	}
}
