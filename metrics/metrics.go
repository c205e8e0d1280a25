// Package metrics exposes tournament counters to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "swiss"

// TournamentMetrics is what the service layer records. NewNoop is used in tests
// and wherever no registry is configured.
type TournamentMetrics interface {
	RecordPlayerRegistered()
	RecordMatchReported(round int)
	RecordPairingsGenerated(pairs int)
	RecordStandingsDuration(d time.Duration)
	RecordOperationFailure(operation string)
}

type prometheusMetrics struct {
	playersRegistered prometheus.Counter
	matchesReported   prometheus.Counter
	currentRound      prometheus.Gauge
	pairingsGenerated prometheus.Histogram
	standingsDuration prometheus.Histogram
	operationFailures *prometheus.CounterVec
}

func NewPrometheus(reg prometheus.Registerer) TournamentMetrics {
	m := &prometheusMetrics{
		playersRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "players_registered_total",
			Help:      "Number of registered players.",
		}),
		matchesReported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_reported_total",
			Help:      "Number of reported match results.",
		}),
		currentRound: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "current_round",
			Help:      "Round of the most recently reported match.",
		}),
		pairingsGenerated: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pairings_generated_pairs",
			Help:      "Number of pairs produced per pairing request.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		standingsDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "standings_duration_seconds",
			Help:      "Time spent computing standings.",
			Buckets:   prometheus.DefBuckets,
		}),
		operationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_failures_total",
			Help:      "Failed tournament operations by name.",
		}, []string{"operation"}),
	}
	reg.MustRegister(
		m.playersRegistered,
		m.matchesReported,
		m.currentRound,
		m.pairingsGenerated,
		m.standingsDuration,
		m.operationFailures,
	)
	return m
}

func (m *prometheusMetrics) RecordPlayerRegistered() { m.playersRegistered.Inc() }

func (m *prometheusMetrics) RecordMatchReported(round int) {
	m.matchesReported.Inc()
	m.currentRound.Set(float64(round))
}

func (m *prometheusMetrics) RecordPairingsGenerated(pairs int) {
	m.pairingsGenerated.Observe(float64(pairs))
}

func (m *prometheusMetrics) RecordStandingsDuration(d time.Duration) {
	m.standingsDuration.Observe(d.Seconds())
}

func (m *prometheusMetrics) RecordOperationFailure(operation string) {
	m.operationFailures.WithLabelValues(operation).Inc()
}

type noop struct{}

func NewNoop() TournamentMetrics { return noop{} }

func (noop) RecordPlayerRegistered() {
}

func (noop) RecordMatchReported(int) {
}

func (noop) RecordPairingsGenerated(int) {
}

func (noop) RecordStandingsDuration(time.Duration) {
}

func (noop) RecordOperationFailure(string) {
}
