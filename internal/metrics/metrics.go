// Package metrics holds the Prometheus collectors for the solver. They are
// registered on the default registry and served by the diagnostics
// listener when one is configured.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SessionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mastermind_sessions_total",
		Help: "Finished solving sessions by strategy and outcome",
	}, []string{"strategy", "outcome"})

	GuessesPerSession = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mastermind_guesses_per_session",
		Help:    "Guesses used by finished sessions",
		Buckets: []float64{1, 2, 3, 4, 5, 6, 7, 8, 10, 15, 20},
	}, []string{"strategy"})

	MinimaxDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mastermind_minimax_evaluation_seconds",
		Help:    "Time to evaluate every hypothetical guess for one turn",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 12),
	})

	PrunedCodes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mastermind_pruned_codes_total",
		Help: "Codes discarded from candidate sets",
	})
)
