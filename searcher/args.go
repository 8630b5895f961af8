package searcher

import (
	"patzer/experiments/metrics"
	"patzer/game"
)

type Option func(a *AlphaBeta)

// WithDepth sets the fixed search depth in plies.
func WithDepth(depth int) Option {
	return func(a *AlphaBeta) {
		a.depth = depth
	}
}

// WithTableSize sets the number of transposition table slots per decision.
func WithTableSize(size int) Option {
	return func(a *AlphaBeta) {
		if size > 0 {
			a.tableSize = size
		}
	}
}

// WithSeed makes move ordering reproducible.
func WithSeed(seed uint64) Option {
	return func(a *AlphaBeta) {
		a.seed = seed
		a.seeded = true
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(a *AlphaBeta) {
		if evaluate != nil {
			a.evaluate = evaluate
		}
	}
}

// WithMetrics reports the metrics of every completed search to report.
func WithMetrics(report func(metrics.SearchMetric)) Option {
	return func(a *AlphaBeta) {
		a.report = report
	}
}
