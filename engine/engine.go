package engine

import (
	"patzer/experiments/metrics"
	"patzer/gamemaster"
)

type Engine interface {
	// Run plays a game till it is decided or the ply limit is reached
	Run() (result gamemaster.Result, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
