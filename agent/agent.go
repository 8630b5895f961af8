package agent

import (
	"errors"
	"fmt"
	"patzer/experiments/metrics"
	"patzer/game"
	"patzer/meta"
	"patzer/player"
	"patzer/searcher"
	"sort"
	"time"
)

var ErrUnknownStrategy = errors.New("unknown strategy")

const (
	FirstLegal = "first-legal"
	Random     = "random"
	Hope       = "hope"
	AlphaBeta  = "alphabeta"
)

type builder struct {
	delay time.Duration
	build func(depth int, report func(metrics.SearchMetric)) game.Strategy
}

var registry = map[string]builder{
	FirstLegal: {
		delay: meta.FIRST_LEGAL_DELAY,
		build: func(int, func(metrics.SearchMetric)) game.Strategy { return searcher.FirstLegal },
	},
	Random: {
		delay: meta.RANDOM_DELAY,
		build: func(int, func(metrics.SearchMetric)) game.Strategy { return searcher.Random },
	},
	Hope: {
		delay: meta.HOPE_DELAY,
		build: func(depth int, _ func(metrics.SearchMetric)) game.Strategy {
			if depth <= 0 {
				depth = meta.HOPE_DEPTH
			}
			return searcher.Hope(depth)
		},
	},
	AlphaBeta: {
		delay: meta.ALPHA_BETA_DELAY,
		build: func(depth int, report func(metrics.SearchMetric)) game.Strategy {
			options := []searcher.Option{}
			if depth > 0 {
				options = append(options, searcher.WithDepth(depth))
			}
			if report != nil {
				options = append(options, searcher.WithMetrics(report))
			}
			return searcher.NewAlphaBeta(options...).Strategy()
		},
	},
}

// Names lists the registered strategies.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds a computer player for config. report, if not nil, receives the
// metrics of every search the strategy runs.
func New(config metrics.AgentConfig, report func(metrics.SearchMetric)) (player.Player, error) {
	b, ok := registry[config.Strategy]
	if !ok {
		return player.Player{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, config.Strategy)
	}
	return player.NewComputer(Label(config), b.build(config.Depth, report), player.WithDelay(b.delay)), nil
}

// Parse resolves a command line player name: "human" or a strategy name.
func Parse(name string, depth int) (player.Player, error) {
	if name == "human" {
		return player.NewHuman("Human"), nil
	}
	return New(metrics.AgentConfig{Strategy: name, Depth: depth}, nil)
}

// Label is the display name of an agent.
func Label(config metrics.AgentConfig) string {
	switch config.Strategy {
	case Hope, AlphaBeta:
		depth := config.Depth
		if depth <= 0 {
			depth = meta.DEFAULT_DEPTH
			if config.Strategy == Hope {
				depth = meta.HOPE_DEPTH
			}
		}
		return fmt.Sprintf("%s(%d)", config.Strategy, depth)
	default:
		return config.Strategy
	}
}
