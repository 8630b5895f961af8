package experiments

import (
	"fmt"
	"patzer/agent"
	"patzer/engine"
	"patzer/experiments/metrics"
	"patzer/meta"

	"github.com/rs/zerolog/log"
)

const NumGames = 10 // Per match up and color

// Baseline entrants: every strategy, with the searches at their default depth
// and one ply shallower.
var Baseline = []metrics.AgentConfig{
	{ID: 1, Strategy: agent.FirstLegal},
	{ID: 2, Strategy: agent.Random},
	{ID: 3, Strategy: agent.Hope, Depth: meta.HOPE_DEPTH},
	{ID: 4, Strategy: agent.AlphaBeta, Depth: meta.DEFAULT_DEPTH - 1},
	{ID: 5, Strategy: agent.AlphaBeta, Depth: meta.DEFAULT_DEPTH},
}

// RunTournament plays every pair of configs against each other with both
// colors and writes the results under root. It returns the directory written.
func RunTournament(root, name string, configs []metrics.AgentConfig, games int) (string, error) {
	matchUps := [][]metrics.AgentConfig{}
	for i, white := range configs {
		for j, black := range configs {
			if i != j {
				matchUps = append(matchUps, []metrics.AgentConfig{white, black})
			}
		}
	}

	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchUp := range matchUps {
		white, black := matchUp[0], matchUp[1]
		log.Info().Msgf("starting matchup %d of %d between white=%+v and black=%+v...", mi+1, len(matchUps), white, black)

		for i := 0; i < games; i++ {
			gameMetric, moveMetrics, err := runGame(white, black)
			if err != nil {
				return "", err
			}
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				White:      white.ID,
				Black:      black.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d: %s", mi+1, len(matchUps), i+1, gameMetric.Result)
		}
	}

	log.Info().Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored results in %s", writer.Dir())
	return writer.Dir(), nil
}

// runGame plays a single headless game between two agents.
func runGame(white, black metrics.AgentConfig) (metrics.GameMetric, []metrics.MoveMetric, error) {
	last := &metrics.Last{}
	whitePlayer, err := agent.New(white, last.Report)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}
	blackPlayer, err := agent.New(black, last.Report)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}

	e := engine.NewLocal(whitePlayer, blackPlayer, engine.WithSearchMetrics(last))
	_, gameMetric, moveMetrics := e.Run()
	return gameMetric, moveMetrics, nil
}
