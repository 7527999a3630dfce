package experiments

import (
	"conquest/engine"
	"conquest/experiments/metrics"
	"conquest/game"
	"conquest/searcher"
	"conquest/searcher/agent"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Bench describes a set of AI-only games.
type Bench struct {
	Games     int // per match up
	Players   int
	Rules     game.Rules
	Seed      uint64 // first game's seed, 0 for time-based seeds
	OutputDir string
}

// Summary tallies the outcome of an experiment.
type Summary struct {
	Dir    string
	Games  int
	Wins   map[int]int // by agent config id
	Draws  int
	Errors int
}

// RunBench plays games where every seat uses the same search settings.
func RunBench(ctx context.Context, b Bench, config metrics.AgentConfig) (Summary, error) {
	seats := make([]metrics.AgentConfig, b.Players)
	for i := range seats {
		seats[i] = config
	}
	return runExperiment(ctx, "bench", b, []metrics.AgentConfig{config}, [][]metrics.AgentConfig{seats})
}

// RunBatchSizeExperiment pairs a baseline agent against agents that check the
// clock more or less often.
func RunBatchSizeExperiment(ctx context.Context, b Bench, baseline metrics.AgentConfig, batchSizes []int) (Summary, error) {
	configs := []metrics.AgentConfig{baseline}
	matchUps := [][]metrics.AgentConfig{}
	for i, size := range batchSizes {
		config := baseline
		config.ID = baseline.ID + i + 1
		config.BatchSize = size
		configs = append(configs, config)
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}
	b.Players = 2
	return runExperiment(ctx, "batch_size", b, configs, matchUps)
}

func runExperiment(ctx context.Context, name string, b Bench, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig) (Summary, error) {
	count := 0
	summary := Summary{Wins: map[int]int{}}
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchUp := range matchUps {
		log.Info().Msgf("starting matchup %d of %d with %d seats...", mi+1, len(matchUps), len(matchUp))

		for i := 0; i < b.Games; i++ {
			if err := ctx.Err(); err != nil {
				return summary, err
			}
			seed := uint64(0)
			if b.Seed != 0 {
				seed = b.Seed + uint64(count)
			}

			result, gameID, err := runGame(ctx, matchUp, b.Rules, seed)
			count++
			if err != nil {
				summary.Errors++
				log.Error().Err(err).Msgf("matchup %d of %d game %d failed", mi+1, len(matchUps), i+1)
				continue
			}

			agents := make([]int, len(matchUp))
			for s, config := range matchUp {
				agents[s] = config.ID
			}
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				GameID:     gameID,
				Seed:       result.Final.Session.Seed,
				Agents:     agents,
				GameMetric: result.GameMetric,
			})
			for _, mm := range result.MoveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{Game: count, MoveMetric: mm})
			}

			summary.Games++
			if result.Winner == game.Draw {
				summary.Draws++
			} else if result.Winner >= 0 {
				summary.Wins[matchUp[result.Winner].ID]++
			}
			log.Info().Msgf("completed matchup %d of %d game %d with winner: %d", mi+1, len(matchUps), i+1, result.Winner)
		}
	}

	log.Info().Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(b.OutputDir, name)
	if err != nil {
		return summary, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	summary.Dir = writer.Dir()
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return summary, fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return summary, fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return summary, fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Str("dir", summary.Dir).Msg("stored experiment records")
	return summary, nil
}

// runGame plays one AI-only game with one agent config per seat.
func runGame(ctx context.Context, seats []metrics.AgentConfig, rules game.Rules, seed uint64) (engine.Result, string, error) {
	controllers := make([]game.Controller, len(seats))
	for i := range controllers {
		controllers[i] = game.AIController
	}
	state, err := game.NewGame(game.Setup{Controllers: controllers, Rules: rules, Seed: seed})
	if err != nil {
		return engine.Result{}, "", err
	}

	choosers := make([]engine.MoveChooser, len(seats))
	for i, p := range state.Session.Players {
		choosers[i] = agent.NewAI(p, NewMinimax(seats[i]))
	}
	result, err := engine.NewLocalEngine(state, choosers, nil).Run(ctx)
	return result, state.Session.ID.String(), err
}

// NewMinimax builds a measuring searcher from config.
func NewMinimax(config metrics.AgentConfig) *searcher.Minimax {
	return searcher.NewMinimax(
		searcher.WithMinThinkingTime(config.MinThinking),
		searcher.WithMaxThinkingTime(config.MaxThinking),
		searcher.WithBatchSize(config.BatchSize),
		searcher.WithMetrics(),
	)
}
