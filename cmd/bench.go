package cmd

import (
	"fmt"
	"sort"

	"conquest/config"
	"conquest/experiments"
	"conquest/experiments/metrics"

	"github.com/spf13/cobra"
)

var (
	benchGames      int
	benchExperiment string
	benchBatchSizes []int
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run AI-only matches and export CSV records",
	Long: `Run AI-only games and write agent configs, game records and move records as
CSV files under bench.output_dir.

Experiments:
  bench       every seat uses the ai.* settings (default)
  batch_size  the ai.* settings against agents with other batch sizes

Examples:
  conquest bench --games 20
  conquest bench --experiment batch_size --batch-sizes 10,1000`,
	RunE: runBench,
}

func init() {
	benchCmd.Flags().IntVar(&benchGames, "games", 0, "games per matchup (default bench.games)")
	benchCmd.Flags().StringVar(&benchExperiment, "experiment", "bench", "bench or batch_size")
	benchCmd.Flags().IntSliceVar(&benchBatchSizes, "batch-sizes", []int{10, 1000}, "batch sizes for the batch_size experiment")
	rootCmd.AddCommand(benchCmd)
}

func runBench(cmd *cobra.Command, args []string) error {
	c := config.Get()
	setup, err := c.Setup()
	if err != nil {
		return err
	}
	games := c.Bench.Games
	if benchGames > 0 {
		games = benchGames
	}
	b := experiments.Bench{
		Games:     games,
		Players:   len(setup.Controllers),
		Rules:     setup.Rules,
		Seed:      setup.Seed,
		OutputDir: c.Bench.OutputDir,
	}
	// benches skip the pacing delay
	baseline := metrics.AgentConfig{
		ID:          1,
		MaxThinking: c.AI.MaxThinkingTime,
		BatchSize:   c.AI.BatchSize,
	}

	var summary experiments.Summary
	switch benchExperiment {
	case "bench":
		summary, err = experiments.RunBench(cmd.Context(), b, baseline)
	case "batch_size":
		summary, err = experiments.RunBatchSizeExperiment(cmd.Context(), b, baseline, benchBatchSizes)
	default:
		return fmt.Errorf("unknown experiment %q", benchExperiment)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d games, %d draws, %d failed\n", summary.Games, summary.Draws, summary.Errors)
	ids := make([]int, 0, len(summary.Wins))
	for id := range summary.Wins {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		fmt.Fprintf(out, "  agent %d: %d wins\n", id, summary.Wins[id])
	}
	fmt.Fprintf(out, "records in %s\n", summary.Dir)
	return nil
}
