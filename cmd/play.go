package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"conquest/config"
	"conquest/engine"
	"conquest/game"
	"conquest/searcher"
	"conquest/searcher/agent"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game on the terminal",
	Long: `Play a game with the players listed in game.players. Human seats read
commands from standard input, AI seats search with minimax.

Examples:
  conquest play
  CONQUEST_GAME_PLAYERS=human,ai,ai conquest play
  CONQUEST_GAME_PLAYERS=ai,ai CONQUEST_AI_MIN_THINKING_TIME=0s conquest play`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	c := config.Get()
	setup, err := c.Setup()
	if err != nil {
		return err
	}
	state, err := game.NewGame(setup)
	if err != nil {
		return err
	}
	log.Info().
		Str("game_id", state.Session.ID.String()).
		Uint64("seed", state.Session.Seed).
		Msg("new game")

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, terminalHelp)
	choosers := newChoosers(state, c.AI, newTerminalInput(cmd.InOrStdin(), out))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	_, err = engine.NewLocalEngine(state, choosers, &terminalPresenter{out: out}).Run(ctx)
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		fmt.Fprintln(out, "game abandoned")
		return nil
	}
	return err
}

func newChoosers(state *game.GameState, ai config.AIConfig, input engine.Input) []engine.MoveChooser {
	choosers := make([]engine.MoveChooser, len(state.Session.Players))
	for i, p := range state.Session.Players {
		if p.IsAI() {
			choosers[i] = agent.NewAI(p, searcher.NewMinimax(
				searcher.WithMinThinkingTime(ai.MinThinkingTime),
				searcher.WithMaxThinkingTime(ai.MaxThinkingTime),
				searcher.WithBatchSize(ai.BatchSize),
			))
		} else {
			choosers[i] = engine.NewHuman(p, input)
		}
	}
	return choosers
}
