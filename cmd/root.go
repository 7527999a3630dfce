package cmd

import (
	"fmt"
	"os"
	"strings"

	"conquest/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "conquest",
	Short: "Turn-based territorial conquest against minimax AI opponents",
	Long: `Conquest is a turn-based game of conquering regions, collecting faith at
temples and spending it on soldiers and elemental upgrades.

Available commands:
  play     Play a game on the terminal
  bench    Run AI-only matches and export CSV records
  version  Print the version

Configuration is read from config.yaml (or --config) and CONQUEST_* environment
variables, e.g. CONQUEST_GAME_AI_LEVEL=evil.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(configPath); err != nil {
			return err
		}
		if err := setupLogging(config.Get().Log); err != nil {
			return err
		}
		if config.ConfigFilePath() != "" {
			config.WatchConfig(func(c *config.Config) {
				if err := setupLogging(c.Log); err != nil {
					log.Warn().Err(err).Msg("ignoring reloaded log settings")
					return
				}
				log.Info().Str("level", c.Log.Level).Msg("configuration reloaded")
			})
		}
		return nil
	},
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a config file (default ./config.yaml)")
}

func setupLogging(c config.LogConfig) error {
	level, err := zerolog.ParseLevel(strings.ToLower(c.Level))
	if err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	zerolog.SetGlobalLevel(level)
	if c.Format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	}
	return nil
}
