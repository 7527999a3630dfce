package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"conquest/game"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Game  GameConfig  `mapstructure:"game"`
	AI    AIConfig    `mapstructure:"ai"`
	Log   LogConfig   `mapstructure:"log"`
	Bench BenchConfig `mapstructure:"bench"`
}

// GameConfig holds the setup of a single game
type GameConfig struct {
	Players      []string `mapstructure:"players"` // human or ai, in seat order
	AILevel      string   `mapstructure:"ai_level"`
	TurnLimit    int      `mapstructure:"turn_limit"` // 0 means unlimited
	MovesPerTurn int      `mapstructure:"moves_per_turn"`
	Seed         uint64   `mapstructure:"seed"` // 0 picks a time-based seed
}

// AIConfig holds search pacing
type AIConfig struct {
	MinThinkingTime time.Duration `mapstructure:"min_thinking_time"`
	MaxThinkingTime time.Duration `mapstructure:"max_thinking_time"`
	BatchSize       int           `mapstructure:"batch_size"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// BenchConfig holds AI-only match settings
type BenchConfig struct {
	Games     int    `mapstructure:"games"`
	OutputDir string `mapstructure:"output_dir"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

func setViperDefaults(v *viper.Viper) {
	v.SetDefault("game.players", []string{"human", "ai"})
	v.SetDefault("game.ai_level", "nice")
	v.SetDefault("game.turn_limit", game.DefaultTurnLimit)
	v.SetDefault("game.moves_per_turn", game.MovesPerTurn)
	v.SetDefault("game.seed", 0)

	v.SetDefault("ai.min_thinking_time", time.Second)
	v.SetDefault("ai.max_thinking_time", 5*time.Second)
	v.SetDefault("ai.batch_size", 100)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("bench.games", 10)
	v.SetDefault("bench.output_dir", "experiments/results")
}

// Init loads the configuration from configPath, or from config.yaml in the
// usual places when configPath is empty. Environment variables prefixed with
// CONQUEST_ override file values.
func Init(configPath string) error {
	v = viper.New()
	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/conquest")
	}

	v.SetEnvPrefix("CONQUEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := Validate(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	cfg = c
	return nil
}

// Validate checks the configuration for values the game cannot run with
func Validate(c *Config) error {
	if len(c.Game.Players) < 2 || len(c.Game.Players) > game.MaxPlayers {
		return fmt.Errorf("game.players must list 2 to %d players, got %d", game.MaxPlayers, len(c.Game.Players))
	}
	for _, p := range c.Game.Players {
		if _, err := game.ParseController(p); err != nil {
			return fmt.Errorf("game.players: %w", err)
		}
	}
	if _, err := game.ParseLevel(c.Game.AILevel); err != nil {
		return fmt.Errorf("game.ai_level: %w", err)
	}
	if c.Game.TurnLimit < 0 {
		return fmt.Errorf("game.turn_limit must not be negative, got %d", c.Game.TurnLimit)
	}
	if c.Game.MovesPerTurn <= 0 {
		return fmt.Errorf("game.moves_per_turn must be positive, got %d", c.Game.MovesPerTurn)
	}
	if c.AI.MinThinkingTime < 0 {
		return fmt.Errorf("ai.min_thinking_time must not be negative, got %s", c.AI.MinThinkingTime)
	}
	if c.AI.MaxThinkingTime < c.AI.MinThinkingTime {
		return fmt.Errorf("ai.max_thinking_time %s is shorter than ai.min_thinking_time %s", c.AI.MaxThinkingTime, c.AI.MinThinkingTime)
	}
	if c.AI.BatchSize <= 0 {
		return fmt.Errorf("ai.batch_size must be positive, got %d", c.AI.BatchSize)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	if c.Bench.Games < 0 {
		return fmt.Errorf("bench.games must not be negative, got %d", c.Bench.Games)
	}
	return nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	if v == nil {
		return ""
	}
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of config file
func WatchConfig(onChange func(*Config)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		if e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
			return
		}
		next := &Config{}
		if err := v.Unmarshal(next); err != nil || Validate(next) != nil {
			return
		}
		cfg = next
		if onChange != nil {
			onChange(next)
		}
	})
	v.WatchConfig()
}

// Setup turns the game section into the read-only values a game starts from.
func (c *Config) Setup() (game.Setup, error) {
	controllers := make([]game.Controller, len(c.Game.Players))
	for i, p := range c.Game.Players {
		controller, err := game.ParseController(p)
		if err != nil {
			return game.Setup{}, err
		}
		controllers[i] = controller
	}
	level, err := game.ParseLevel(c.Game.AILevel)
	if err != nil {
		return game.Setup{}, err
	}

	turnLimit := c.Game.TurnLimit
	if turnLimit == 0 {
		turnLimit = game.UnlimitedTurns
	}
	return game.Setup{
		Map:         game.CreateMap(),
		Controllers: controllers,
		Rules: game.Rules{
			TurnLimit:    turnLimit,
			MovesPerTurn: c.Game.MovesPerTurn,
			Level:        level,
		},
		Seed: c.Game.Seed,
	}, nil
}
