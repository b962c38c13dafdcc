package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/IlikeChooros/go-uttt/pkg/uttt"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Position  string `mapstructure:"position"`
	Bot       string `mapstructure:"bot"`
	Depth     int    `mapstructure:"depth"`
	Threads   int    `mapstructure:"threads"`
	Movetime  int    `mapstructure:"movetime"`
	NoPruning bool   `mapstructure:"no-pruning"`
	Seed      int64  `mapstructure:"seed"`
	Arena     bool   `mapstructure:"arena"`
	Opponent  string `mapstructure:"opponent"`
	Games     int    `mapstructure:"games"`
	Workers   int    `mapstructure:"workers"`
	Color     bool   `mapstructure:"color"`
	Debug     bool   `mapstructure:"debug"`
}

var _bots = []string{"minimax", "priority", "random"}

// Parse the command line, flags override the environment (UTTT_ prefix),
// which overrides the optional config file
func Setup(args []string) (*Config, error) {
	flags := pflag.NewFlagSet("uttt", pflag.ContinueOnError)
	flags.StringP("config", "c", "", "config file (json, yaml, toml)")
	flags.StringP("position", "p", uttt.StartingPosition, "position notation, or 'startpos'")
	flags.StringP("bot", "b", "minimax", "bot picking the move: "+strings.Join(_bots, ", "))
	flags.IntP("depth", "d", 3, "minimax search depth in plies")
	flags.IntP("threads", "t", 1, "goroutines searching the root moves")
	flags.Int("movetime", -1, "search time limit in milliseconds, -1 for none")
	flags.Bool("no-pruning", false, "disable alpha-beta cutoffs (plain minimax)")
	flags.Int64("seed", 0, "tie-break random seed, 0 picks one from the clock")
	flags.Bool("arena", false, "play games between --bot and --opponent instead")
	flags.String("opponent", "random", "arena opponent: "+strings.Join(_bots, ", "))
	flags.IntP("games", "n", 20, "number of arena games")
	flags.IntP("workers", "w", 2, "arena worker goroutines")
	flags.Bool("color", true, "colored board output")
	flags.Bool("debug", false, "development logging")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix("UTTT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}

	if path, _ := flags.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, cfg.validate()
}

func (cfg *Config) validate() error {
	if !isBot(cfg.Bot) {
		return fmt.Errorf("%w: unknown bot %q", ErrInvalidConfig, cfg.Bot)
	}
	if cfg.Arena && !isBot(cfg.Opponent) {
		return fmt.Errorf("%w: unknown opponent %q", ErrInvalidConfig, cfg.Opponent)
	}
	if cfg.Depth < 1 {
		return fmt.Errorf("%w: depth must be at least 1, got %d", ErrInvalidConfig, cfg.Depth)
	}
	if cfg.Arena && (cfg.Games < 1 || cfg.Workers < 1) {
		return fmt.Errorf("%w: arena needs at least one game and one worker", ErrInvalidConfig)
	}
	return nil
}

func isBot(name string) bool {
	for _, b := range _bots {
		if b == name {
			return true
		}
	}
	return false
}
