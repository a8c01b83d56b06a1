// Package config loads engine settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"chessai/bots"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Bot          string          `yaml:"bot"`
	Difficulty   bots.Difficulty `yaml:"difficulty"`
	BaseDepth    int             `yaml:"base_depth"`
	TimeBudgetMs int             `yaml:"time_budget_ms"`

	Quiescence         bool    `yaml:"quiescence"`
	Extensions         bool    `yaml:"extensions"`
	MaxExtensions      int     `yaml:"max_extensions"`
	RandomMoveChance   float64 `yaml:"random_move_chance"`
	EasyDepth          int     `yaml:"easy_depth"`
	HardDepthBonus     int     `yaml:"hard_depth_bonus"`
	DecisiveMaterial   int     `yaml:"decisive_material"`
	DecisiveDepthBonus int     `yaml:"decisive_depth_bonus"`

	LogLevel string       `yaml:"log_level"`
	Eval     bots.Weights `yaml:"eval"`
}

// Default mirrors bots.DefaultSettings.
func Default() Config {
	s := bots.DefaultSettings()
	return Config{
		Bot:                "minimax",
		Difficulty:         s.Difficulty,
		BaseDepth:          s.BaseDepth,
		TimeBudgetMs:       int(s.TimeBudget / time.Millisecond),
		Quiescence:         s.Quiescence,
		Extensions:         s.Extensions,
		MaxExtensions:      s.MaxExtensions,
		RandomMoveChance:   s.RandomMoveChance,
		EasyDepth:          s.EasyDepth,
		HardDepthBonus:     s.HardDepthBonus,
		DecisiveMaterial:   s.DecisiveMaterial,
		DecisiveDepthBonus: s.DecisiveDepthBonus,
		LogLevel:           "info",
		Eval:               s.Weights,
	}
}

// Load reads a YAML file. Keys missing from the file keep their defaults.
func Load(filename string) (Config, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("'%s': %w", filename, err)
	}
	cfg, err := Parse(b)
	if err != nil {
		return Config{}, fmt.Errorf("'%s': %w", filename, err)
	}
	return cfg, nil
}

func Parse(b []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Difficulty < bots.Easy || c.Difficulty > bots.Hard:
		return fmt.Errorf("difficulty %d: %w", int(c.Difficulty), ErrInvalid)
	case c.BaseDepth < 1:
		return fmt.Errorf("base_depth %d must be at least 1: %w", c.BaseDepth, ErrInvalid)
	case c.TimeBudgetMs < 0:
		return fmt.Errorf("time_budget_ms %d is negative: %w", c.TimeBudgetMs, ErrInvalid)
	case c.MaxExtensions < 0:
		return fmt.Errorf("max_extensions %d is negative: %w", c.MaxExtensions, ErrInvalid)
	case c.RandomMoveChance < 0 || c.RandomMoveChance > 1:
		return fmt.Errorf("random_move_chance %v outside [0,1]: %w", c.RandomMoveChance, ErrInvalid)
	case c.EasyDepth < 1:
		return fmt.Errorf("easy_depth %d must be at least 1: %w", c.EasyDepth, ErrInvalid)
	case c.HardDepthBonus < 0 || c.DecisiveDepthBonus < 0:
		return fmt.Errorf("depth bonuses must not be negative: %w", ErrInvalid)
	}
	if _, err := bots.New(c.Bot, c.Settings()); err != nil {
		return fmt.Errorf("bot: %v: %w", err, ErrInvalid)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level %q: %w", c.LogLevel, ErrInvalid)
	}
	return nil
}

// Settings converts the config into bot settings.
func (c Config) Settings() bots.Settings {
	return bots.Settings{
		Difficulty:         c.Difficulty,
		BaseDepth:          c.BaseDepth,
		TimeBudget:         time.Duration(c.TimeBudgetMs) * time.Millisecond,
		Quiescence:         c.Quiescence,
		Extensions:         c.Extensions,
		MaxExtensions:      c.MaxExtensions,
		RandomMoveChance:   c.RandomMoveChance,
		EasyDepth:          c.EasyDepth,
		HardDepthBonus:     c.HardDepthBonus,
		DecisiveMaterial:   c.DecisiveMaterial,
		DecisiveDepthBonus: c.DecisiveDepthBonus,
		Weights:            c.Eval,
	}
}

// Level is the parsed log level. Validate has already checked it.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// Save writes the config as YAML.
func (c Config) Save(filename string) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0o644)
}
