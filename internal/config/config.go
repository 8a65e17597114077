// Package config loads drawpoker settings from an HCL file.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/drawpoker/internal/deck"
	"github.com/lox/drawpoker/internal/evaluator"
	"github.com/lox/drawpoker/internal/hand"
)

const (
	DefaultPlayers      = 8
	DefaultHighCardKeep = 1
	DefaultLogLevel     = "info"
	DefaultSessions     = 10000
)

// Config is the complete drawpoker configuration
type Config struct {
	Game     GameSettings
	Log      LogSettings
	Simulate SimulateSettings
}

// GameSettings configures each session
type GameSettings struct {
	Players      int   `hcl:"players,optional"`
	HandSize     int   `hcl:"hand_size,optional"`
	Seed         int64 `hcl:"seed,optional"`
	HighCardKeep int   `hcl:"high_card_keep,optional"`
}

// LogSettings configures logging
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// SimulateSettings configures the simulate command
type SimulateSettings struct {
	Sessions int `hcl:"sessions,optional"`
	Workers  int `hcl:"workers,optional"`
}

// file mirrors the HCL layout, every block optional
type file struct {
	Game     *GameSettings     `hcl:"game,block"`
	Log      *LogSettings      `hcl:"log,block"`
	Simulate *SimulateSettings `hcl:"simulate,block"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Game: GameSettings{
			Players:      DefaultPlayers,
			HandSize:     hand.Size,
			HighCardKeep: DefaultHighCardKeep,
		},
		Log: LogSettings{
			Level: DefaultLogLevel,
		},
		Simulate: SimulateSettings{
			Sessions: DefaultSessions,
			Workers:  runtime.GOMAXPROCS(0),
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source. Settings missing from src keep their defaults.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw file
	diags = gohcl.DecodeBody(f.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config := Default()
	if g := raw.Game; g != nil {
		if g.Players != 0 {
			config.Game.Players = g.Players
		}
		if g.HandSize != 0 {
			config.Game.HandSize = g.HandSize
		}
		if g.HighCardKeep != 0 {
			config.Game.HighCardKeep = g.HighCardKeep
		}
		config.Game.Seed = g.Seed
	}
	if l := raw.Log; l != nil {
		if l.Level != "" {
			config.Log.Level = l.Level
		}
		config.Log.File = l.File
	}
	if s := raw.Simulate; s != nil {
		if s.Sessions != 0 {
			config.Simulate.Sessions = s.Sessions
		}
		if s.Workers != 0 {
			config.Simulate.Workers = s.Workers
		}
	}

	return config, nil
}

// Validate checks that every setting is in range
func (c *Config) Validate() error {
	g := c.Game
	if g.Players < 1 {
		return fmt.Errorf("game: players must be at least 1, got %d", g.Players)
	}
	if g.HandSize != hand.Size {
		return fmt.Errorf("game: hand_size must be %d, got %d", hand.Size, g.HandSize)
	}
	if g.Players*g.HandSize > deck.Size {
		return fmt.Errorf("game: %d players x %d cards needs more than %d cards", g.Players, g.HandSize, deck.Size)
	}
	if g.HighCardKeep < 1 || g.HighCardKeep > hand.Size {
		return fmt.Errorf("game: high_card_keep must be between 1 and %d, got %d", hand.Size, g.HighCardKeep)
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log: invalid level %q", c.Log.Level)
	}

	if c.Simulate.Sessions < 1 {
		return fmt.Errorf("simulate: sessions must be positive, got %d", c.Simulate.Sessions)
	}
	if c.Simulate.Workers < 1 {
		return fmt.Errorf("simulate: workers must be positive, got %d", c.Simulate.Workers)
	}
	return nil
}

// Policy returns the draw policy for High Card hands
func (c *Config) Policy() evaluator.DrawPolicy {
	return evaluator.KeepHighest(c.Game.HighCardKeep)
}

// LogLevel returns the parsed log level, falling back to info
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
