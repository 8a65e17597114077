package main

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/lox/drawpoker/internal/config"
)

// version is set by ldflags during build
var version = "dev"

// Globals are the flags shared by every command
type Globals struct {
	Config  string `short:"c" default:"drawpoker.hcl" type:"path" help:"HCL configuration file (missing file uses defaults)"`
	Debug   bool   `help:"Enable debug logging"`
	LogFile string `type:"path" help:"Write logs to this file"`
	NoColor bool   `help:"Disable colour output"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Deal     DealCmd          `cmd:"" help:"Deal one game and print the hands"`
	Play     PlayCmd          `cmd:"" help:"Play interactively in the terminal"`
	Simulate SimulateCmd      `cmd:"" help:"Simulate many games and report draw statistics"`
	Info     VersionCmd       `cmd:"version" help:"Print the version"`
}

// VersionCmd prints the build version
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println("drawpoker", version)
	return nil
}

// GameFlags override the game block of the configuration file
type GameFlags struct {
	Players int   `short:"p" help:"Number of players (0 uses the config file)"`
	Seed    int64 `help:"RNG seed (0 uses the config file, then random)"`
	Keep    int   `help:"Cards a High Card hand keeps (0 uses the config file)"`
}

// load reads the configuration file and applies the flag overrides
func (g *Globals) load(flags GameFlags) (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if flags.Players != 0 {
		cfg.Game.Players = flags.Players
	}
	if flags.Seed != 0 {
		cfg.Game.Seed = flags.Seed
	}
	if flags.Keep != 0 {
		cfg.Game.HighCardKeep = flags.Keep
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", g.Config, err)
	}
	return cfg, nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("drawpoker"),
		kong.Description("Five-card draw poker engine"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
		kong.Bind(&cli.Globals),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
