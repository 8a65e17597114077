package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pterm/pterm"

	"github.com/lox/drawpoker/internal/evaluator"
	"github.com/lox/drawpoker/internal/simulator"
)

type SimulateCmd struct {
	GameFlags

	Sessions int           `short:"n" help:"Number of games to simulate (0 uses the config file)"`
	Workers  int           `short:"w" help:"Parallel workers (0 uses the config file)"`
	Timeout  time.Duration `help:"Stop after this long (0 for no limit)"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.load(c.GameFlags)
	if err != nil {
		return err
	}
	if c.Sessions != 0 {
		cfg.Simulate.Sessions = c.Sessions
	}
	if c.Workers != 0 {
		cfg.Simulate.Workers = c.Workers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closeLog, err := setupLogger(g, cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	if g.NoColor {
		pterm.DisableStyling()
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	sim := simulator.New(simulator.Config{
		Sessions: cfg.Simulate.Sessions,
		Players:  cfg.Game.Players,
		Seed:     cfg.Game.Seed,
		Workers:  cfg.Simulate.Workers,
		Policy:   cfg.Policy(),
		Timeout:  c.Timeout,
		Logger:   logger,
	})
	result, err := sim.Run(ctx)
	if err != nil {
		return err
	}
	return printSummary(os.Stdout, result)
}

// printSummary writes the category table and draw summary for a run
func printSummary(w io.Writer, result *simulator.Result) error {
	stats := result.Stats

	data := pterm.TableData{{"Category", "Dealt", "After draw", "Wins"}}
	for _, c := range evaluator.Categories {
		data = append(data, []string{
			c.String(),
			percent(stats.Frequency(c, false)),
			percent(stats.Frequency(c, true)),
			percent(stats.WinShare(c)),
		})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	lo, hi := stats.ImprovementCI95()
	summary := pterm.Sprintfln("Games:        %d (%d hands, seed %d)", result.Sessions, stats.Hands, result.Seed) +
		pterm.Sprintfln("Improved:     %s  (95%% CI %s to %s)", percent(stats.ImprovementRate()), percent(lo), percent(hi)) +
		pterm.Sprintfln("Discards:     %.2f per hand (sd %.2f)", stats.MeanDiscards(), stats.StdDev()) +
		pterm.Sprintfln("Shortfalls:   %d hands, %d cards", stats.Shortfalls, stats.ShortCards) +
		pterm.Sprintfln("Split pots:   %d", stats.SplitPots) +
		pterm.Sprintf("Elapsed:      %s", result.Elapsed.Round(time.Millisecond))
	box := pterm.DefaultBox.WithTitle("Five Card Draw Simulation").WithHorizontalPadding(2).Sprint(summary)

	_, err = fmt.Fprintf(w, "%s\n%s\n", box, table)
	return err
}

func percent(f float64) string {
	return fmt.Sprintf("%6.2f%%", f*100)
}
