package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lox/drawpoker/internal/config"
	"github.com/lox/drawpoker/internal/display"
	"github.com/lox/drawpoker/internal/history"
	"github.com/lox/drawpoker/internal/session"
)

type DealCmd struct {
	GameFlags

	Draw    bool   `short:"d" help:"Draw for every player after the deal"`
	History string `type:"path" help:"Write a TOML transcript of the game to this file"`
}

func (c *DealCmd) Run(g *Globals) error {
	cfg, err := g.load(c.GameFlags)
	if err != nil {
		return err
	}
	logger, closeLog, err := setupLogger(g, cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	return deal(os.Stdout, dealOptions{
		Config:  cfg,
		Draw:    c.Draw,
		History: c.History,
		Plain:   g.NoColor,
		Logger:  logger,
	})
}

type dealOptions struct {
	Config  *config.Config
	Draw    bool
	History string
	Plain   bool
	Logger  *log.Logger
}

// deal plays one session and prints it to w
func deal(w io.Writer, opts dealOptions) error {
	s, err := session.New(session.Config{
		Players:  opts.Config.Game.Players,
		HandSize: opts.Config.Game.HandSize,
		Seed:     opts.Config.Game.Seed,
		Policy:   opts.Config.Policy(),
		Logger:   opts.Logger,
	})
	if err != nil {
		return err
	}
	if err := s.StartPlay(); err != nil {
		return err
	}

	var transcript *history.Transcript
	if opts.History != "" {
		if transcript, err = history.Begin(s); err != nil {
			return err
		}
	}

	for seat := 0; seat < s.Players(); seat++ {
		if _, err := s.Evaluate(seat); err != nil {
			return err
		}
	}

	r := display.New(w, opts.Plain)
	fmt.Fprintln(w, r.Session(s))

	if opts.Draw {
		reports, err := s.DrawAll()
		if err != nil {
			return err
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, r.Header("Draw"))
		for _, rep := range reports {
			fmt.Fprintln(w, r.Draw(rep))
		}

		fmt.Fprintln(w)
		fmt.Fprintln(w, r.Header("After the draw"))
		fmt.Fprintln(w, r.Hands(s.Hands()))
		fmt.Fprintf(w, "%d cards remaining\n", len(s.RemainingCards()))
	}

	winners, err := s.Winners()
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, r.Winners(winners, s.Hands()))

	if err := s.CheckInvariant(); err != nil {
		return err
	}

	if transcript != nil {
		if err := transcript.Finish(s); err != nil {
			return err
		}
		if err := history.WriteFile(opts.History, transcript); err != nil {
			return err
		}
		opts.Logger.Info("Wrote transcript", "file", opts.History)
	}
	return nil
}
