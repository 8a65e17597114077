package main

import (
	"github.com/charmbracelet/log"

	"github.com/lox/drawpoker/internal/history"
	"github.com/lox/drawpoker/internal/session"
	"github.com/lox/drawpoker/internal/tui"
)

type PlayCmd struct {
	GameFlags

	History string `type:"path" help:"Write a TOML transcript of the last finished game to this file"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.load(c.GameFlags)
	if err != nil {
		return err
	}

	// The view owns the terminal, so logs always go to a file
	if g.LogFile == "" && cfg.Log.File == "" {
		cfg.Log.File = defaultTUILog
	}
	logger, closeLog, err := setupLogger(g, cfg, nil)
	if err != nil {
		return err
	}
	defer closeLog()

	logger.Info("Starting interactive game", "players", cfg.Game.Players, "seed", cfg.Game.Seed)

	m, err := tui.New(tui.Options{
		Players:  cfg.Game.Players,
		Seed:     cfg.Game.Seed,
		Policy:   cfg.Policy(),
		Logger:   logger,
		Plain:    g.NoColor,
		OnFinish: transcriptWriter(c.History, logger),
	})
	if err != nil {
		return err
	}
	return tui.Run(m)
}

// transcriptWriter returns an OnFinish hook that saves each finished game to
// path, or nil when no path is set
func transcriptWriter(path string, logger *log.Logger) func(*session.Session) {
	if path == "" {
		return nil
	}
	return func(s *session.Session) {
		t, err := history.Begin(s)
		if err == nil {
			err = t.Finish(s)
		}
		if err == nil {
			err = history.WriteFile(path, t)
		}
		if err != nil {
			logger.Error("Failed to write transcript", "file", path, "error", err)
			return
		}
		logger.Info("Wrote transcript", "file", path, "session_id", s.ID())
	}
}
