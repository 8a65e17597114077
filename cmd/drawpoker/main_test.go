package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/drawpoker/internal/config"
	"github.com/lox/drawpoker/internal/history"
	"github.com/lox/drawpoker/internal/session"
	"github.com/lox/drawpoker/internal/simulator"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func writeConfig(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "drawpoker.hcl")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func TestParseCommands(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, kong.Vars{"version": "test"})
	require.NoError(t, err)

	kctx, err := parser.Parse([]string{"--no-color", "deal", "-p", "3", "--seed", "5", "--draw"})
	require.NoError(t, err)
	assert.Equal(t, "deal", kctx.Command())
	assert.True(t, cli.NoColor)
	assert.Equal(t, 3, cli.Deal.Players)
	assert.Equal(t, int64(5), cli.Deal.Seed)
	assert.True(t, cli.Deal.Draw)

	kctx, err = parser.Parse([]string{"simulate", "-n", "100", "-w", "2"})
	require.NoError(t, err)
	assert.Equal(t, "simulate", kctx.Command())
	assert.Equal(t, 100, cli.Simulate.Sessions)
	assert.Equal(t, 2, cli.Simulate.Workers)
}

func TestGlobalsLoad(t *testing.T) {
	path := writeConfig(t, `
game {
  players        = 4
  seed           = 99
  high_card_keep = 2
}
`)

	g := &Globals{Config: path}
	cfg, err := g.load(GameFlags{})
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Game.Players)
	assert.Equal(t, int64(99), cfg.Game.Seed)
	assert.Equal(t, 2, cfg.Game.HighCardKeep)

	cfg, err = g.load(GameFlags{Players: 6, Seed: 7, Keep: 3})
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Game.Players, "flags override the file")
	assert.Equal(t, int64(7), cfg.Game.Seed)
	assert.Equal(t, 3, cfg.Game.HighCardKeep)
}

func TestGlobalsLoadMissingFile(t *testing.T) {
	g := &Globals{Config: filepath.Join(t.TempDir(), "missing.hcl")}
	cfg, err := g.load(GameFlags{})
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestGlobalsLoadRejectsInvalid(t *testing.T) {
	g := &Globals{Config: filepath.Join(t.TempDir(), "missing.hcl")}
	_, err := g.load(GameFlags{Players: 11})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "players x")

	_, err = g.load(GameFlags{Keep: 6})
	assert.Error(t, err)
}

func TestSetupLogger(t *testing.T) {
	cfg := config.Default()

	var buf bytes.Buffer
	logger, closeLog, err := setupLogger(&Globals{}, cfg, &buf)
	require.NoError(t, err)
	defer closeLog()
	assert.Equal(t, log.InfoLevel, logger.GetLevel())
	logger.Debug("hidden")
	logger.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	debug, closeDebug, err := setupLogger(&Globals{Debug: true}, cfg, io.Discard)
	require.NoError(t, err)
	defer closeDebug()
	assert.Equal(t, log.DebugLevel, debug.GetLevel())
}

func TestSetupLoggerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drawpoker.log")
	cfg := config.Default()
	cfg.Log.File = path

	var buf bytes.Buffer
	logger, closeLog, err := setupLogger(&Globals{}, cfg, &buf)
	require.NoError(t, err)
	logger.Info("to the file")
	closeLog()

	assert.Empty(t, buf.String())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to the file")
}

func TestDeal(t *testing.T) {
	cfg := config.Default()
	cfg.Game.Players = 3
	cfg.Game.Seed = 42

	var out bytes.Buffer
	err := deal(&out, dealOptions{Config: cfg, Plain: true, Logger: quietLogger()})
	require.NoError(t, err)

	s := out.String()
	assert.Contains(t, s, "seed 42")
	assert.Contains(t, s, "Player 1:")
	assert.Contains(t, s, "Player 3:")
	assert.Contains(t, s, "keep", "hands are ranked before printing")
	assert.Contains(t, s, "Remaining cards (37):")
	assert.NotContains(t, s, "After the draw")
	assert.True(t, strings.Contains(s, "Winner:") || strings.Contains(s, "Split:"))
}

func TestDealWithDrawAndHistory(t *testing.T) {
	cfg := config.Default()
	cfg.Game.Players = 4
	cfg.Game.Seed = 1234
	path := filepath.Join(t.TempDir(), "game.toml")

	var out bytes.Buffer
	err := deal(&out, dealOptions{
		Config:  cfg,
		Draw:    true,
		History: path,
		Plain:   true,
		Logger:  quietLogger(),
	})
	require.NoError(t, err)

	s := out.String()
	assert.Contains(t, s, "Draw")
	assert.Contains(t, s, "After the draw")
	assert.Contains(t, s, "Player 4")

	tr, err := history.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, int64(1234), tr.Seed)
	assert.Equal(t, 4, tr.Players)
	require.Len(t, tr.Seats, 4)
	assert.NotEmpty(t, tr.Winners)
}

func TestDealSameSeedSameOutput(t *testing.T) {
	cfg := config.Default()
	cfg.Game.Seed = 77

	var a, b bytes.Buffer
	require.NoError(t, deal(&a, dealOptions{Config: cfg, Draw: true, Plain: true, Logger: quietLogger()}))
	require.NoError(t, deal(&b, dealOptions{Config: cfg, Draw: true, Plain: true, Logger: quietLogger()}))

	// The header carries the random session ID; everything after it matches
	_, restA, _ := strings.Cut(a.String(), "\n")
	_, restB, _ := strings.Cut(b.String(), "\n")
	assert.Equal(t, restA, restB)
}

func TestTranscriptWriter(t *testing.T) {
	assert.Nil(t, transcriptWriter("", quietLogger()))

	path := filepath.Join(t.TempDir(), "last.toml")
	hook := transcriptWriter(path, quietLogger())
	require.NotNil(t, hook)

	s, err := session.New(session.Config{Players: 2, HandSize: 5, Seed: 3, Logger: quietLogger()})
	require.NoError(t, err)
	require.NoError(t, s.StartPlay())
	_, err = s.Draw(0)
	require.NoError(t, err)

	hook(s)

	tr, err := history.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, s.ID(), tr.SessionID)
	assert.Len(t, tr.Seats, 2)
}

func TestPrintSummary(t *testing.T) {
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	result, err := simulator.RunSimulation(context.Background(), 50, 8, 5, quietLogger())
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, printSummary(&out, result))

	s := out.String()
	assert.Contains(t, s, "Five Card Draw Simulation")
	assert.Contains(t, s, "Games:        50 (400 hands, seed 5)")
	assert.Contains(t, s, "Straight Flush")
	assert.Contains(t, s, "High Card")
	assert.Contains(t, s, "After draw")
	assert.Contains(t, s, "Improved:")
}
