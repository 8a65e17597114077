package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/lox/drawpoker/internal/config"
)

// defaultTUILog receives logs while the interactive view owns the terminal
const defaultTUILog = "drawpoker.log"

// setupLogger creates the process logger. Logs go to the --log-file flag,
// then the config file's log.file, then w. The returned func closes any
// opened file.
func setupLogger(g *Globals, cfg *config.Config, w io.Writer) (*log.Logger, func(), error) {
	level := cfg.LogLevel()
	if g.Debug {
		level = log.DebugLevel
	}

	path := g.LogFile
	if path == "" {
		path = cfg.Log.File
	}

	closer := func() {}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		closer = func() {
			if err := f.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
			}
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: path != "",
		TimeFormat:      "15:04:05",
	})
	return logger, closer, nil
}

// signalContext returns a context that is cancelled on SIGINT or SIGTERM
func signalContext(logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("Received signal, shutting down", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}
