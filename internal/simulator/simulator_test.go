package simulator

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/drawpoker/internal/evaluator"
	"github.com/lox/drawpoker/internal/session"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel})
}

func TestNewAppliesDefaults(t *testing.T) {
	sim := New(Config{Sessions: 10})
	assert.Equal(t, 8, sim.config.Players)
	assert.Positive(t, sim.config.Workers)
	assert.Equal(t, evaluator.DefaultDrawPolicy, sim.config.Policy)
	assert.NotNil(t, sim.config.Logger)
	assert.NotNil(t, sim.config.Clock)
}

func TestRun(t *testing.T) {
	sim := New(Config{
		Sessions: 200,
		Players:  8,
		Seed:     12345,
		Workers:  4,
		Logger:   quietLogger(),
	})

	result, err := sim.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, result)

	stats := result.Stats
	assert.Equal(t, int64(12345), result.Seed)
	assert.Equal(t, 200, result.Sessions)
	assert.Equal(t, 200, stats.Sessions)
	assert.Equal(t, 1600, stats.Hands)
	require.NoError(t, stats.Validate())

	// With 12 cards left for 8 players the late seats always run short
	assert.Positive(t, stats.Shortfalls)
	assert.Positive(t, stats.Improved)

	// Pairs and no-pair hands dominate any deal
	assert.Greater(t, stats.Frequency(evaluator.HighCard, false), 0.3)
	assert.Greater(t, stats.Frequency(evaluator.OnePair, false), 0.3)
}

func TestRunIsDeterministicAcrossWorkerCounts(t *testing.T) {
	run := func(workers int) *Result {
		result, err := New(Config{
			Sessions: 50,
			Players:  4,
			Seed:     99,
			Workers:  workers,
			Logger:   quietLogger(),
		}).Run(context.Background())
		require.NoError(t, err)
		return result
	}

	one := run(1)
	many := run(7)
	assert.Equal(t, one.Stats, many.Stats)
}

func TestRunUsesClock(t *testing.T) {
	mClock := quartz.NewMock(t)
	result, err := New(Config{
		Sessions: 5,
		Players:  2,
		Seed:     1,
		Workers:  2,
		Logger:   quietLogger(),
		Clock:    mClock,
	}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), result.Elapsed, "mock clock does not advance on its own")
}

func TestRunRejectsBadConfig(t *testing.T) {
	_, err := New(Config{Sessions: 0, Logger: quietLogger()}).Run(context.Background())
	assert.Error(t, err)

	_, err = New(Config{Sessions: 5, Players: 11, Logger: quietLogger()}).Run(context.Background())
	assert.ErrorIs(t, err, session.ErrConfiguration)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Config{Sessions: 100, Players: 8, Seed: 1, Logger: quietLogger()}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPlaySession(t *testing.T) {
	sim := New(Config{Players: 6, Logger: quietLogger()})
	results, err := sim.PlaySession(2024)
	require.NoError(t, err)
	require.Len(t, results, 6)

	winners := 0
	for seat, r := range results {
		assert.Equal(t, seat, r.Seat)
		assert.Equal(t, int64(2024), r.Seed)
		assert.NotZero(t, r.Before)
		assert.NotZero(t, r.After)
		assert.LessOrEqual(t, r.Discarded, 5)
		if r.Won {
			winners++
		}
	}
	assert.Positive(t, winners)

	again, err := sim.PlaySession(2024)
	require.NoError(t, err)
	assert.Equal(t, results, again, "same seed, same session")
}

func TestRunSimulation(t *testing.T) {
	result, err := RunSimulation(context.Background(), 10, 3, 7, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, 30, result.Stats.Hands)
}
