package simulator

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/drawpoker/internal/evaluator"
	"github.com/lox/drawpoker/internal/randutil"
	"github.com/lox/drawpoker/internal/session"
	"github.com/lox/drawpoker/internal/statistics"
)

// Config holds configuration for running simulations
type Config struct {
	Sessions int
	Players  int
	Seed     int64 // Base seed; zero picks one at random
	Workers  int
	Policy   evaluator.DrawPolicy
	Timeout  time.Duration // Zero means no limit
	Logger   *log.Logger
	Clock    quartz.Clock
}

// Result is the outcome of a simulation run
type Result struct {
	Stats    *statistics.Statistics
	Seed     int64
	Sessions int
	Elapsed  time.Duration
}

// Simulator plays many independent sessions and aggregates draw statistics
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Players == 0 {
		config.Players = session.DefaultPlayers
	}
	if config.Workers <= 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	if config.Policy == nil {
		config.Policy = evaluator.DefaultDrawPolicy
	}
	if config.Logger == nil {
		config.Logger = log.Default()
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	config.Logger = config.Logger.WithPrefix("simulator")
	return &Simulator{config: config}
}

// Run plays every session across the worker pool. Session i is seeded from
// the base seed alone, so results do not depend on the worker count.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	if s.config.Sessions < 1 {
		return nil, fmt.Errorf("simulator: sessions must be positive, got %d", s.config.Sessions)
	}
	probe := session.Config{Players: s.config.Players, HandSize: session.DefaultHandSize}
	if err := probe.Validate(); err != nil {
		return nil, err
	}

	base := s.config.Seed
	if base == 0 {
		base = randutil.Seed()
	}
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	workers := min(s.config.Workers, s.config.Sessions)
	start := s.config.Clock.Now()
	s.config.Logger.Info("Starting simulation",
		"sessions", s.config.Sessions, "players", s.config.Players, "workers", workers, "seed", base)

	var (
		mu    sync.Mutex
		stats = &statistics.Statistics{}
	)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			local := &statistics.Statistics{}
			for i := w; i < s.config.Sessions; i += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				seed := randutil.Derive(base, i)
				results, err := s.PlaySession(seed)
				if err != nil {
					return fmt.Errorf("session %d (seed %d): %w", i, seed, err)
				}
				local.AddSession(results)
			}

			mu.Lock()
			stats.Merge(local)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Validate statistics before returning
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	elapsed := s.config.Clock.Since(start)
	s.config.Logger.Info("Simulation complete",
		"sessions", stats.Sessions, "hands", stats.Hands, "elapsed", elapsed)

	return &Result{
		Stats:    stats,
		Seed:     base,
		Sessions: stats.Sessions,
		Elapsed:  elapsed,
	}, nil
}

// PlaySession deals one session, draws for every player and returns the
// per-seat results
func (s *Simulator) PlaySession(seed int64) ([]statistics.HandResult, error) {
	sess, err := session.New(session.Config{
		Players:  s.config.Players,
		HandSize: session.DefaultHandSize,
		Seed:     seed,
		Policy:   s.config.Policy,
		Logger:   s.config.Logger,
		Clock:    s.config.Clock,
	})
	if err != nil {
		return nil, err
	}
	if err := sess.StartPlay(); err != nil {
		return nil, err
	}

	results := make([]statistics.HandResult, s.config.Players)
	for seat := range results {
		v, err := sess.Evaluate(seat)
		if err != nil {
			return nil, err
		}
		results[seat] = statistics.HandResult{
			Seed:   seed,
			Seat:   seat,
			Before: v.Ranking.HandRank(),
		}
	}

	reports, err := sess.DrawAll()
	if err != nil {
		return nil, err
	}
	for _, rep := range reports {
		results[rep.Seat].Discarded = len(rep.Discarded)
		results[rep.Seat].Shortfall = rep.Shortfall
	}

	winners, err := sess.Winners()
	if err != nil {
		return nil, err
	}
	for _, seat := range winners {
		results[seat].Won = true
	}

	for _, v := range sess.Hands() {
		results[v.Seat].After = v.Ranking.HandRank()
	}

	if err := sess.CheckInvariant(); err != nil {
		return nil, err
	}
	return results, nil
}

// RunSimulation is a convenience function for running a simulation with basic parameters
func RunSimulation(ctx context.Context, sessions, players int, seed int64, logger *log.Logger) (*Result, error) {
	return New(Config{
		Sessions: sessions,
		Players:  players,
		Seed:     seed,
		Logger:   logger,
	}).Run(ctx)
}
