// Package session runs one game of five-card draw: it owns a deck and the
// players' hands, deals the hands and replaces discards from the deck.
//
// # Basic Usage
//
//	s, err := session.New(session.Config{Players: 8, HandSize: 5, Seed: 42})
//	if err != nil {
//	    return err
//	}
//	if err := s.StartPlay(); err != nil {
//	    return err
//	}
//	reports, err := s.DrawAll()
//
// A Session is confined to a single goroutine. To deal again, construct a new
// Session rather than resetting an old one.
package session

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/lox/drawpoker/internal/deck"
	"github.com/lox/drawpoker/internal/evaluator"
	"github.com/lox/drawpoker/internal/hand"
	"github.com/lox/drawpoker/internal/randutil"
)

const (
	// DefaultPlayers is the table size of the original game
	DefaultPlayers = 8
	// DefaultHandSize is the number of cards dealt to each player
	DefaultHandSize = hand.Size
)

// Config configures a session
type Config struct {
	Players  int
	HandSize int

	// Seed drives the shuffle. Zero picks a random seed.
	Seed int64

	// Policy chooses keepers for High Card hands. Nil keeps the best card.
	Policy evaluator.DrawPolicy

	Logger *log.Logger
	Clock  quartz.Clock
}

// DefaultConfig returns the standard 8 player, 5 card configuration
func DefaultConfig() Config {
	return Config{
		Players:  DefaultPlayers,
		HandSize: DefaultHandSize,
		Policy:   evaluator.DefaultDrawPolicy,
	}
}

// Validate checks that the configuration can be dealt from one deck
func (c Config) Validate() error {
	switch {
	case c.Players < 1:
		return &ConfigurationError{Players: c.Players, HandSize: c.HandSize, Reason: "at least one player is required"}
	case c.HandSize != hand.Size:
		return &ConfigurationError{Players: c.Players, HandSize: c.HandSize, Reason: fmt.Sprintf("hand size must be %d", hand.Size)}
	case c.Players*c.HandSize > deck.Size:
		return &ConfigurationError{Players: c.Players, HandSize: c.HandSize, Reason: fmt.Sprintf("needs more than %d cards", deck.Size)}
	}
	return nil
}

// Session is one game: a deck and a fixed number of hands
type Session struct {
	id        string
	cfg       Config
	seed      int64
	deck      *deck.Deck
	hands     []*hand.Hand
	dealt     [][]deck.Card
	muck      []deck.Card
	draws     []hand.DrawReport
	evaluator *evaluator.Evaluator
	logger    *log.Logger
	clock     quartz.Clock

	createdAt time.Time
	startedAt time.Time
	started   bool
}

// New validates cfg and creates a session with an unshuffled deck. A zero
// HandSize defaults to five cards.
func New(cfg Config) (*Session, error) {
	if cfg.HandSize == 0 {
		cfg.HandSize = DefaultHandSize
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Policy == nil {
		cfg.Policy = evaluator.DefaultDrawPolicy
	}
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = randutil.Seed()
	}

	id := uuid.NewString()
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Session{
		id:        id,
		cfg:       cfg,
		seed:      seed,
		deck:      deck.New(randutil.New(seed)),
		evaluator: evaluator.New(evaluator.WithDrawPolicy(cfg.Policy)),
		logger:    logger.WithPrefix("session").With("session_id", id[:8]),
		clock:     cfg.Clock,
		createdAt: cfg.Clock.Now(),
	}, nil
}

// ID returns the session's unique identifier
func (s *Session) ID() string { return s.id }

// Seed returns the seed driving the shuffle, useful to replay a session
func (s *Session) Seed() int64 { return s.seed }

// Players returns the number of seats
func (s *Session) Players() int { return s.cfg.Players }

// HandSize returns the number of cards dealt per player
func (s *Session) HandSize() int { return s.cfg.HandSize }

// Policy returns the draw policy for High Card hands
func (s *Session) Policy() evaluator.DrawPolicy { return s.cfg.Policy }

// CreatedAt returns when the session was constructed
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// StartedAt returns when play started (zero before StartPlay)
func (s *Session) StartedAt() time.Time { return s.startedAt }

// Started reports whether the hands have been dealt
func (s *Session) Started() bool { return s.started }

// StartPlay shuffles the deck and deals HandSize cards to each player in seat
// order: seat 0 receives the first cards, seat 1 the next, and so on.
func (s *Session) StartPlay() error {
	if s.started {
		return ErrAlreadyStarted
	}

	s.deck.Shuffle()
	s.hands = make([]*hand.Hand, s.cfg.Players)
	s.dealt = make([][]deck.Card, s.cfg.Players)
	for seat := range s.hands {
		cards, err := s.deck.Deal(s.cfg.HandSize)
		if err != nil {
			// Validate rules this out; reaching here is a bug
			return evaluator.Violationf("dealing seat %d: %v", seat, err)
		}
		s.hands[seat] = hand.New(seat, cards)
		s.dealt[seat] = append([]deck.Card(nil), cards...)
	}

	s.started = true
	s.startedAt = s.clock.Now()
	s.logger.Debug("Dealt hands", "players", s.cfg.Players, "remaining", s.deck.Len(), "seed", s.seed)
	return nil
}

// Shuffle reshuffles the cards that have not been dealt
func (s *Session) Shuffle() {
	s.deck.Shuffle()
	s.logger.Debug("Shuffled deck", "remaining", s.deck.Len())
}

// Deck returns all 52 cards in current deck order, dealt cards first
func (s *Session) Deck() []deck.Card {
	return s.deck.Cards()
}

// RemainingCards returns the cards never dealt to any hand
func (s *Session) RemainingCards() []deck.Card {
	return s.deck.Remaining()
}

// Muck returns the cards discarded from hands, in discard order
func (s *Session) Muck() []deck.Card {
	return append([]deck.Card(nil), s.muck...)
}

// Draws returns the reports of every draw so far
func (s *Session) Draws() []hand.DrawReport {
	return append([]hand.DrawReport(nil), s.draws...)
}

// Hands returns a snapshot of every hand in seat order
func (s *Session) Hands() []hand.View {
	views := make([]hand.View, len(s.hands))
	for i, h := range s.hands {
		views[i] = h.View()
	}
	return views
}

// Hand returns a snapshot of the hand at seat
func (s *Session) Hand(seat int) (hand.View, error) {
	h, err := s.hand(seat)
	if err != nil {
		return hand.View{}, err
	}
	return h.View(), nil
}

// DealtCards returns the cards dealt to seat by StartPlay, before any draw
func (s *Session) DealtCards(seat int) ([]deck.Card, error) {
	if _, err := s.hand(seat); err != nil {
		return nil, err
	}
	return append([]deck.Card(nil), s.dealt[seat]...), nil
}

func (s *Session) hand(seat int) (*hand.Hand, error) {
	if !s.started {
		return nil, ErrNotStarted
	}
	if seat < 0 || seat >= len(s.hands) {
		return nil, fmt.Errorf("%w: %d", ErrSeatOutOfRange, seat)
	}
	return s.hands[seat], nil
}

// Evaluate classifies the hand at seat
func (s *Session) Evaluate(seat int) (evaluator.Verdict, error) {
	h, err := s.hand(seat)
	if err != nil {
		return evaluator.Verdict{}, err
	}
	return h.Evaluate(s.evaluator)
}

// Discards returns the cards the hand at seat would discard, evaluating the
// hand first if needed
func (s *Session) Discards(seat int) ([]deck.Card, error) {
	h, err := s.hand(seat)
	if err != nil {
		return nil, err
	}
	if !h.Evaluated() {
		if _, err := h.Evaluate(s.evaluator); err != nil {
			return nil, err
		}
	}
	return h.Discards(), nil
}

// ReplaceDiscards replaces the evaluated discards of the hand at seat with
// cards from the front of the remaining deck. It does not re-evaluate the
// hand. A shortfall is reported, logged as a warning, and is not an error.
func (s *Session) ReplaceDiscards(seat int) (hand.DrawReport, error) {
	h, err := s.hand(seat)
	if err != nil {
		return hand.DrawReport{}, err
	}

	report, err := h.ReplaceDiscards(s.deck)
	if err != nil {
		return report, err
	}

	s.muck = append(s.muck, report.Discarded...)
	s.draws = append(s.draws, report)
	if report.Shortfall > 0 {
		s.logger.Warn("Deck ran out while replacing discards",
			"seat", seat, "discarded", len(report.Discarded), "shortfall", report.Shortfall)
	}
	return report, nil
}

// Draw runs the automatic discard flow for the hand at seat: evaluate,
// replace every discard, then evaluate the new hand.
func (s *Session) Draw(seat int) (hand.DrawReport, error) {
	before, err := s.Evaluate(seat)
	if err != nil {
		return hand.DrawReport{}, err
	}

	report, err := s.ReplaceDiscards(seat)
	if err != nil {
		return report, err
	}

	after, err := s.Evaluate(seat)
	if err != nil {
		return report, err
	}

	s.logger.Debug("Drew cards",
		"seat", seat,
		"before", before.Ranking.String(),
		"discarded", deck.FormatCards(report.Discarded),
		"drawn", deck.FormatCards(report.Drawn),
		"after", after.Ranking.String())
	return report, nil
}

// DrawAll runs Draw for every seat in order
func (s *Session) DrawAll() ([]hand.DrawReport, error) {
	if !s.started {
		return nil, ErrNotStarted
	}
	reports := make([]hand.DrawReport, 0, len(s.hands))
	for seat := range s.hands {
		r, err := s.Draw(seat)
		if err != nil {
			return reports, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}

// Winners returns the seats holding the strongest ranking. Hands without a
// current evaluation are evaluated first.
func (s *Session) Winners() ([]int, error) {
	if !s.started {
		return nil, ErrNotStarted
	}

	var (
		best    evaluator.HandRank
		winners []int
	)
	for seat, h := range s.hands {
		if !h.Evaluated() {
			if _, err := h.Evaluate(s.evaluator); err != nil {
				return nil, err
			}
		}
		hr := h.Ranking().HandRank()
		switch {
		case winners == nil || hr > best:
			best = hr
			winners = []int{seat}
		case hr == best:
			winners = append(winners, seat)
		}
	}
	return winners, nil
}

// CheckInvariant verifies that every one of the 52 cards is in exactly one
// place: a hand, the remaining deck, or the muck. Before any draw this is
// the same as hand sizes plus remaining cards adding up to 52.
func (s *Session) CheckInvariant() error {
	seen := make(map[deck.Card]string, deck.Size)
	place := func(where string, cards []deck.Card) error {
		for _, c := range cards {
			if prev, dup := seen[c]; dup {
				return evaluator.Violationf("card %s in %s and %s", c, prev, where)
			}
			seen[c] = where
		}
		return nil
	}

	for _, h := range s.hands {
		if err := place(fmt.Sprintf("seat %d", h.Seat()), h.Cards()); err != nil {
			return err
		}
	}
	if err := place("remaining", s.deck.Remaining()); err != nil {
		return err
	}
	if err := place("muck", s.muck); err != nil {
		return err
	}
	if len(seen) != deck.Size {
		return evaluator.Violationf("accounted for %d cards, want %d", len(seen), deck.Size)
	}
	return nil
}
