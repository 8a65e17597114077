// Package hand holds the cards dealt to one player along with the latest
// evaluation of those cards.
package hand

import (
	"errors"
	"fmt"

	"github.com/lox/drawpoker/internal/deck"
	"github.com/lox/drawpoker/internal/evaluator"
)

// Size is the number of cards in a full hand
const Size = evaluator.HandSize

// ErrNotEvaluated is returned when discards are requested before the hand has
// a current evaluation
var ErrNotEvaluated = errors.New("hand: not evaluated")

// Source supplies replacement cards. It reports false once it is exhausted.
// *deck.Deck satisfies Source.
type Source interface {
	Draw() (deck.Card, bool)
}

// Pool is a Source backed by a slice, drawing from the front
type Pool struct {
	cards []deck.Card
}

// NewPool creates a pool holding a copy of cards
func NewPool(cards []deck.Card) *Pool {
	return &Pool{cards: append([]deck.Card(nil), cards...)}
}

// Draw removes the first card of the pool
func (p *Pool) Draw() (deck.Card, bool) {
	if len(p.cards) == 0 {
		return deck.Card{}, false
	}
	c := p.cards[0]
	p.cards = p.cards[1:]
	return c, true
}

// Len returns the number of cards left in the pool
func (p *Pool) Len() int {
	return len(p.cards)
}

// Cards returns a copy of the cards left in the pool
func (p *Pool) Cards() []deck.Card {
	return append([]deck.Card(nil), p.cards...)
}

// DrawReport describes one discard-and-replace cycle
type DrawReport struct {
	Seat      int
	Discarded []deck.Card
	Drawn     []deck.Card
	// Shortfall counts discards that could not be replaced
	Shortfall int
}

// Err returns an *deck.InsufficientCardsError describing the shortfall, or
// nil if every discard was replaced. The error is a warning: the hand stays
// usable with fewer cards.
func (r DrawReport) Err() error {
	if r.Shortfall == 0 {
		return nil
	}
	return &deck.InsufficientCardsError{
		Requested: len(r.Discarded),
		Remaining: len(r.Drawn),
	}
}

// Hand is the set of cards held by one player. It is owned by a single game
// session and is not safe for concurrent use.
type Hand struct {
	seat    int
	cards   []deck.Card
	verdict *evaluator.Verdict
}

// New creates a hand for seat holding a copy of cards
func New(seat int, cards []deck.Card) *Hand {
	return &Hand{
		seat:  seat,
		cards: append(make([]deck.Card, 0, Size), cards...),
	}
}

// Seat returns the player's seat index
func (h *Hand) Seat() int {
	return h.seat
}

// Cards returns a copy of the cards in the hand
func (h *Hand) Cards() []deck.Card {
	return append([]deck.Card(nil), h.cards...)
}

// Len returns the number of cards held
func (h *Hand) Len() int {
	return len(h.cards)
}

// Short reports whether the hand holds fewer than five cards after a
// replacement shortfall
func (h *Hand) Short() bool {
	return len(h.cards) < Size
}

// Evaluated reports whether the hand has a current evaluation
func (h *Hand) Evaluated() bool {
	return h.verdict != nil
}

// Evaluate classifies the current cards and stores the verdict. Calling it
// again without changing the cards gives the same result. Short hands are
// classified from their rank groups only.
func (h *Hand) Evaluate(ev *evaluator.Evaluator) (evaluator.Verdict, error) {
	if ev == nil {
		ev = evaluator.New()
	}

	var (
		v   evaluator.Verdict
		err error
	)
	if h.Short() {
		v, err = ev.EvaluatePartial(h.cards)
	} else {
		v, err = ev.Evaluate(h.cards)
	}
	if err != nil {
		return evaluator.Verdict{}, fmt.Errorf("seat %d: %w", h.seat, err)
	}

	h.verdict = &v
	return v, nil
}

// Ranking returns the current ranking, or nil if the hand is not evaluated
func (h *Hand) Ranking() *evaluator.Ranking {
	if h.verdict == nil {
		return nil
	}
	r := h.verdict.Ranking
	r.Ranks = append([]deck.Rank(nil), r.Ranks...)
	return &r
}

// Keepers returns the cards forming the ranking (nil if not evaluated)
func (h *Hand) Keepers() []deck.Card {
	if h.verdict == nil {
		return nil
	}
	return append([]deck.Card(nil), h.verdict.Keepers...)
}

// Discards returns the cards outside the ranking (nil if not evaluated)
func (h *Hand) Discards() []deck.Card {
	if h.verdict == nil {
		return nil
	}
	return append([]deck.Card(nil), h.verdict.Discards...)
}

// ReplaceDiscards removes every discard and draws one replacement per
// discard from src. If src runs dry the remaining discards are still removed
// and the shortfall is recorded in the report; this is not an error.
//
// The hand must have a current evaluation. The verdict is cleared afterwards
// and the caller is expected to call Evaluate again.
func (h *Hand) ReplaceDiscards(src Source) (DrawReport, error) {
	if h.verdict == nil {
		return DrawReport{}, fmt.Errorf("seat %d: %w", h.seat, ErrNotEvaluated)
	}

	report := DrawReport{
		Seat:      h.seat,
		Discarded: append([]deck.Card(nil), h.verdict.Discards...),
	}
	if len(report.Discarded) == 0 {
		return report, nil
	}

	kept := make([]deck.Card, 0, Size)
	for _, c := range h.cards {
		if !deck.Contains(report.Discarded, c) {
			kept = append(kept, c)
		}
	}

	for range report.Discarded {
		c, ok := src.Draw()
		if !ok {
			report.Shortfall++
			continue
		}
		kept = append(kept, c)
		report.Drawn = append(report.Drawn, c)
	}

	h.cards = kept
	h.verdict = nil
	return report, nil
}

// View is a read-only snapshot of a hand for display
type View struct {
	Seat     int
	Cards    []deck.Card
	Ranking  *evaluator.Ranking
	Keepers  []deck.Card
	Discards []deck.Card
	Short    bool
}

// View returns a snapshot of the hand
func (h *Hand) View() View {
	return View{
		Seat:     h.seat,
		Cards:    h.Cards(),
		Ranking:  h.Ranking(),
		Keepers:  h.Keepers(),
		Discards: h.Discards(),
		Short:    h.Short(),
	}
}

// String formats the hand as "Player 1: 2♥ 2♠ 7♦ 9♣ K♠ (One Pair, Twos)"
func (h *Hand) String() string {
	return h.View().String()
}

// String formats the view as a single line
func (v View) String() string {
	s := fmt.Sprintf("Player %d:", v.Seat+1)
	for _, c := range v.Cards {
		s += " " + c.String()
	}
	if v.Ranking != nil {
		s += " (" + v.Ranking.String() + ")"
	}
	if v.Short {
		s += " [short]"
	}
	return s
}
