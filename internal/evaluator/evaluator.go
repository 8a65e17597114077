// Package evaluator classifies five-card draw poker hands and decides which
// cards to keep and which to discard.
//
// Classification is a pure function of the cards. For made hands the keepers
// are exactly the cards forming the combination; for High Card hands the
// keepers come from a configurable DrawPolicy.
package evaluator

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lox/drawpoker/internal/deck"
)

// HandSize is the number of cards in a complete hand
const HandSize = 5

// ErrInvariantViolation is matched by InvariantViolation
var ErrInvariantViolation = errors.New("invariant violation")

// InvariantViolation reports malformed input that indicates a bug elsewhere
// in the engine, such as a hand with the wrong number of cards or a card
// appearing twice.
type InvariantViolation struct {
	Reason string
}

func (e *InvariantViolation) Error() string {
	return "invariant violation: " + e.Reason
}

// Is lets errors.Is match ErrInvariantViolation
func (e *InvariantViolation) Is(target error) bool {
	return target == ErrInvariantViolation
}

// Violationf builds an InvariantViolation with a formatted reason
func Violationf(format string, args ...any) error {
	return &InvariantViolation{Reason: fmt.Sprintf(format, args...)}
}

// Verdict is the result of evaluating a hand
type Verdict struct {
	Ranking  Ranking
	Keepers  []deck.Card
	Discards []deck.Card
	// Partial is set when fewer than five cards were evaluated
	Partial bool
}

// Evaluator classifies hands using a draw policy for unmade hands
type Evaluator struct {
	policy DrawPolicy
}

// Option configures an Evaluator
type Option func(*Evaluator)

// WithDrawPolicy sets the policy used to pick keepers for High Card hands
func WithDrawPolicy(p DrawPolicy) Option {
	return func(e *Evaluator) {
		if p != nil {
			e.policy = p
		}
	}
}

// New creates an evaluator. Without options it keeps the single highest card
// of a High Card hand.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{policy: DefaultDrawPolicy}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Policy returns the evaluator's draw policy
func (e *Evaluator) Policy() DrawPolicy {
	return e.policy
}

var defaultEvaluator = New()

// Evaluate classifies a five-card hand with the default draw policy
func Evaluate(cards []deck.Card) (Verdict, error) {
	return defaultEvaluator.Evaluate(cards)
}

// Classify returns only the ranking of a five-card hand
func Classify(cards []deck.Card) (Ranking, error) {
	v, err := defaultEvaluator.Evaluate(cards)
	return v.Ranking, err
}

// Evaluate classifies exactly five distinct cards
func (e *Evaluator) Evaluate(cards []deck.Card) (Verdict, error) {
	if len(cards) != HandSize {
		return Verdict{}, Violationf("hand has %d cards, want %d", len(cards), HandSize)
	}
	if err := validate(cards); err != nil {
		return Verdict{}, err
	}
	return e.verdict(cards), nil
}

// EvaluatePartial classifies a hand of up to five cards. Hands left short by
// a replacement shortfall can only make rank-group combinations; straights
// and flushes need all five cards.
func (e *Evaluator) EvaluatePartial(cards []deck.Card) (Verdict, error) {
	if len(cards) > HandSize {
		return Verdict{}, Violationf("hand has %d cards, at most %d allowed", len(cards), HandSize)
	}
	if err := validate(cards); err != nil {
		return Verdict{}, err
	}
	v := e.verdict(cards)
	v.Partial = len(cards) < HandSize
	return v, nil
}

func validate(cards []deck.Card) error {
	seen := make(map[deck.Card]bool, len(cards))
	for _, c := range cards {
		if !c.Valid() {
			return Violationf("invalid card %v", c)
		}
		if seen[c] {
			return Violationf("duplicate card %s", c)
		}
		seen[c] = true
	}
	return nil
}

func (e *Evaluator) verdict(cards []deck.Card) Verdict {
	ranking, made := classify(cards)

	var keepers []deck.Card
	if ranking.Category == HighCard {
		keepers = subset(cards, e.policy.Hold(cards))
	} else {
		for _, c := range cards {
			if made(c) {
				keepers = append(keepers, c)
			}
		}
	}

	discards := make([]deck.Card, 0, len(cards)-len(keepers))
	for _, c := range cards {
		if !deck.Contains(keepers, c) {
			discards = append(discards, c)
		}
	}

	return Verdict{
		Ranking:  ranking,
		Keepers:  keepers,
		Discards: discards,
	}
}

// subset returns the members of cards that appear in held, in hand order.
// Cards a policy returns that are not part of the hand are ignored.
func subset(cards, held []deck.Card) []deck.Card {
	out := make([]deck.Card, 0, len(held))
	for _, c := range cards {
		if deck.Contains(held, c) {
			out = append(out, c)
		}
	}
	return out
}

// rankGroup is a set of cards sharing a rank
type rankGroup struct {
	rank  deck.Rank
	count int
}

// groupRanks returns rank groups ordered by size, then by rank, descending
func groupRanks(cards []deck.Card) []rankGroup {
	var counts [deck.Ace + 1]int
	for _, c := range cards {
		counts[c.Rank]++
	}

	groups := make([]rankGroup, 0, len(cards))
	for r := deck.Ace; r >= deck.Two; r-- {
		if counts[r] > 0 {
			groups = append(groups, rankGroup{rank: r, count: counts[r]})
		}
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].count > groups[j].count
	})
	return groups
}

// isFlush reports whether five cards share one suit
func isFlush(cards []deck.Card) bool {
	if len(cards) != HandSize {
		return false
	}
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			return false
		}
	}
	return true
}

// straightHigh returns the high card of a straight, or 0 if the groups do
// not form one. The wheel (A-2-3-4-5) is Five high.
func straightHigh(groups []rankGroup) deck.Rank {
	if len(groups) != HandSize {
		return 0
	}
	// groups are all singletons here, already sorted high to low
	high, low := groups[0].rank, groups[4].rank
	if high-low == 4 {
		return high
	}
	if high == deck.Ace && groups[1].rank == deck.Five && low == deck.Two {
		return deck.Five
	}
	return 0
}

func ranksOf(groups []rankGroup) []deck.Rank {
	out := make([]deck.Rank, len(groups))
	for i, g := range groups {
		out[i] = g.rank
	}
	return out
}

// classify returns the ranking of cards and a predicate selecting the cards
// that form the ranking's combination.
func classify(cards []deck.Card) (Ranking, func(deck.Card) bool) {
	groups := groupRanks(cards)
	all := func(deck.Card) bool { return true }
	none := func(deck.Card) bool { return false }
	ofRank := func(ranks ...deck.Rank) func(deck.Card) bool {
		return func(c deck.Card) bool {
			for _, r := range ranks {
				if c.Rank == r {
					return true
				}
			}
			return false
		}
	}

	if len(groups) == 0 {
		return Ranking{Category: HighCard}, none
	}

	flush := isFlush(cards)
	high := straightHigh(groups)
	top := groups[0]

	switch {
	case flush && high > 0:
		return Ranking{Category: StraightFlush, Ranks: []deck.Rank{high}}, all
	case top.count == 4:
		return Ranking{Category: FourOfAKind, Ranks: ranksOf(groups)}, ofRank(top.rank)
	case top.count == 3 && len(groups) > 1 && groups[1].count == 2:
		return Ranking{Category: FullHouse, Ranks: ranksOf(groups)}, all
	case flush:
		return Ranking{Category: Flush, Ranks: ranksOf(groups)}, all
	case high > 0:
		return Ranking{Category: Straight, Ranks: []deck.Rank{high}}, all
	case top.count == 3:
		return Ranking{Category: ThreeOfAKind, Ranks: ranksOf(groups)}, ofRank(top.rank)
	case top.count == 2 && len(groups) > 1 && groups[1].count == 2:
		return Ranking{Category: TwoPair, Ranks: ranksOf(groups)}, ofRank(top.rank, groups[1].rank)
	case top.count == 2:
		return Ranking{Category: OnePair, Ranks: ranksOf(groups)}, ofRank(top.rank)
	}
	return Ranking{Category: HighCard, Ranks: ranksOf(groups)}, none
}
