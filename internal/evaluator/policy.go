package evaluator

import (
	"fmt"
	"sort"

	"github.com/lox/drawpoker/internal/deck"
)

// DrawPolicy chooses which cards of an unmade (High Card) hand to hold.
// Made hands never consult the policy, so a combination is never broken up.
type DrawPolicy interface {
	// Hold returns the cards to keep, in the order they appear in cards.
	Hold(cards []deck.Card) []deck.Card
}

// DrawPolicyFunc adapts a function to DrawPolicy
type DrawPolicyFunc func(cards []deck.Card) []deck.Card

// Hold calls f(cards)
func (f DrawPolicyFunc) Hold(cards []deck.Card) []deck.Card {
	return f(cards)
}

// KeepHighest holds the n highest-ranked cards and discards the rest.
// KeepHighest(1) is the default: keep the best card and draw four, which
// maximises the number of fresh cards.
type KeepHighest int

// DefaultDrawPolicy is used when no policy is configured
const DefaultDrawPolicy = KeepHighest(1)

// Hold implements DrawPolicy
func (k KeepHighest) Hold(cards []deck.Card) []deck.Card {
	n := int(k)
	if n <= 0 {
		return nil
	}
	if n >= len(cards) {
		return append([]deck.Card(nil), cards...)
	}

	idx := make([]int, len(cards))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return cards[idx[a]].Rank > cards[idx[b]].Rank
	})

	keep := make([]bool, len(cards))
	for _, i := range idx[:n] {
		keep[i] = true
	}
	held := make([]deck.Card, 0, n)
	for i, c := range cards {
		if keep[i] {
			held = append(held, c)
		}
	}
	return held
}

// String describes the policy
func (k KeepHighest) String() string {
	return fmt.Sprintf("keep-highest(%d)", int(k))
}
