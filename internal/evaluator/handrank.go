package evaluator

import (
	"fmt"
	"strings"

	"github.com/lox/drawpoker/internal/deck"
)

// Category is the class of a poker hand. Higher values are stronger.
type Category uint8

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// Categories lists every category from strongest to weakest
var Categories = []Category{
	StraightFlush, FourOfAKind, FullHouse, Flush, Straight,
	ThreeOfAKind, TwoPair, OnePair, HighCard,
}

// String returns a human-readable category name
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// HandRank packs a ranking into a single comparable value.
// Bits 20-23 hold the category, the five nibbles below hold the deciding
// ranks, most significant first.
type HandRank uint32

const categoryShift = 20

// Category returns the category encoded in the hand rank
func (hr HandRank) Category() Category {
	return Category(hr >> categoryShift)
}

// String returns the category name
func (hr HandRank) String() string {
	return hr.Category().String()
}

// Ranking is a classified hand: its category plus the ranks that break ties
// between two hands of the same category, most significant first.
type Ranking struct {
	Category Category
	Ranks    []deck.Rank
}

// HandRank returns the packed, directly comparable form of the ranking
func (r Ranking) HandRank() HandRank {
	hr := HandRank(r.Category) << categoryShift
	shift := categoryShift
	for i := 0; i < 5; i++ {
		shift -= 4
		if i < len(r.Ranks) {
			hr |= HandRank(r.Ranks[i]&0xF) << shift
		}
	}
	return hr
}

// Compare returns 1 if r beats other, -1 if other beats r, 0 for a tie
func (r Ranking) Compare(other Ranking) int {
	return CompareHands(r.HandRank(), other.HandRank())
}

// Beats reports whether r is strictly stronger than other
func (r Ranking) Beats(other Ranking) bool {
	return r.Compare(other) > 0
}

// String returns a description such as "Two Pair, Kings and Sevens"
func (r Ranking) String() string {
	rank := func(i int) deck.Rank {
		if i < len(r.Ranks) {
			return r.Ranks[i]
		}
		return 0
	}

	switch r.Category {
	case StraightFlush:
		if rank(0) == deck.Ace {
			return "Straight Flush, Ace high (royal)"
		}
		return fmt.Sprintf("Straight Flush, %s high", rank(0).Name())
	case FourOfAKind:
		return fmt.Sprintf("Four of a Kind, %s", rank(0).Plural())
	case FullHouse:
		return fmt.Sprintf("Full House, %s over %s", rank(0).Plural(), rank(1).Plural())
	case Flush:
		return fmt.Sprintf("Flush, %s high", rank(0).Name())
	case Straight:
		return fmt.Sprintf("Straight, %s high", rank(0).Name())
	case ThreeOfAKind:
		return fmt.Sprintf("Three of a Kind, %s", rank(0).Plural())
	case TwoPair:
		return fmt.Sprintf("Two Pair, %s and %s", rank(0).Plural(), rank(1).Plural())
	case OnePair:
		return fmt.Sprintf("One Pair, %s", rank(0).Plural())
	case HighCard:
		if len(r.Ranks) == 0 {
			return "No Cards"
		}
		return fmt.Sprintf("High Card, %s", rank(0).Name())
	}
	return "Unknown"
}

// Key returns a compact form of the ranking, e.g. "TwoPair[K 7 2]"
func (r Ranking) Key() string {
	parts := make([]string, len(r.Ranks))
	for i, rk := range r.Ranks {
		parts[i] = rk.String()
	}
	return strings.ReplaceAll(r.Category.String(), " ", "") + "[" + strings.Join(parts, " ") + "]"
}

// CompareHands compares two hands and returns 1 if a wins, -1 if b wins, 0 for tie
func CompareHands(a, b HandRank) int {
	if a > b {
		return 1
	} else if a < b {
		return -1
	}
	return 0
}
