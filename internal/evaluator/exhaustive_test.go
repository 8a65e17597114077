package evaluator

import (
	"testing"

	"github.com/lox/drawpoker/internal/deck"
	"github.com/lox/drawpoker/internal/randutil"
	"github.com/paulhankin/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAllFiveCardHands walks every 5-card hand and checks the well-known
// category frequencies along with the keeper/discard partition.
func TestAllFiveCardHands(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping exhaustive enumeration in short mode")
	}

	want := map[Category]int{
		StraightFlush: 40,
		FourOfAKind:   624,
		FullHouse:     3744,
		Flush:         5108,
		Straight:      10200,
		ThreeOfAKind:  54912,
		TwoPair:       123552,
		OnePair:       1098240,
		HighCard:      1302540,
	}

	cards := deck.Canonical()
	got := make(map[Category]int)
	hand := make([]deck.Card, 5)
	for a := 0; a < 48; a++ {
		for b := a + 1; b < 49; b++ {
			for c := b + 1; c < 50; c++ {
				for d := c + 1; d < 51; d++ {
					for e := d + 1; e < 52; e++ {
						hand[0], hand[1], hand[2], hand[3], hand[4] = cards[a], cards[b], cards[c], cards[d], cards[e]
						v, err := Evaluate(hand)
						if err != nil {
							t.Fatalf("evaluate %v: %v", hand, err)
						}
						if len(v.Keepers)+len(v.Discards) != 5 {
							t.Fatalf("%v: keepers %v and discards %v do not partition the hand", hand, v.Keepers, v.Discards)
						}
						got[v.Ranking.Category]++
					}
				}
			}
		}
	}

	assert.Equal(t, want, got)
}

func toOracle(t *testing.T, cards []deck.Card) [5]poker.Card {
	t.Helper()
	suits := map[deck.Suit]poker.Suit{
		deck.Clubs:    poker.Club,
		deck.Diamonds: poker.Diamond,
		deck.Hearts:   poker.Heart,
		deck.Spades:   poker.Spade,
	}
	var out [5]poker.Card
	for i, c := range cards {
		rank := poker.Rank(c.Rank)
		if c.Rank == deck.Ace {
			rank = 1
		}
		pc, err := poker.MakeCard(suits[c.Suit], rank)
		require.NoError(t, err)
		out[i] = pc
	}
	return out
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// TestOrderingMatchesReferenceEvaluator compares head-to-head results with
// an independent evaluator on seeded random deals.
func TestOrderingMatchesReferenceEvaluator(t *testing.T) {
	rng := randutil.New(2024)

	for i := 0; i < 5000; i++ {
		d := deck.New(rng)
		d.Shuffle()
		a, err := d.Deal(5)
		require.NoError(t, err)
		b, err := d.Deal(5)
		require.NoError(t, err)

		ra, err := Classify(a)
		require.NoError(t, err)
		rb, err := Classify(b)
		require.NoError(t, err)

		oa, ob := toOracle(t, a), toOracle(t, b)
		want := sign(int(poker.Eval5(&oa)) - int(poker.Eval5(&ob)))

		require.Equal(t, want, ra.Compare(rb), "%s (%s) vs %s (%s)",
			deck.FormatCards(a), ra, deck.FormatCards(b), rb)
	}
}
