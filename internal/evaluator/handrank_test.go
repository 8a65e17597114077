package evaluator

import (
	"testing"

	"github.com/lox/drawpoker/internal/deck"
)

func TestHandRankPacking(t *testing.T) {
	r := Ranking{Category: TwoPair, Ranks: []deck.Rank{deck.King, deck.Seven, deck.Two}}
	hr := r.HandRank()

	if hr.Category() != TwoPair {
		t.Errorf("Category() = %v, want Two Pair", hr.Category())
	}
	// Unused trailing nibbles stay zero
	want := HandRank(TwoPair)<<20 | HandRank(deck.King)<<16 | HandRank(deck.Seven)<<12 | HandRank(deck.Two)<<8
	if hr != want {
		t.Errorf("HandRank() = %#x, want %#x", hr, want)
	}
	if hr.String() != "Two Pair" {
		t.Errorf("String() = %q", hr.String())
	}
}

func TestHandRankCompare(t *testing.T) {
	straightFlush := mustClassify(t, "As Ks Qs Js Ts")
	fourOfAKind := mustClassify(t, "As Ah Ad Ac Ks")
	highCard := mustClassify(t, "As Kh Qd 9s 7c")

	if !straightFlush.Beats(fourOfAKind) {
		t.Errorf("Straight flush should beat four of a kind")
	}
	if !fourOfAKind.Beats(highCard) {
		t.Errorf("Four of a kind should beat high card")
	}
	if highCard.Beats(highCard) {
		t.Errorf("A hand should not beat itself")
	}
	if CompareHands(highCard.HandRank(), fourOfAKind.HandRank()) != -1 {
		t.Errorf("CompareHands should report the second hand winning")
	}
	if CompareHands(fourOfAKind.HandRank(), fourOfAKind.HandRank()) != 0 {
		t.Errorf("Same hand should tie")
	}
}

func TestKickersBreakTies(t *testing.T) {
	tests := []struct {
		stronger, weaker string
	}{
		{"Kh Kd 9s 5c 3h", "Kc Ks 9d 5h 2c"},
		{"Ah Ad Kc Kd 3s", "As Ac Ks Kh 2d"},
		{"Ah Kh Qh Jh 9h", "As Ks Qs Js 8s"},
		{"9h 9d 9s Ac 2c", "9c 9d 9s Kc Qc"},
		{"Ah Kd Qs Jc 9h", "As Kc Qd Jh 8s"},
	}

	for _, tt := range tests {
		a := mustClassify(t, tt.stronger)
		b := mustClassify(t, tt.weaker)
		if !a.Beats(b) {
			t.Errorf("%s (%s) should beat %s (%s)", tt.stronger, a.Key(), tt.weaker, b.Key())
		}
	}
}

func TestRankingKey(t *testing.T) {
	tests := []struct {
		cards string
		want  string
	}{
		{"Kh Kd 7s 7c 2h", "TwoPair[K 7 2]"},
		{"Ah 2d 3s 4c 5h", "Straight[5]"},
		{"Qh Qd Qs 4c 4h", "FullHouse[Q 4]"},
	}

	for _, tt := range tests {
		if got := mustClassify(t, tt.cards).Key(); got != tt.want {
			t.Errorf("Key(%s) = %q, want %q", tt.cards, got, tt.want)
		}
	}
}

func mustClassify(t *testing.T, s string) Ranking {
	t.Helper()
	r, err := Classify(deck.MustParseCards(s))
	if err != nil {
		t.Fatalf("Classify(%s): %v", s, err)
	}
	return r
}
