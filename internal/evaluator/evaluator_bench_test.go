package evaluator

import (
	"testing"

	"github.com/lox/drawpoker/internal/deck"
	"github.com/lox/drawpoker/internal/randutil"
)

// generateHands deals n random five-card hands from a fixed seed
func generateHands(seed int64, n int) [][]deck.Card {
	rng := randutil.New(seed)
	hands := make([][]deck.Card, n)
	for i := range hands {
		d := deck.New(rng)
		d.Shuffle()
		cards, _ := d.Deal(HandSize)
		hands[i] = cards
	}
	return hands
}

// tortureCases covers every branch of the classifier
var tortureCases = []struct {
	name  string
	cards string
}{
	{"StraightFlush", "9h 8h 7h 6h 5h"},
	{"SteelWheel", "5s 4s 3s 2s As"},
	{"FourOfAKind", "As Ah Ad Ac Ks"},
	{"FullHouse", "Ks Kh Kd 2c 2s"},
	{"Flush", "As Js 9s 5s 3s"},
	{"Wheel", "Ah 2d 3c 4s 5h"},
	{"ThreeOfAKind", "7s 7h 7d Kc 2s"},
	{"TwoPair", "Js Jh 4d 4c As"},
	{"OnePair", "Ts Th 8d 5c 2s"},
	{"HighCard", "Ks Jh 9d 6c 3s"},
}

func BenchmarkEvaluate(b *testing.B) {
	hands := generateHands(42, 1024)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Evaluate(hands[i&1023]); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkClassify(b *testing.B) {
	hands := generateHands(7, 1024)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Classify(hands[i&1023]); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkTortureCases(b *testing.B) {
	for _, tc := range tortureCases {
		cards := deck.MustParseCards(tc.cards)
		b.Run(tc.name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := Evaluate(cards); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func TestTortureCasesClassify(t *testing.T) {
	want := map[string]Category{
		"StraightFlush": StraightFlush,
		"SteelWheel":    StraightFlush,
		"FourOfAKind":   FourOfAKind,
		"FullHouse":     FullHouse,
		"Flush":         Flush,
		"Wheel":         Straight,
		"ThreeOfAKind":  ThreeOfAKind,
		"TwoPair":       TwoPair,
		"OnePair":       OnePair,
		"HighCard":      HighCard,
	}
	for _, tc := range tortureCases {
		r, err := Classify(deck.MustParseCards(tc.cards))
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if r.Category != want[tc.name] {
			t.Errorf("%s classified as %v, want %v", tc.name, r.Category, want[tc.name])
		}
	}
}

func TestGenerateHandsIsDeterministic(t *testing.T) {
	a := generateHands(99, 10)
	b := generateHands(99, 10)
	for i := range a {
		if deck.FormatCards(a[i]) != deck.FormatCards(b[i]) {
			t.Fatalf("hand %d differs: %s vs %s", i, deck.FormatCards(a[i]), deck.FormatCards(b[i]))
		}
	}
}
