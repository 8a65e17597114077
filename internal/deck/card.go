package deck

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// NumSuits is the number of suits in a standard deck
const NumSuits = 4

// String returns the glyph for a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Letter returns the lowercase single-letter code used in card codes (s, h, d, c)
func (s Suit) Letter() byte {
	switch s {
	case Spades:
		return 's'
	case Hearts:
		return 'h'
	case Diamonds:
		return 'd'
	case Clubs:
		return 'c'
	default:
		return '?'
	}
}

// Name returns the plural English name of the suit
func (s Suit) Name() string {
	switch s {
	case Spades:
		return "Spades"
	case Hearts:
		return "Hearts"
	case Diamonds:
		return "Diamonds"
	case Clubs:
		return "Clubs"
	default:
		return "Unknown"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Valid reports whether s is one of the four suits
func (s Suit) Valid() bool {
	return s >= Spades && s <= Clubs
}

// Rank represents a card rank. Values run from 2 to 14 so that comparisons
// follow poker order with the Ace high.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// NumRanks is the number of ranks per suit
const NumRanks = 13

// String returns the single-character rank code (T for ten)
func (r Rank) String() string {
	if !r.Valid() {
		return "?"
	}
	return string(rankChars[r-Two])
}

// Name returns the English name of the rank ("Two" .. "Ace")
func (r Rank) Name() string {
	if !r.Valid() {
		return "Unknown"
	}
	return rankNames[r-Two]
}

// Plural returns the plural English name of the rank ("Sixes", "Kings")
func (r Rank) Plural() string {
	if r == Six {
		return "Sixes"
	}
	return r.Name() + "s"
}

// Valid reports whether r is between Two and Ace
func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

const rankChars = "23456789TJQKA"

var rankNames = [NumRanks]string{
	"Two", "Three", "Four", "Five", "Six", "Seven", "Eight",
	"Nine", "Ten", "Jack", "Queen", "King", "Ace",
}

// Card represents a playing card. Cards are comparable values.
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the glyph form of a card (e.g., "A♠")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// Code returns the two-character ASCII code of a card (e.g., "As", "Th")
func (c Card) Code() string {
	return string([]byte{rankChars[clampRank(c.Rank)], c.Suit.Letter()})
}

// Name returns the long form, e.g. "King of Spades"
func (c Card) Name() string {
	return c.Rank.Name() + " of " + c.Suit.Name()
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// Valid reports whether both rank and suit are in range
func (c Card) Valid() bool {
	return c.Rank.Valid() && c.Suit.Valid()
}

// Index returns the card's position in the canonical deck order (0-51)
func (c Card) Index() int {
	return int(c.Suit)*NumRanks + int(c.Rank-Two)
}

func clampRank(r Rank) int {
	if !r.Valid() {
		return 0
	}
	return int(r - Two)
}

// ParseRank parses a rank code. Both "T" and "10" are accepted for ten.
func ParseRank(s string) (Rank, error) {
	switch strings.ToUpper(s) {
	case "10", "T":
		return Ten, nil
	case "J":
		return Jack, nil
	case "Q":
		return Queen, nil
	case "K":
		return King, nil
	case "A":
		return Ace, nil
	}
	if len(s) == 1 && s[0] >= '2' && s[0] <= '9' {
		return Rank(s[0] - '0'), nil
	}
	return 0, fmt.Errorf("invalid rank: %q", s)
}

// ParseSuit parses a suit letter or glyph
func ParseSuit(s string) (Suit, error) {
	switch strings.ToLower(s) {
	case "s", "♠":
		return Spades, nil
	case "h", "♥":
		return Hearts, nil
	case "d", "♦":
		return Diamonds, nil
	case "c", "♣":
		return Clubs, nil
	}
	return 0, fmt.Errorf("invalid suit: %q", s)
}

// ParseCard parses a single card such as "As", "th" or "10h"
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) < 2 || len(runes) > 3 {
		return Card{}, fmt.Errorf("invalid card string: %q", s)
	}
	rank, err := ParseRank(string(runes[:len(runes)-1]))
	if err != nil {
		return Card{}, err
	}
	suit, err := ParseSuit(string(runes[len(runes)-1]))
	if err != nil {
		return Card{}, err
	}
	return NewCard(suit, rank), nil
}

// ParseCards parses a list of cards. The input may be concatenated two
// character codes ("AsKsQs") or codes separated by spaces or commas
// ("As Ks 10s").
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n'
	})
	if len(fields) == 1 {
		fields = splitConcatenated(fields[0])
		if fields == nil {
			return nil, fmt.Errorf("invalid card list: %q", s)
		}
	}

	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// splitConcatenated splits "AsKs10h" style input into codes; returns nil if
// the input cannot be split cleanly.
func splitConcatenated(s string) []string {
	runes := []rune(s)
	var out []string
	for i := 0; i < len(runes); {
		if runes[i] == '1' && i+2 < len(runes) && runes[i+1] == '0' {
			out = append(out, string(runes[i:i+3]))
			i += 3
			continue
		}
		if i+1 >= len(runes) {
			return nil
		}
		out = append(out, string(runes[i:i+2]))
		i += 2
	}
	return out
}

// MustParseCards is like ParseCards but panics on error. Intended for tests
// and fixed tables.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

// FormatCards joins the codes of cards with a space
func FormatCards(cards []Card) string {
	codes := make([]string, len(cards))
	for i, c := range cards {
		codes[i] = c.Code()
	}
	return strings.Join(codes, " ")
}

// Contains reports whether cards contains c
func Contains(cards []Card, c Card) bool {
	for _, x := range cards {
		if x == c {
			return true
		}
	}
	return false
}
