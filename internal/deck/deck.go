package deck

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// Size is the number of cards in a standard deck
const Size = NumSuits * NumRanks

// ErrInsufficientCards is matched by InsufficientCardsError
var ErrInsufficientCards = errors.New("deck: insufficient cards")

// InsufficientCardsError reports a deal that asked for more cards than remain
type InsufficientCardsError struct {
	Requested int
	Remaining int
}

func (e *InsufficientCardsError) Error() string {
	return fmt.Sprintf("deck: requested %d cards, %d remaining", e.Requested, e.Remaining)
}

// Is lets errors.Is match ErrInsufficientCards
func (e *InsufficientCardsError) Is(target error) bool {
	return target == ErrInsufficientCards
}

// Deck represents a deck of playing cards. Dealt cards stay in the backing
// array as a prefix; the remaining cards are the suffix starting at next.
type Deck struct {
	cards [Size]Card
	next  int
	rng   *rand.Rand
}

// New creates a standard 52-card deck in canonical order: Spades, Hearts,
// Diamonds, Clubs, each from Two to Ace. The deck is not shuffled.
func New(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}
	i := 0
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards[i] = NewCard(suit, rank)
			i++
		}
	}
	return d
}

// Canonical returns the 52 cards in canonical order
func Canonical() []Card {
	return New(nil).Cards()
}

// Shuffle randomizes the order of the remaining cards using Fisher-Yates.
// Cards already dealt are not moved.
func (d *Deck) Shuffle() {
	rest := d.cards[d.next:]
	for i := len(rest) - 1; i > 0; i-- {
		var j int
		if d.rng != nil {
			j = d.rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		rest[i], rest[j] = rest[j], rest[i]
	}
}

// Deal removes and returns the first n remaining cards. If n exceeds the
// remaining count nothing is dealt and an *InsufficientCardsError is returned.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n < 0 {
		return nil, fmt.Errorf("deck: cannot deal %d cards", n)
	}
	if n > d.Len() {
		return nil, &InsufficientCardsError{Requested: n, Remaining: d.Len()}
	}
	cards := make([]Card, n)
	copy(cards, d.cards[d.next:d.next+n])
	d.next += n
	return cards, nil
}

// Draw removes and returns the top card, or false if the deck is empty
func (d *Deck) Draw() (Card, bool) {
	if d.next >= len(d.cards) {
		return Card{}, false
	}
	card := d.cards[d.next]
	d.next++
	return card, true
}

// Peek returns the top card without removing it from the deck
func (d *Deck) Peek() (Card, bool) {
	if d.next >= len(d.cards) {
		return Card{}, false
	}
	return d.cards[d.next], true
}

// Len returns the number of cards left in the deck
func (d *Deck) Len() int {
	return len(d.cards) - d.next
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return d.Len() == 0
}

// Remaining returns a copy of the undealt cards in their current order
func (d *Deck) Remaining() []Card {
	out := make([]Card, d.Len())
	copy(out, d.cards[d.next:])
	return out
}

// Dealt returns a copy of the cards dealt so far, in deal order
func (d *Deck) Dealt() []Card {
	out := make([]Card, d.next)
	copy(out, d.cards[:d.next])
	return out
}

// Cards returns a copy of all 52 cards in current order, dealt cards first
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards[:])
	return out
}
