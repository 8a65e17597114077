// Package history records a session as a TOML transcript: the deal, every
// draw and the final hands.
package history

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lox/drawpoker/internal/deck"
	"github.com/lox/drawpoker/internal/evaluator"
	"github.com/lox/drawpoker/internal/session"
)

// Variant identifies the game in a transcript
const Variant = "five-card-draw"

// Transcript is one session in TOML form. Cards are written as two
// character codes ("As", "Td").
type Transcript struct {
	Variant   string    `toml:"variant"`
	SessionID string    `toml:"session"`
	Seed      int64     `toml:"seed"`
	Players   int       `toml:"players"`
	Policy    string    `toml:"policy"`
	Started   time.Time `toml:"started"`
	Remaining []string  `toml:"remaining"`
	Muck      []string  `toml:"muck"`
	Winners   []int     `toml:"winners,omitempty"`
	Seats     []Seat    `toml:"seat"`
}

// Seat is one player's part of the transcript. Seats are numbered from 1.
type Seat struct {
	Seat      int      `toml:"seat"`
	Dealt     []string `toml:"dealt"`
	Opening   string   `toml:"opening"`
	Discarded []string `toml:"discarded"`
	Drawn     []string `toml:"drawn"`
	Shortfall int      `toml:"shortfall,omitempty"`
	Final     []string `toml:"final"`
	Ranking   string   `toml:"ranking"`
}

// Begin starts a transcript from the deal of a started session. The
// opening hands are those dealt by StartPlay, even if players have drawn.
func Begin(s *session.Session) (*Transcript, error) {
	if !s.Started() {
		return nil, session.ErrNotStarted
	}

	t := &Transcript{
		Variant:   Variant,
		SessionID: s.ID(),
		Seed:      s.Seed(),
		Players:   s.Players(),
		Policy:    fmt.Sprint(s.Policy()),
		Started:   s.StartedAt().UTC(),
	}
	for seat := 0; seat < s.Players(); seat++ {
		dealt, err := s.DealtCards(seat)
		if err != nil {
			return nil, err
		}
		r, err := evaluator.Classify(dealt)
		if err != nil {
			return nil, fmt.Errorf("seat %d: %w", seat+1, err)
		}
		t.Seats = append(t.Seats, Seat{
			Seat:    seat + 1,
			Dealt:   codes(dealt),
			Opening: r.String(),
		})
	}
	return t, nil
}

// Finish records the draws and final state of the session. Call it once,
// after the last draw.
func (t *Transcript) Finish(s *session.Session) error {
	if len(t.Seats) != s.Players() {
		return fmt.Errorf("history: transcript has %d seats, session has %d", len(t.Seats), s.Players())
	}

	for _, rep := range s.Draws() {
		seat := &t.Seats[rep.Seat]
		seat.Discarded = append(seat.Discarded, codes(rep.Discarded)...)
		seat.Drawn = append(seat.Drawn, codes(rep.Drawn)...)
		seat.Shortfall += rep.Shortfall
	}

	winners, err := s.Winners()
	if err != nil {
		return err
	}
	for _, w := range winners {
		t.Winners = append(t.Winners, w+1)
	}

	for _, v := range s.Hands() {
		seat := &t.Seats[v.Seat]
		seat.Final = codes(v.Cards)
		if v.Ranking != nil {
			seat.Ranking = v.Ranking.String()
		}
	}
	t.Remaining = codes(s.RemainingCards())
	t.Muck = codes(s.Muck())
	return nil
}

// Encode writes the transcript as TOML
func Encode(w io.Writer, t *Transcript) error {
	if t == nil {
		return fmt.Errorf("history: nil transcript")
	}
	return toml.NewEncoder(w).Encode(t)
}

// EncodeToBytes returns the TOML encoding of the transcript
func EncodeToBytes(t *Transcript) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads a transcript
func Decode(r io.Reader) (*Transcript, error) {
	var t Transcript
	if _, err := toml.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("history: decode: %w", err)
	}
	return &t, nil
}

// Cards parses a list of card codes back into cards
func Cards(codes []string) ([]deck.Card, error) {
	cards := make([]deck.Card, 0, len(codes))
	for _, code := range codes {
		c, err := deck.ParseCard(code)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

func codes(cards []deck.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Code()
	}
	return out
}
