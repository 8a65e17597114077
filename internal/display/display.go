// Package display renders cards, hands and sessions as terminal text.
// Hearts and diamonds are drawn in red.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/drawpoker/internal/deck"
	"github.com/lox/drawpoker/internal/hand"
	"github.com/lox/drawpoker/internal/session"
)

// CardsPerRow is the width of the deck grid
const CardsPerRow = deck.NumRanks

// Renderer formats game state with a fixed set of styles
type Renderer struct {
	styles Styles
}

// New creates a renderer writing styles for out
func New(out io.Writer, plain bool) *Renderer {
	return NewWithRenderer(NewLipglossRenderer(out, plain))
}

// NewWithRenderer creates a renderer on an existing lipgloss renderer
func NewWithRenderer(r *lipgloss.Renderer) *Renderer {
	return &Renderer{styles: NewStyles(r)}
}

// Styles returns the renderer's styles
func (r *Renderer) Styles() Styles {
	return r.styles
}

// Card renders a single card, red for hearts and diamonds
func (r *Renderer) Card(c deck.Card) string {
	if c.IsRed() {
		return r.styles.RedCard.Render(c.String())
	}
	return r.styles.BlackCard.Render(c.String())
}

// Cards renders cards separated by spaces
func (r *Renderer) Cards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = r.Card(c)
	}
	return strings.Join(parts, " ")
}

// Grid renders cards in rows of CardsPerRow
func (r *Renderer) Grid(cards []deck.Card) string {
	if len(cards) == 0 {
		return r.styles.Muted.Render("(empty)")
	}
	var rows []string
	for start := 0; start < len(cards); start += CardsPerRow {
		end := min(start+CardsPerRow, len(cards))
		rows = append(rows, r.Cards(cards[start:end]))
	}
	return strings.Join(rows, "\n")
}

// Hand renders one line for a hand: seat, cards, ranking and keepers
func (r *Renderer) Hand(v hand.View) string {
	var b strings.Builder
	b.WriteString(r.styles.Seat.Render(fmt.Sprintf("Player %d:", v.Seat+1)))
	b.WriteString(" ")
	b.WriteString(r.Cards(v.Cards))

	if v.Ranking != nil {
		b.WriteString("  ")
		b.WriteString(r.styles.Ranking.Render(v.Ranking.String()))
		if len(v.Keepers) > 0 && len(v.Discards) > 0 {
			b.WriteString(r.styles.Keepers.Render(" keep " + deck.FormatCards(v.Keepers)))
		}
	}
	if v.Short {
		b.WriteString(" ")
		b.WriteString(r.styles.Warning.Render(fmt.Sprintf("[short %d]", len(v.Cards))))
	}
	return b.String()
}

// Hands renders one line per hand
func (r *Renderer) Hands(views []hand.View) string {
	if len(views) == 0 {
		return r.styles.Muted.Render("(no hands dealt)")
	}
	lines := make([]string, len(views))
	for i, v := range views {
		lines[i] = r.Hand(v)
	}
	return strings.Join(lines, "\n")
}

// Draw describes a discard-and-replace cycle
func (r *Renderer) Draw(rep hand.DrawReport) string {
	seat := r.styles.Seat.Render(fmt.Sprintf("Player %d", rep.Seat+1))
	if len(rep.Discarded) == 0 {
		return seat + " stands pat"
	}

	s := fmt.Sprintf("%s discards %s, draws %s", seat, r.Cards(rep.Discarded), r.Cards(rep.Drawn))
	if len(rep.Drawn) == 0 {
		s = fmt.Sprintf("%s discards %s, draws nothing", seat, r.Cards(rep.Discarded))
	}
	if rep.Shortfall > 0 {
		s += " " + r.styles.Warning.Render(fmt.Sprintf("(deck empty, %d short)", rep.Shortfall))
	}
	return s
}

// Winners renders the winning seats
func (r *Renderer) Winners(seats []int, views []hand.View) string {
	if len(seats) == 0 {
		return ""
	}
	names := make([]string, len(seats))
	for i, seat := range seats {
		names[i] = fmt.Sprintf("Player %d", seat+1)
	}
	label := "Winner"
	if len(seats) > 1 {
		label = "Split"
	}
	s := fmt.Sprintf("%s: %s", label, strings.Join(names, ", "))
	if seats[0] < len(views) && views[seats[0]].Ranking != nil {
		s += " with " + views[seats[0]].Ranking.String()
	}
	return r.styles.Winner.Render(s)
}

// Header renders a section title
func (r *Renderer) Header(title string) string {
	return r.styles.Header.Render(title)
}

// Session renders the full state of a session: hands then remaining cards
func (r *Renderer) Session(s *session.Session) string {
	var b strings.Builder
	b.WriteString(r.Header(fmt.Sprintf("Session %s  seed %d", shortID(s.ID()), s.Seed())))
	b.WriteString("\n\n")
	b.WriteString(r.Hands(s.Hands()))
	b.WriteString("\n\n")
	b.WriteString(r.styles.Muted.Render(fmt.Sprintf("Remaining cards (%d):", len(s.RemainingCards()))))
	b.WriteString("\n")
	b.WriteString(r.Grid(s.RemainingCards()))
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
