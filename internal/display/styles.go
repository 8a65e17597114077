package display

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette colours shared by the text renderer and the interactive view
var (
	ColorRed    = lipgloss.Color("#FF6B6B")
	ColorBlack  = lipgloss.Color("#FAFAFA")
	ColorHeader = lipgloss.Color("#7D56F4")
	ColorGreen  = lipgloss.Color("#04B575")
	ColorMuted  = lipgloss.Color("#626262")
	ColorGold   = lipgloss.Color("#FFD700")
	ColorMint   = lipgloss.Color("#96CEB4")
	ColorWarn   = lipgloss.Color("#FFEAA7")
)

// Styles holds every style the renderer uses, bound to one lipgloss renderer
type Styles struct {
	Header    lipgloss.Style
	RedCard   lipgloss.Style
	BlackCard lipgloss.Style
	Seat      lipgloss.Style
	Ranking   lipgloss.Style
	Keepers   lipgloss.Style
	Muted     lipgloss.Style
	Warning   lipgloss.Style
	Winner    lipgloss.Style
}

// NewStyles builds the styles for r
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(ColorHeader).
			Bold(true).
			Padding(0, 1),
		RedCard:   r.NewStyle().Foreground(ColorRed).Bold(true),
		BlackCard: r.NewStyle().Foreground(ColorBlack).Bold(true),
		Seat:      r.NewStyle().Foreground(ColorMint).Bold(true),
		Ranking:   r.NewStyle().Foreground(ColorGold),
		Keepers:   r.NewStyle().Foreground(ColorMuted),
		Muted:     r.NewStyle().Foreground(ColorMuted),
		Warning:   r.NewStyle().Foreground(ColorWarn).Bold(true),
		Winner:    r.NewStyle().Foreground(ColorGreen).Bold(true),
	}
}

// NewLipglossRenderer returns a lipgloss renderer for out. When plain is set
// colour is disabled regardless of the terminal.
func NewLipglossRenderer(out io.Writer, plain bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(out)
	if plain {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}
