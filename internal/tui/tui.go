// Package tui is the interactive view of a draw poker table: the current
// deck, every player's hand and the cards left to draw.
package tui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/drawpoker/internal/display"
	"github.com/lox/drawpoker/internal/evaluator"
	"github.com/lox/drawpoker/internal/randutil"
	"github.com/lox/drawpoker/internal/session"
)

// Options configures the interactive view
type Options struct {
	Players int
	Seed    int64 // Seed of the first game; later deals derive from it
	Policy  evaluator.DrawPolicy
	Logger  *log.Logger
	Clock   quartz.Clock
	Plain   bool // Disable colour

	// OnFinish is called with each started session when it is replaced by a
	// new deal or the view quits
	OnFinish func(*session.Session)
}

// Model is the Bubble Tea model for the table
type Model struct {
	opts     Options
	logger   *log.Logger
	renderer *display.Renderer
	keys     keyMap
	help     help.Model

	session *session.Session
	seed    int64
	deals   int

	// UI components
	logViewport viewport.Model

	// State
	gameLog  []string
	status   string
	statusOK bool
	quitting bool

	// Dimensions
	width  int
	height int
}

// New creates the model with a fresh, undealt session
func New(opts Options) (*Model, error) {
	if opts.Players == 0 {
		opts.Players = session.DefaultPlayers
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = randutil.Seed()
	}

	// Scrolling is driven by keyMap; the viewport's own bindings clash with
	// the game keys
	vp := viewport.New(10, 5)
	vp.KeyMap = viewport.KeyMap{}
	vp.SetContent("")

	m := &Model{
		opts:        opts,
		logger:      opts.Logger.WithPrefix("tui"),
		renderer:    display.New(os.Stdout, opts.Plain),
		keys:        defaultKeyMap(),
		help:        help.New(),
		seed:        seed,
		logViewport: vp,
	}
	if err := m.newSession(); err != nil {
		return nil, err
	}
	m.setStatus("Press s to start, d to deal a new game", true)
	return m, nil
}

// Run starts the interactive program and blocks until it exits
func Run(m *Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(m, opts...).Run()
	return err
}

// Session returns the current session
func (m *Model) Session() *session.Session {
	return m.session
}

// Log returns the entries of the game log
func (m *Model) Log() []string {
	return append([]string(nil), m.gameLog...)
}

// Status returns the status line text
func (m *Model) Status() string {
	return m.status
}

// newSession replaces the current session with an undealt one
func (m *Model) newSession() error {
	s, err := session.New(session.Config{
		Players:  m.opts.Players,
		HandSize: session.DefaultHandSize,
		Seed:     randutil.Derive(m.seed, m.deals),
		Policy:   m.opts.Policy,
		Logger:   m.opts.Logger,
		Clock:    m.opts.Clock,
	})
	if err != nil {
		return err
	}
	m.finish()
	m.session = s
	m.deals++
	return nil
}

// finish hands a started session to OnFinish
func (m *Model) finish() {
	if m.session != nil && m.session.Started() && m.opts.OnFinish != nil {
		m.opts.OnFinish(m.session)
	}
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.finish()
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Start):
			m.start()
		case key.Matches(msg, m.keys.Deal):
			m.deal()
		case key.Matches(msg, m.keys.Shuffle):
			m.shuffle()
		case key.Matches(msg, m.keys.Discard):
			m.discard(seatForKey(msg.String()))
		case key.Matches(msg, m.keys.DrawAll):
			m.drawAll()
		case key.Matches(msg, m.keys.Winners):
			m.winners()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Up):
			m.logViewport.ScrollUp(1)
		case key.Matches(msg, m.keys.Down):
			m.logViewport.ScrollDown(1)
		}
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

func (m *Model) start() {
	if err := m.session.StartPlay(); err != nil {
		if errors.Is(err, session.ErrAlreadyStarted) {
			m.setStatus("Game already started, press d to deal again", false)
			return
		}
		m.fail(err)
		return
	}
	m.AddLogEntry(fmt.Sprintf("Dealt %d hands (seed %d)", m.session.Players(), m.session.Seed()))
	m.setStatus("Cards dealt, press 1-8 to discard", true)
}

func (m *Model) deal() {
	if err := m.newSession(); err != nil {
		m.fail(err)
		return
	}
	m.ClearLog()
	m.start()
}

func (m *Model) shuffle() {
	m.session.Shuffle()
	if m.session.Started() {
		m.AddLogEntry(fmt.Sprintf("Shuffled %d remaining cards", len(m.session.RemainingCards())))
	} else {
		m.AddLogEntry("Shuffled the deck")
	}
	m.setStatus("Deck shuffled", true)
}

func (m *Model) discard(seat int) {
	report, err := m.session.Draw(seat)
	if err != nil {
		m.fail(err)
		return
	}
	m.AddLogEntry(m.renderer.Draw(report))
	if report.Shortfall > 0 {
		m.setStatus(fmt.Sprintf("Deck ran out, player %d is %d short", seat+1, report.Shortfall), false)
		return
	}
	m.setStatus(fmt.Sprintf("Player %d drew %d", seat+1, len(report.Drawn)), true)
}

func (m *Model) drawAll() {
	reports, err := m.session.DrawAll()
	for _, r := range reports {
		m.AddLogEntry(m.renderer.Draw(r))
	}
	if err != nil {
		m.fail(err)
		return
	}
	m.setStatus("Every player has drawn", true)
}

func (m *Model) winners() {
	seats, err := m.session.Winners()
	if err != nil {
		m.fail(err)
		return
	}
	m.AddLogEntry(m.renderer.Winners(seats, m.session.Hands()))
}

func (m *Model) fail(err error) {
	switch {
	case errors.Is(err, session.ErrNotStarted):
		m.setStatus("No cards dealt yet, press s to start", false)
	case errors.Is(err, session.ErrSeatOutOfRange):
		m.setStatus(fmt.Sprintf("Only %d players at this table", m.session.Players()), false)
	default:
		m.logger.Error("Action failed", "error", err)
		m.setStatus(err.Error(), false)
	}
}

func (m *Model) setStatus(s string, ok bool) {
	m.status = s
	m.statusOK = ok
}

// AddLogEntry adds an entry to the game log and scrolls to it
func (m *Model) AddLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))

	// Only call GotoBottom if viewport has valid dimensions
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// ClearLog clears the game log
func (m *Model) ClearLog() {
	m.gameLog = nil
	m.logViewport.SetContent("")
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	// Don't render until we have valid dimensions
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	title := TitleStyle.Render(fmt.Sprintf("Five Card Draw  game %d  seed %d", m.deals, m.session.Seed()))

	halfWidth := max(m.width/2-4, 1)
	hands := m.pane("Players' Hands", m.renderer.Hands(m.session.Hands()), halfWidth)
	deckPane := m.pane("Current Deck", m.renderer.Grid(m.session.Deck()), halfWidth)
	topRow := lipgloss.JoinHorizontal(lipgloss.Top, hands, deckPane)

	remaining := m.session.RemainingCards()
	remainingPane := m.pane(fmt.Sprintf("Remaining Cards (%d)", len(remaining)),
		m.renderer.Grid(remaining), max(m.width-4, 1))

	status := StatusStyle.Render(m.status)
	if !m.statusOK {
		status = ErrorStyle.Render(m.status)
	}
	helpView := m.help.View(m.keys)

	used := lipgloss.Height(title) + lipgloss.Height(topRow) + lipgloss.Height(remainingPane) +
		lipgloss.Height(status) + lipgloss.Height(helpView) + 2
	m.logViewport.Width = max(m.width-4, 1)
	m.logViewport.Height = max(m.height-used-2, 1)
	logPane := PaneStyle.Width(max(m.width-2, 1)).Render(m.logViewport.View())

	return lipgloss.JoinVertical(lipgloss.Left, title, topRow, remainingPane, logPane, status, helpView)
}

func (m *Model) pane(title, body string, width int) string {
	content := PaneTitleStyle.Render(title) + "\n" + body
	return PaneStyle.Width(width).Render(content)
}
