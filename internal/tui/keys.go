package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the bindings of the interactive view
type keyMap struct {
	Start   key.Binding
	Deal    key.Binding
	Shuffle key.Binding
	Discard key.Binding
	DrawAll key.Binding
	Winners key.Binding
	Up      key.Binding
	Down    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Start: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "start"),
		),
		Deal: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "deal new game"),
		),
		Shuffle: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "shuffle deck"),
		),
		Discard: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9", "0"),
			key.WithHelp("1-8", "discard for player"),
		),
		DrawAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "discard for all"),
		),
		Winners: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "winners"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Deal, k.Shuffle, k.Discard, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Deal, k.Shuffle},
		{k.Discard, k.DrawAll, k.Winners},
		{k.Up, k.Down, k.Help, k.Quit},
	}
}

// seatForKey maps "1".."9" to seats 0..8 and "0" to seat 9
func seatForKey(s string) int {
	if s == "0" {
		return 9
	}
	return int(s[0] - '1')
}
