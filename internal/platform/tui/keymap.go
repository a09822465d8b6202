package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/chronoshift/internal/core"
)

// KeyMap holds the key bindings shared by every screen.
// This centralizes key bindings and makes them testable.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Confirm key.Binding
	Back    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("up/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("down/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("left/a", "prev"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("right/d", "next"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Action translates a key message to a front-end action.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Up):
		return core.ActionUp
	case key.Matches(msg, k.Down):
		return core.ActionDown
	case key.Matches(msg, k.Left):
		return core.ActionLeft
	case key.Matches(msg, k.Right):
		return core.ActionRight
	case key.Matches(msg, k.Confirm):
		return core.ActionConfirm
	case key.Matches(msg, k.Back):
		return core.ActionBack
	case key.Matches(msg, k.Help):
		return core.ActionHelp
	}
	return core.ActionNone
}

// screenKeys is the help.KeyMap of a single screen.
type screenKeys struct {
	short []key.Binding
	full  [][]key.Binding
}

// ShortHelp implements help.KeyMap.
func (s screenKeys) ShortHelp() []key.Binding {
	return s.short
}

// FullHelp implements help.KeyMap.
func (s screenKeys) FullHelp() [][]key.Binding {
	return s.full
}

// helpFor returns the bindings worth showing on a screen.
func (k KeyMap) helpFor(sc screen) screenKeys {
	confirm := k.Confirm
	switch sc {
	case screenTitle:
		confirm.SetHelp("enter", "start")
		return screenKeys{
			short: []key.Binding{confirm, k.Quit},
			full:  [][]key.Binding{{confirm}, {k.Help, k.Quit}},
		}
	case screenLevels:
		confirm.SetHelp("enter", "play")
		return screenKeys{
			short: []key.Binding{k.Up, k.Down, confirm, k.Back, k.Help},
			full:  [][]key.Binding{{k.Up, k.Down, k.Left, k.Right}, {confirm, k.Back}, {k.Help, k.Quit}},
		}
	default:
		return screenKeys{
			short: []key.Binding{k.Back, k.Quit},
			full:  [][]key.Binding{{k.Back}, {k.Help, k.Quit}},
		}
	}
}
