package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Up        key.Binding
	Down      key.Binding
	Open      key.Binding
	NextPane  key.Binding
	PrevPane  key.Binding
	Collapse  key.Binding
	Enter     key.Binding
	Escape    key.Binding
	Filter    key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
	Help      key.Binding

	// Watched list
	Add       key.Binding
	Delete    key.Binding
	Rate      key.Binding
	ClearRate key.Binding
	OpenIMDb  key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("l", "right", "o", " "),
			key.WithHelp("l/→", "open/close movie"),
		),
		NextPane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next pane"),
		),
		PrevPane: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "previous pane"),
		),
		Collapse: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "collapse pane"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "new search"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close movie"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter list"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Add: key.NewBinding(
			key.WithKeys("a", "+"),
			key.WithHelp("a", "add to list"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "remove from list"),
		),
		Rate: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9", "0"),
			key.WithHelp("1-0", "rate"),
		),
		ClearRate: key.NewBinding(
			key.WithKeys("-", "backspace"),
			key.WithHelp("-", "clear rating"),
		),
		OpenIMDb: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "open on IMDb"),
		),
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()

// starsForKey maps a digit key to a star count; "0" means ten
func starsForKey(k string) int {
	if len(k) != 1 || k[0] < '0' || k[0] > '9' {
		return 0
	}
	if k == "0" {
		return 10
	}
	return int(k[0] - '0')
}
