package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings with built-in help text. Printable keys are
// left to the search field, so every binding here is a control or navigation key.
type KeyMap struct {
	ForceQuit key.Binding
	Clear     key.Binding
	Ratings   key.Binding
	Back      key.Binding
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Clear: key.NewBinding(
			key.WithKeys("escape", "esc"),
			key.WithHelp("esc", "clear search"),
		),
		Ratings: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "ratings"),
		),
		Back: key.NewBinding(
			key.WithKeys("tab", "shift+tab", "escape", "esc"),
			key.WithHelp("tab/esc", "back to search"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "pagedown"),
			key.WithHelp("pgdn", "page down"),
		),
	}
}

// ShortHelp implements help.KeyMap for the search page.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.PageDown, k.Ratings, k.Clear, k.ForceQuit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Ratings, k.Clear, k.ForceQuit},
	}
}

// ratingsHelp lists the bindings shown on the ratings page.
type ratingsHelp struct{ keys KeyMap }

func (r ratingsHelp) ShortHelp() []key.Binding {
	return []key.Binding{r.keys.Back, r.keys.ForceQuit}
}

func (r ratingsHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{r.ShortHelp()}
}
