package lineviewport

import "charm.land/bubbles/v2/key"

// KeyMap defines the keybindings for the viewport.
//
// Note that you don't necessarily need to use keybindings at all; the
// viewport can be controlled programmatically with methods like
// [Model.ScrollDown] and [Model.ScrollUp].
//
// Use [DefaultKeyMap] to get a set of default keybindings.
type KeyMap struct {
	// PageDown scrolls down by one page.
	PageDown key.Binding
	// PageUp scrolls up by one page.
	PageUp key.Binding
	// HalfPageUp scrolls up by half a page.
	HalfPageUp key.Binding
	// HalfPageDown scrolls down by half a page.
	HalfPageDown key.Binding
	// Down scrolls down by one line.
	Down key.Binding
	// Up scrolls up by one line.
	Up key.Binding
	// GotoTop jumps to the first output line.
	GotoTop key.Binding
	// GotoBottom jumps to the last output line.
	GotoBottom key.Binding
}

// DefaultKeyMap returns a new [KeyMap] with pager-like default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "space", "f"),
			key.WithHelp("f/pgdn", "page down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "b"),
			key.WithHelp("b/pgup", "page up"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("u", "ctrl+u"),
			key.WithHelp("u", "½ page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("d", "ctrl+d"),
			key.WithHelp("d", "½ page down"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		GotoTop: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g/home", "go to top"),
		),
		GotoBottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G/end", "go to bottom"),
		),
	}
}
