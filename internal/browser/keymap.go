package browser

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings the navigator dispatches on.
type KeyMap struct {
	Left  key.Binding
	Down  key.Binding
	Up    key.Binding
	Right key.Binding
	Open  key.Binding
	Quit  key.Binding
	// Exit leaves the browser from any depth. It is not configurable.
	Exit key.Binding
}

// Bindings lists key names per action. An empty list keeps the default.
type Bindings struct {
	Quit  []string
	Left  []string
	Down  []string
	Up    []string
	Right []string
	Open  []string
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("←/h", "left"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("→/l", "right"),
		),
		Open: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "open"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "back/quit"),
		),
		Exit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "exit"),
		),
	}
}

// NewKeyMap returns the default key map with b applied on top.
func NewKeyMap(b Bindings) KeyMap {
	k := DefaultKeyMap()
	override(&k.Quit, b.Quit, "back/quit")
	override(&k.Left, b.Left, "left")
	override(&k.Down, b.Down, "down")
	override(&k.Up, b.Up, "up")
	override(&k.Right, b.Right, "right")
	override(&k.Open, b.Open, "open")
	return k
}

func override(b *key.Binding, keys []string, desc string) {
	if len(keys) == 0 {
		return
	}
	*b = key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(strings.Join(keys, "/"), desc),
	)
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Down, k.Up, k.Right, k.Open, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Down, k.Up, k.Right},
		{k.Open, k.Quit, k.Exit},
	}
}
