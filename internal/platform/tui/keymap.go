package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings for the metronome screen.
type KeyMap struct {
	Toggle     key.Binding
	Slower     key.Binding
	Faster     key.Binding
	SlowerStep key.Binding
	FasterStep key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Slower, k.Faster, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Help, k.Quit},
		{k.Slower, k.Faster},
		{k.SlowerStep, k.FasterStep},
	}
}

// DefaultKeyMap returns default key bindings. step is the coarse BPM jump.
func DefaultKeyMap(step int) KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "start/stop"),
		),
		Slower: key.NewBinding(
			key.WithKeys("left", "-", "h"),
			key.WithHelp("←/-", "slower"),
		),
		Faster: key.NewBinding(
			key.WithKeys("right", "+", "=", "l"),
			key.WithHelp("→/+", "faster"),
		),
		SlowerStep: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", stepHelp("-", step)),
		),
		FasterStep: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", stepHelp("+", step)),
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

func stepHelp(sign string, step int) string {
	return sign + strconv.Itoa(step) + " bpm"
}
