package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

// KeyMap holds the bindings for every player action.
// It implements help.KeyMap.
type KeyMap struct {
	RotateLeft  key.Binding
	RotateRight key.Binding
	MoveLeft    key.Binding
	MoveRight   key.Binding
	SoftDrop    key.Binding
	HardDrop    key.Binding
	Hold        key.Binding
	Pause       key.Binding
	Restart     key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// NewKeyMap builds a KeyMap from configured key names.
func NewKeyMap(k config.KeyBindings) KeyMap {
	return KeyMap{
		RotateLeft:  binding(k.RotateLeft, "rotate ccw"),
		RotateRight: binding(k.RotateRight, "rotate cw"),
		MoveLeft:    binding(k.MoveLeft, "left"),
		MoveRight:   binding(k.MoveRight, "right"),
		SoftDrop:    binding(k.SoftDrop, "soft drop"),
		HardDrop:    binding(k.HardDrop, "hard drop"),
		Hold:        binding(k.Hold, "hold"),
		Pause:       binding(k.Pause, "pause"),
		Restart:     binding(k.Restart, "restart"),
		Help:        binding(k.Help, "help"),
		Quit:        binding(k.Quit, "quit"),
	}
}

func binding(keys []string, desc string) key.Binding {
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(KeyLabel(keys), desc),
	)
}

// KeyLabel formats key names for display, spelling out the space bar.
func KeyLabel(keys []string) string {
	labels := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == " " {
			k = "space"
		}
		labels = append(labels, k)
	}
	return strings.Join(labels, "/")
}

// ShortHelp returns bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.MoveLeft, k.MoveRight, k.RotateRight, k.HardDrop, k.Pause, k.Help, k.Quit}
}

// FullHelp returns bindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.MoveLeft, k.MoveRight, k.SoftDrop, k.HardDrop},
		{k.RotateLeft, k.RotateRight, k.Hold},
		{k.Pause, k.Restart, k.Help, k.Quit},
	}
}

// Command maps a key press to a game command.
func (k KeyMap) Command(msg tea.KeyMsg) (tetris.Command, bool) {
	switch {
	case key.Matches(msg, k.RotateLeft):
		return tetris.RotateLeft, true
	case key.Matches(msg, k.RotateRight):
		return tetris.RotateRight, true
	case key.Matches(msg, k.MoveLeft):
		return tetris.MoveLeft, true
	case key.Matches(msg, k.MoveRight):
		return tetris.MoveRight, true
	case key.Matches(msg, k.SoftDrop):
		return tetris.SoftDrop, true
	case key.Matches(msg, k.HardDrop):
		return tetris.HardDrop, true
	case key.Matches(msg, k.Hold):
		return tetris.Hold, true
	case key.Matches(msg, k.Pause):
		return tetris.TogglePause, true
	}
	return 0, false
}
