package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultTetrisYAML
}

// DefaultTetrisConfig returns the built-in configuration used when no YAML
// source can be read.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Timing: TetrisTiming{
			LockDelay:     500 * time.Millisecond,
			GravityBase:   0.8,
			GravityStep:   0.007,
			MaxCurveLevel: 20,
		},
		Gameplay: TetrisGameplay{
			StartLevel:    1,
			LinesPerLevel: 5,
			Preview:       5,
		},
		Display: TetrisDisplay{
			FrameRate:   30,
			ShowGhost:   true,
			ShowStats:   true,
			PauseOnBlur: true,
		},
		Keys: KeyBindings{
			RotateLeft:  []string{"z", "ctrl+z"},
			RotateRight: []string{"x", "up"},
			MoveLeft:    []string{"left"},
			MoveRight:   []string{"right"},
			SoftDrop:    []string{"down"},
			HardDrop:    []string{" "},
			Hold:        []string{"c", "shift+tab"},
			Pause:       []string{"esc", "p", "f1"},
			Restart:     []string{"r"},
			Help:        []string{"?"},
			Quit:        []string{"q", "ctrl+c"},
		},
	}
}
