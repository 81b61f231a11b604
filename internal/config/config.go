// Package config provides YAML-based configuration loading for the game:
// timing, gameplay rules, display and key bindings.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// TetrisConfig contains all configuration for a game session.
type TetrisConfig struct {
	Timing   TetrisTiming   `yaml:"timing"`
	Gameplay TetrisGameplay `yaml:"gameplay"`
	Display  TetrisDisplay  `yaml:"display"`
	Keys     KeyBindings    `yaml:"keys"`
}

// TetrisTiming defines lock delay and the gravity curve
// (base - (level-1)*step)^(level-1) seconds.
type TetrisTiming struct {
	LockDelay     time.Duration `yaml:"lock_delay"`
	GravityBase   float64       `yaml:"gravity_base"`
	GravityStep   float64       `yaml:"gravity_step"`
	MaxCurveLevel int           `yaml:"max_curve_level"`
}

// TetrisGameplay defines progression and preview parameters.
type TetrisGameplay struct {
	StartLevel    int `yaml:"start_level"`
	LinesPerLevel int `yaml:"lines_per_level"` // Level advances every lines_per_level * level lines
	Preview       int `yaml:"preview"`         // Number of upcoming pieces shown
}

// TetrisDisplay defines front end parameters.
type TetrisDisplay struct {
	FrameRate   int  `yaml:"frame_rate"`
	ShowGhost   bool `yaml:"show_ghost"`
	ShowStats   bool `yaml:"show_stats"`
	PauseOnBlur bool `yaml:"pause_on_blur"`
}

// KeyBindings lists the keys bound to each action, in Bubble Tea key names.
type KeyBindings struct {
	RotateLeft  []string `yaml:"rotate_left"`
	RotateRight []string `yaml:"rotate_right"`
	MoveLeft    []string `yaml:"move_left"`
	MoveRight   []string `yaml:"move_right"`
	SoftDrop    []string `yaml:"soft_drop"`
	HardDrop    []string `yaml:"hard_drop"`
	Hold        []string `yaml:"hold"`
	Pause       []string `yaml:"pause"`
	Restart     []string `yaml:"restart"`
	Help        []string `yaml:"help"`
	Quit        []string `yaml:"quit"`
}

// Actions returns the bindings keyed by action name, in display order.
func (k KeyBindings) Actions() []KeyAction {
	return []KeyAction{
		{"rotate_left", k.RotateLeft},
		{"rotate_right", k.RotateRight},
		{"move_left", k.MoveLeft},
		{"move_right", k.MoveRight},
		{"soft_drop", k.SoftDrop},
		{"hard_drop", k.HardDrop},
		{"hold", k.Hold},
		{"pause", k.Pause},
		{"restart", k.Restart},
		{"help", k.Help},
		{"quit", k.Quit},
	}
}

// KeyAction pairs an action name with its keys.
type KeyAction struct {
	Name string
	Keys []string
}

// Validate checks that the configuration can drive a session.
func (c TetrisConfig) Validate() error {
	var errs []error
	if c.Timing.LockDelay <= 0 {
		errs = append(errs, fmt.Errorf("%w: timing.lock_delay must be positive, got %s", ErrInvalidConfig, c.Timing.LockDelay))
	}
	if c.Timing.GravityBase <= 0 || c.Timing.GravityBase > 1 {
		errs = append(errs, fmt.Errorf("%w: timing.gravity_base must be in (0, 1], got %g", ErrInvalidConfig, c.Timing.GravityBase))
	}
	if c.Timing.GravityStep < 0 {
		errs = append(errs, fmt.Errorf("%w: timing.gravity_step must not be negative, got %g", ErrInvalidConfig, c.Timing.GravityStep))
	}
	if c.Timing.MaxCurveLevel < 1 {
		errs = append(errs, fmt.Errorf("%w: timing.max_curve_level must be at least 1, got %d", ErrInvalidConfig, c.Timing.MaxCurveLevel))
	} else if c.Timing.GravityBase-float64(c.Timing.MaxCurveLevel-1)*c.Timing.GravityStep <= 0 {
		errs = append(errs, fmt.Errorf("%w: gravity curve reaches zero before level %d", ErrInvalidConfig, c.Timing.MaxCurveLevel))
	}
	if c.Gameplay.StartLevel < 1 {
		errs = append(errs, fmt.Errorf("%w: gameplay.start_level must be at least 1, got %d", ErrInvalidConfig, c.Gameplay.StartLevel))
	}
	if c.Gameplay.LinesPerLevel < 1 {
		errs = append(errs, fmt.Errorf("%w: gameplay.lines_per_level must be at least 1, got %d", ErrInvalidConfig, c.Gameplay.LinesPerLevel))
	}
	if c.Gameplay.Preview < 1 || c.Gameplay.Preview > 5 {
		errs = append(errs, fmt.Errorf("%w: gameplay.preview must be between 1 and 5, got %d", ErrInvalidConfig, c.Gameplay.Preview))
	}
	if c.Display.FrameRate < 1 || c.Display.FrameRate > 120 {
		errs = append(errs, fmt.Errorf("%w: display.frame_rate must be between 1 and 120, got %d", ErrInvalidConfig, c.Display.FrameRate))
	}

	owner := make(map[string]string)
	for _, a := range c.Keys.Actions() {
		if len(a.Keys) == 0 {
			errs = append(errs, fmt.Errorf("%w: keys.%s has no keys", ErrInvalidConfig, a.Name))
		}
		for _, key := range a.Keys {
			if prev, ok := owner[key]; ok {
				errs = append(errs, fmt.Errorf("%w: key %q bound to both %s and %s", ErrInvalidConfig, key, prev, a.Name))
				continue
			}
			owner[key] = a.Name
		}
	}
	return errors.Join(errs...)
}
