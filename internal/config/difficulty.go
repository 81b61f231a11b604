package config

import "fmt"

// DifficultyPreset represents a named starting difficulty.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyMaster DifficultyPreset = "master"
)

// Presets lists the presets in increasing difficulty.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyMaster}
}

// StartLevelForPreset returns the starting level for a preset.
func StartLevelForPreset(preset DifficultyPreset) (int, error) {
	switch preset {
	case DifficultyEasy:
		return 1, nil
	case DifficultyNormal:
		return 5, nil
	case DifficultyHard:
		return 10, nil
	case DifficultyMaster:
		return 15, nil
	default:
		return 0, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidConfig, preset)
	}
}

// ApplyPreset sets the starting level from a preset. An empty preset leaves
// the configuration unchanged.
func ApplyPreset(cfg *TetrisConfig, preset DifficultyPreset) error {
	if preset == "" {
		return nil
	}
	level, err := StartLevelForPreset(preset)
	if err != nil {
		return err
	}
	cfg.Gameplay.StartLevel = level
	if preset == DifficultyMaster {
		cfg.Display.ShowGhost = false
	}
	return nil
}
