package tetris

import "github.com/vovakirdan/tui-tetris/internal/config"

// SettingsFromConfig converts loaded configuration into session settings.
func SettingsFromConfig(cfg config.TetrisConfig, seed int64) Settings {
	s := DefaultSettings()
	s.LockDelay = cfg.Timing.LockDelay
	s.StartLevel = cfg.Gameplay.StartLevel
	s.LinesPerLevel = cfg.Gameplay.LinesPerLevel
	s.Preview = cfg.Gameplay.Preview
	s.Gravity.Base = cfg.Timing.GravityBase
	s.Gravity.Step = cfg.Timing.GravityStep
	s.Gravity.MaxLevel = cfg.Timing.MaxCurveLevel
	s.Seed = seed
	return s
}
