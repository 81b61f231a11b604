package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads the game configuration.
// Search order: customPath -> ~/.tetris/tetris.yaml -> ./configs/tetris.yaml -> embedded default
//
// Files are decoded over the defaults, so a file only needs the keys it
// changes. An explicit customPath must exist and parse; the other locations
// are skipped when missing or broken. The result is validated.
func Load(customPath string) (TetrisConfig, error) {
	cfg, _, err := LoadWithSource(customPath)
	return cfg, err
}

// LoadWithSource is Load that also reports where the configuration came from.
func LoadWithSource(customPath string) (TetrisConfig, string, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return TetrisConfig{}, "", fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return TetrisConfig{}, "", fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	for _, path := range searchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := Parse(data); err == nil {
			return cfg, path, nil
		}
	}

	if cfg, err := Parse(defaultTetrisYAML); err == nil {
		return cfg, "embedded", nil
	}
	return DefaultTetrisConfig(), "builtin", nil
}

// Parse decodes YAML over the built-in defaults and validates the result.
func Parse(data []byte) (TetrisConfig, error) {
	cfg := DefaultTetrisConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return TetrisConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return TetrisConfig{}, err
	}
	return cfg, nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg TetrisConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

func searchPaths() []string {
	var paths []string
	if p := userConfigPath("tetris.yaml"); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", "tetris.yaml"))
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tetris", filename)
}
