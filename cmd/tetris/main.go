// tetris is a guideline falling-block game for the terminal.
//
// Usage:
//
//	tetris play              - Play in this terminal
//	tetris serve             - Start SSH server for remote play
//	tetris keys              - Show key bindings
//	tetris config            - Print the effective configuration
//
// Global flags:
//
//	--config <path>        - Path to a config YAML
//	--difficulty <preset>  - Starting difficulty: easy, normal, hard, master
//	--level <n>            - Starting level (overrides --difficulty)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
)

var (
	// Global flags
	flagConfig     string
	flagDifficulty string
	flagLevel      int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Falling blocks in your terminal",
	Long: `A guideline falling-block game with SRS rotation, hold, a 7-bag
randomizer and lock delay, playable locally or over SSH.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  keys     - Show key bindings
  config   - Print the effective configuration

Examples:
  tetris play
  tetris play --difficulty hard
  tetris serve --ssh :2222
  tetris config > ~/.tetris/tetris.yaml`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, master")
	rootCmd.PersistentFlags().IntVar(&flagLevel, "level", 0, "Starting level (0 = from config or difficulty)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig resolves the configuration from the global flags.
func loadConfig() (config.TetrisConfig, string, error) {
	cfg, source, err := config.LoadWithSource(flagConfig)
	if err != nil {
		return cfg, source, err
	}
	if err := config.ApplyPreset(&cfg, config.DifficultyPreset(flagDifficulty)); err != nil {
		return cfg, source, err
	}
	if flagLevel != 0 {
		cfg.Gameplay.StartLevel = flagLevel
	}
	return cfg, source, cfg.Validate()
}
