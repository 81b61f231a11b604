package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Show key bindings",
	Long:  `Shows the keys bound to each action in the effective configuration.`,
	Args:  cobra.NoArgs,
	Run:   runKeys,
}

func runKeys(_ *cobra.Command, _ []string) {
	cfg, source, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ACTION", "KEYS")
	for _, a := range cfg.Keys.Actions() {
		t.Row(a.Name, tui.KeyLabel(a.Keys))
	}

	fmt.Println(t.Render())
	fmt.Printf("Bindings from %s\n", source)
}
