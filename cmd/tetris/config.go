package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Prints the configuration as YAML after applying the config file,
--difficulty and --level. The output can be saved and edited.

Search order: --config, ~/.tetris/tetris.yaml, ./configs/tetris.yaml,
then the built-in defaults.`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in defaults with comments")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagDefaults {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	cfg, source, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("# source: %s\n", source)
	os.Stdout.Write(data)
}
