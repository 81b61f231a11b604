package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
)

var (
	flagSeed    int64
	flagLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in the current terminal.

Default controls:
  Left/Right   - Move
  Down         - Soft drop
  Space        - Hard drop
  Z / X, Up    - Rotate counter-clockwise / clockwise
  C            - Hold
  P/Esc        - Pause
  R            - Restart (after game over)
  ?            - Help
  Q/Ctrl+C     - Quit

Run 'tetris keys' for the active bindings.

Examples:
  tetris play
  tetris play --level 10
  tetris play --seed 42 --log ./tetris.log`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	playCmd.Flags().StringVar(&flagLogFile, "log", "", "Write logs to this file")
}

func runPlay(_ *cobra.Command, _ []string) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: play needs an interactive terminal; try 'tetris serve'")
		os.Exit(1)
	}

	cfg, source, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := openLog(flagLogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	logger.Info("config loaded", "source", source)

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	runner := tetris.NewRunner(tetris.RunnerConfig{
		Settings: tetris.SettingsFromConfig(cfg, seed),
		Logger:   logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	grp, grpCtx := errgroup.WithContext(ctx)
	gameCtx, stopGame := context.WithCancel(grpCtx)
	grp.Go(func() error {
		return runner.Run(gameCtx)
	})
	grp.Go(func() error {
		defer stopGame()
		return tui.Run(grpCtx, runner, cfg)
	})

	if err := grp.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		closeLog()
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

// openLog returns a logger writing to path, or a discarding logger when path
// is empty. The terminal belongs to the game while it runs.
func openLog(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, err
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "tetris",
		Level:           log.DebugLevel,
	})
	return logger, func() { _ = f.Close() }, nil
}
