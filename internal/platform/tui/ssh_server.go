package tui

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/muesli/termenv"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.tetris/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// BindTimeout bounds how long Serve retries a busy address.
	BindTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown before connections are dropped.
	ShutdownTimeout time.Duration

	// Game configures every session's game.
	Game config.TetrisConfig

	// Logger receives server and session logs. Nil logs to stderr.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:         ":23234",
		IdleTimeout:     30 * time.Minute,
		BindTimeout:     10 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		Game:            config.DefaultTetrisConfig(),
	}
}

// SSHServer serves one independent game to each SSH session.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	logger *log.Logger

	mu   sync.Mutex
	addr net.Addr
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "tetris-ssh",
		})
	}

	srv := &SSHServer{
		config: cfg,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".tetris", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.MiddlewareWithColorProfile(srv.teaHandler, termenv.ANSI256),
			activeterm.Middleware(),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	srv.server = server
	return srv, nil
}

// teaHandler starts a game for the session. The game stops with the
// session's context.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	runner := tetris.NewRunner(tetris.RunnerConfig{
		Settings: tetris.SettingsFromConfig(s.config.Game, time.Now().UnixNano()),
		Logger:   s.logger.With("user", sess.User()),
	})
	go func() {
		if err := runner.Run(sess.Context()); err != nil {
			s.logger.Error("game stopped", "session", runner.ID(), "error", err)
		}
	}()

	model := NewModel(runner, s.config.Game, NewTheme(bubbletea.MakeRenderer(sess)))
	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithReportFocus(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Millisecond),
		)
	}
}

// listen binds the configured address, retrying while it is busy.
func (s *SSHServer) listen(ctx context.Context) (net.Listener, error) {
	exp := &backoff.ExponentialBackOff{
		InitialInterval:     100 * time.Millisecond,
		RandomizationFactor: 0.1,
		Multiplier:          1.5,
		MaxInterval:         2 * time.Second,
	}
	l, err := backoff.Retry(ctx, func() (net.Listener, error) {
		return net.Listen("tcp", s.config.Address)
	},
		backoff.WithBackOff(exp),
		backoff.WithMaxElapsedTime(s.config.BindTimeout),
		backoff.WithNotify(func(err error, d time.Duration) {
			s.logger.Warn("listen", "address", s.config.Address, "error", err, "retrying", d)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot listen on %s: %w", s.config.Address, err)
	}

	s.mu.Lock()
	s.addr = l.Addr()
	s.mu.Unlock()
	return l, nil
}

// Serve listens and serves sessions until ctx is cancelled, then shuts
// down gracefully.
func (s *SSHServer) Serve(ctx context.Context) error {
	l, err := s.listen(ctx)
	if err != nil {
		return err
	}
	s.logger.Info("starting SSH server", "address", l.Addr().String())

	grp, grpCtx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		if err := s.server.Serve(l); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return err
		}
		return nil
	})
	grp.Go(func() error {
		<-grpCtx.Done()
		s.logger.Info("shutting down...")
		return s.Shutdown()
	})
	return grp.Wait()
}

// Shutdown gracefully stops the server, dropping connections that outlive
// the shutdown timeout.
func (s *SSHServer) Shutdown() error {
	timeout := s.config.ShutdownTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		if errors.Is(err, context.DeadlineExceeded) {
			return s.server.Close()
		}
		return err
	}
	return nil
}

// Addr returns the bound address once Serve is listening, or nil.
func (s *SSHServer) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}
