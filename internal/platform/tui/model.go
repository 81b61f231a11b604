package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

// Engine is the game as the front end sees it. *tetris.Runner implements it.
type Engine interface {
	Send(cmd tetris.Command) bool
	FocusLost() bool
	Restart() bool
	Subscribe() (<-chan tetris.Snapshot, func())
}

// snapshotMsg delivers a new snapshot from the engine.
type snapshotMsg tetris.Snapshot

// engineStoppedMsg reports that the engine closed its snapshot stream.
type engineStoppedMsg struct{}

// Model is the Bubble Tea model for one game. It only forwards input and
// draws snapshots; the engine owns all game state.
type Model struct {
	engine      Engine
	updates     <-chan tetris.Snapshot
	unsubscribe func()

	snap    tetris.Snapshot
	keys    KeyMap
	help    help.Model
	theme   *Theme
	screen  *core.Screen
	display config.TetrisDisplay
	banner  *overlay.Model
	now     func() time.Time

	width, height int
	quitting      bool
}

// NewModel creates a model subscribed to engine. A nil theme uses the
// default renderer.
func NewModel(engine Engine, cfg config.TetrisConfig, theme *Theme) Model {
	if theme == nil {
		theme = NewTheme(nil)
	}
	updates, unsubscribe := engine.Subscribe()
	w, h := canvasSize(cfg.Gameplay.Preview)
	return Model{
		engine:      engine,
		updates:     updates,
		unsubscribe: unsubscribe,
		keys:        NewKeyMap(cfg.Keys),
		help:        help.New(),
		theme:       theme,
		screen:      core.NewScreen(w, h),
		display:     cfg.Display,
		banner:      overlay.New(nil, nil, overlay.Center, overlay.Center, 0, 0),
		now:         time.Now,
	}
}

// waitForSnapshot blocks on the next snapshot from the engine.
func waitForSnapshot(updates <-chan tetris.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-updates
		if !ok {
			return engineStoppedMsg{}
		}
		return snapshotMsg(snap)
	}
}

// Init starts listening for snapshots and the redraw loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForSnapshot(m.updates), frameCmd(m.display.FrameRate))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.snap = tetris.Snapshot(msg)
		m.screen.Resize(canvasSize(len(m.snap.Next)))
		return m, waitForSnapshot(m.updates)

	case engineStoppedMsg:
		m.quitting = true
		return m, tea.Quit

	case FrameMsg:
		return m, frameCmd(m.display.FrameRate)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.BlurMsg:
		if m.display.PauseOnBlur {
			m.engine.FocusLost()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.unsubscribe()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Restart):
		if m.snap.Over {
			m.engine.Restart()
		}
		return m, nil
	}

	if cmd, ok := m.keys.Command(msg); ok {
		m.engine.Send(cmd)
	}
	return m, nil
}

// Snapshot returns the last snapshot received from the engine.
func (m Model) Snapshot() tetris.Snapshot {
	return m.snap
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	DrawGame(m.screen, m.snap, m.now(), ViewOptions{
		ShowGhost: m.display.ShowGhost,
		ShowStats: m.display.ShowStats,
	})
	body := RenderScreen(m.theme, m.screen)

	if text := bannerText(m.snap, m.keys.Restart.Help().Key); text != "" {
		m.banner.Foreground = textModel(m.theme.Banner.Render(text))
		m.banner.Background = textModel(body)
		body = m.banner.View()
	}

	content := lipgloss.JoinVertical(lipgloss.Left, body, m.help.View(m.keys))
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// Run drives engine from the local terminal until the player quits or ctx
// is cancelled.
func Run(ctx context.Context, engine Engine, cfg config.TetrisConfig) error {
	p := tea.NewProgram(
		NewModel(engine, cfg, nil),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithReportFocus(),
	)

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
