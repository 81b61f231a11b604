package tui

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

type fakeEngine struct {
	mu           sync.Mutex
	sent         []tetris.Command
	focusLost    int
	restarts     int
	unsubscribed bool
	updates      chan tetris.Snapshot
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{updates: make(chan tetris.Snapshot, 1)}
}

func (f *fakeEngine) Send(cmd tetris.Command) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, cmd)
	return true
}

func (f *fakeEngine) FocusLost() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.focusLost++
	return true
}

func (f *fakeEngine) Restart() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.restarts++
	return true
}

func (f *fakeEngine) Subscribe() (<-chan tetris.Snapshot, func()) {
	return f.updates, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.unsubscribed = true
	}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModelForwardsCommands(t *testing.T) {
	eng := newFakeEngine()
	m := NewModel(eng, config.DefaultTetrisConfig(), nil)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	_, _ = update(t, m, runeKey('a'))

	assert.Equal(t, []tetris.Command{tetris.MoveLeft, tetris.HardDrop}, eng.sent)
}

func TestModelRestartOnlyWhenOver(t *testing.T) {
	eng := newFakeEngine()
	m := NewModel(eng, config.DefaultTetrisConfig(), nil)

	m, _ = update(t, m, runeKey('r'))
	assert.Zero(t, eng.restarts)

	snap := testSnapshot()
	snap.Over = true
	m, _ = update(t, m, snapshotMsg(snap))
	_, _ = update(t, m, runeKey('r'))
	assert.Equal(t, 1, eng.restarts)
	assert.Empty(t, eng.sent, "restart is not a game command")
}

func TestModelBlurPausesWhenConfigured(t *testing.T) {
	cfg := config.DefaultTetrisConfig()
	cfg.Display.PauseOnBlur = true
	eng := newFakeEngine()
	m := NewModel(eng, cfg, nil)
	_, _ = update(t, m, tea.BlurMsg{})
	assert.Equal(t, 1, eng.focusLost)

	cfg.Display.PauseOnBlur = false
	eng = newFakeEngine()
	m = NewModel(eng, cfg, nil)
	_, _ = update(t, m, tea.BlurMsg{})
	assert.Zero(t, eng.focusLost)
}

func TestModelQuitUnsubscribes(t *testing.T) {
	eng := newFakeEngine()
	m := NewModel(eng, config.DefaultTetrisConfig(), nil)

	m, cmd := update(t, m, runeKey('q'))
	assert.True(t, isQuit(cmd))
	assert.True(t, eng.unsubscribed)
	assert.Empty(t, m.View())
}

func TestModelHelpToggle(t *testing.T) {
	m := NewModel(newFakeEngine(), config.DefaultTetrisConfig(), nil)
	short := m.View()

	m, _ = update(t, m, runeKey('?'))
	full := m.View()
	assert.Contains(t, full, "rotate ccw")
	assert.NotEqual(t, short, full)
}

func TestModelSnapshotStream(t *testing.T) {
	eng := newFakeEngine()
	m := NewModel(eng, config.DefaultTetrisConfig(), nil)

	snap := testSnapshot()
	eng.updates <- snap
	msg := waitForSnapshot(m.updates)()
	require.IsType(t, snapshotMsg{}, msg)

	m, cmd := update(t, m, msg)
	assert.NotNil(t, cmd, "keeps listening")
	assert.Equal(t, 1200, m.Snapshot().Score)

	close(eng.updates)
	msg = waitForSnapshot(m.updates)()
	assert.Equal(t, engineStoppedMsg{}, msg)
	m, cmd = update(t, m, msg)
	assert.True(t, isQuit(cmd))
	assert.Empty(t, m.View())
}

func TestModelViewBanner(t *testing.T) {
	m := NewModel(newFakeEngine(), config.DefaultTetrisConfig(), nil)
	m.now = func() time.Time { return time.Unix(0, 0) }

	snap := testSnapshot()
	m, _ = update(t, m, snapshotMsg(snap))
	assert.NotContains(t, m.View(), "PAUSED")

	snap.Paused = true
	m, _ = update(t, m, snapshotMsg(snap))
	assert.Contains(t, m.View(), "PAUSED")

	snap.Paused = false
	snap.Over = true
	m, _ = update(t, m, snapshotMsg(snap))
	assert.Contains(t, m.View(), "GAME OVER")
}

func TestModelViewCentersInWindow(t *testing.T) {
	m := NewModel(newFakeEngine(), config.DefaultTetrisConfig(), nil)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	lines := strings.Split(m.View(), "\n")
	assert.Len(t, lines, 40)
}

func TestModelWithRunner(t *testing.T) {
	cfg := config.DefaultTetrisConfig()
	r := tetris.NewRunner(tetris.RunnerConfig{Settings: tetris.SettingsFromConfig(cfg, 7)})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	m := NewModel(r, cfg, nil)
	msg := waitForSnapshot(m.updates)()
	require.IsType(t, snapshotMsg{}, msg)
	m, _ = update(t, m, msg)
	assert.Equal(t, "running", m.Snapshot().State)
	assert.NotEqual(t, tetris.None, m.Snapshot().Piece.Kind)

	m, _ = update(t, m, runeKey('p'))
	require.Eventually(t, func() bool {
		return r.Latest().Paused
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop")
	}
	_ = m
}
