// Package tui provides the Bubble Tea front end for the game: key mapping,
// the playfield view, and the SSH server that hosts one game per session.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg triggers a redraw so the clock keeps moving between snapshots.
type FrameMsg time.Time

// frameCmd returns a Bubble Tea command that sends frame messages at the specified rate.
func frameCmd(frameRate int) tea.Cmd {
	if frameRate <= 0 {
		frameRate = 30
	}
	interval := time.Second / time.Duration(frameRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}
