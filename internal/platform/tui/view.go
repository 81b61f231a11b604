package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

// Canvas layout, in screen columns and rows. Each board cell is two columns
// wide so squares look square in a terminal.
const (
	cellW      = 2
	panelW     = 12
	boardX     = panelW + 1
	boardY     = 1
	boardBoxW  = tetris.Width*cellW + 2
	boardBoxH  = tetris.VisibleHeight + 2
	sideX      = boardX + boardBoxW + 1
	canvasW    = sideX + panelW
	previewRow = 3 // Rows per previewed piece
	infoRows   = 4
)

var visibleField = core.NewRect(0, 0, tetris.Width, tetris.VisibleHeight)

// ViewOptions selects optional parts of the playfield.
type ViewOptions struct {
	ShowGhost bool
	ShowStats bool
}

// canvasSize returns the screen size needed to show preview upcoming pieces.
func canvasSize(preview int) (w, h int) {
	h = boardY + boardBoxH
	if side := boardY + nextBoxHeight(preview) + infoRows; side > h {
		h = side
	}
	return canvasW, h
}

// nextBoxHeight includes both borders.
func nextBoxHeight(preview int) int {
	return max(preview, 1)*previewRow + 1
}

// DrawGame renders a snapshot onto the screen. now is used to extrapolate
// the clock between snapshots.
func DrawGame(s *core.Screen, snap tetris.Snapshot, now time.Time, opts ViewOptions) {
	s.Clear()
	drawBoard(s, snap, opts)
	drawHold(s, snap)
	if opts.ShowStats {
		drawStats(s, snap)
	}
	infoY := drawNext(s, snap)
	drawInfo(s, snap, now, infoY)
}

func drawBoard(s *core.Screen, snap tetris.Snapshot, opts ViewOptions) {
	s.DrawBox(core.NewRect(boardX, boardY, boardBoxW, boardBoxH), core.ColorGray)

	for y := range tetris.VisibleHeight {
		for x := range tetris.Width {
			if k := snap.Board[y][x]; k != tetris.None {
				drawCell(s, x, y, "██", k.Color())
			} else {
				drawCell(s, x, y, " ·", core.ColorDim)
			}
		}
	}

	if snap.Piece.Kind == tetris.None {
		return
	}
	if opts.ShowGhost && !snap.Over {
		for _, p := range snap.Piece.Ghost {
			drawCell(s, p.X, p.Y, "░░", snap.Piece.Kind.Color())
		}
	}
	for _, p := range snap.Piece.Cells {
		drawCell(s, p.X, p.Y, "██", snap.Piece.Kind.Color())
	}
}

// drawCell paints one board cell. Rows above the visible field are skipped.
func drawCell(s *core.Screen, x, y int, glyph string, c core.Color) {
	if !visibleField.Contains(x, y) {
		return
	}
	s.DrawTextColor(boardX+1+x*cellW, boardY+tetris.VisibleHeight-y, glyph, c)
}

// drawMini draws a piece in its spawn orientation with its top-left at (x, y).
func drawMini(s *core.Screen, x, y int, k tetris.Kind, c core.Color) {
	for _, o := range k.Shape() {
		sx := x + o.X*cellW
		sy := y + 2 - o.Y
		s.SetCell(sx, sy, '█', c)
		s.SetCell(sx+1, sy, '█', c)
	}
}

func drawHold(s *core.Screen, snap tetris.Snapshot) {
	s.DrawBox(core.NewRect(0, boardY, panelW, 4), core.ColorGray)
	s.DrawTextColor(2, boardY, "HOLD", core.ColorWhite)
	if snap.Hold == tetris.None {
		return
	}
	c := snap.Hold.Color()
	if !snap.CanHold {
		c = core.ColorGray
	}
	drawMini(s, 2, boardY+1, snap.Hold, c)
}

func drawStats(s *core.Screen, snap tetris.Snapshot) {
	y := boardY + 5
	s.DrawTextColor(1, y, "STATS", core.ColorWhite)
	for i, k := range tetris.Kinds() {
		s.DrawTextColor(1, y+1+i, k.String(), k.Color())
		s.DrawText(3, y+1+i, fmt.Sprintf("%7d", snap.Spawned[k]))
	}
}

// drawNext draws the preview box and returns the first row below it.
func drawNext(s *core.Screen, snap tetris.Snapshot) int {
	h := nextBoxHeight(len(snap.Next))
	s.DrawBox(core.NewRect(sideX, boardY, panelW, h), core.ColorGray)
	s.DrawTextColor(sideX+2, boardY, "NEXT", core.ColorWhite)
	for i, k := range snap.Next {
		drawMini(s, sideX+2, boardY+1+i*previewRow, k, k.Color())
	}
	return boardY + h
}

func drawInfo(s *core.Screen, snap tetris.Snapshot, now time.Time, y int) {
	s.DrawText(sideX, y, fmt.Sprintf("%-6s%6d", "SCORE", snap.Score))
	s.DrawText(sideX, y+1, fmt.Sprintf("%-6s%6d", "LINES", snap.Lines))
	s.DrawText(sideX, y+2, fmt.Sprintf("%-6s%6d", "LEVEL", snap.Level))
	s.DrawText(sideX, y+3, fmt.Sprintf("%-5s%7s", "TIME", FormatElapsed(snap.ElapsedAt(now))))
}

// FormatElapsed renders a duration as seconds with millisecond precision.
func FormatElapsed(d time.Duration) string {
	ms := d.Milliseconds()
	return fmt.Sprintf("%d.%03d", ms/1000, ms%1000)
}

// bannerText returns the message shown over the board, if any.
func bannerText(snap tetris.Snapshot, restartLabel string) string {
	switch {
	case snap.Over:
		return "GAME OVER\n" + restartLabel + " to restart"
	case snap.Paused:
		return "PAUSED"
	}
	return ""
}

// textModel wraps pre-rendered text as a tea.Model for the overlay.
type textModel string

func (m textModel) Init() tea.Cmd {
	return nil
}

func (m textModel) Update(tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

func (m textModel) View() string {
	return string(m)
}
