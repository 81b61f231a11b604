package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// colorCodes maps core.Color to ANSI 256-color codes.
var colorCodes = map[core.Color]string{
	core.ColorRed:     "1",
	core.ColorGreen:   "2",
	core.ColorYellow:  "3",
	core.ColorBlue:    "4",
	core.ColorMagenta: "5",
	core.ColorCyan:    "6",
	core.ColorWhite:   "7",
	core.ColorOrange:  "208",
	core.ColorGray:    "245",
	core.ColorDim:     "238",
}

// Theme maps palette colors to lipgloss styles bound to one renderer.
// Over SSH each session gets its own renderer.
type Theme struct {
	styles map[core.Color]lipgloss.Style
	base   lipgloss.Style
	Banner lipgloss.Style
}

// NewTheme builds styles for the given renderer. A nil renderer uses the
// process default.
func NewTheme(r *lipgloss.Renderer) *Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	t := &Theme{
		styles: make(map[core.Color]lipgloss.Style, len(colorCodes)),
		base:   r.NewStyle(),
		Banner: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("7")).
			Bold(true).
			Padding(0, 2).
			Align(lipgloss.Center),
	}
	for c, code := range colorCodes {
		t.styles[c] = r.NewStyle().Foreground(lipgloss.Color(code))
	}
	return t
}

// Style returns the style for a palette color.
func (t *Theme) Style(c core.Color) lipgloss.Style {
	if s, ok := t.styles[c]; ok {
		return s
	}
	return t.base
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(t *Theme, s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			sb.WriteString(t.Style(startColor).Render(run.String()))
		}
	}
	return sb.String()
}
