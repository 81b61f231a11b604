package core

// Color represents a foreground color for a screen cell.
// The platform layer maps each value to an ANSI 256-color code.
type Color uint8

// Palette used by pieces, the playfield frame and text.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorGray
	ColorDim
)
