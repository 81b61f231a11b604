// Package tetris implements a guideline falling-block engine: the playfield,
// the active piece with SRS rotation, the 7-bag randomizer and the session
// state machine that ties them together.
//
// Board coordinates put x = 0 at the left wall and y = 0 on the floor, with y
// growing upward. Rows 20 and 21 form the buffer zone above the visible field.
package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// Kind identifies a piece family. None is the placeholder used for an empty
// hold slot and for empty board cells.
type Kind int

const (
	None Kind = iota
	I
	J
	L
	O
	S
	T
	Z
)

// playable lists the seven real kinds in canonical order.
var playable = [...]Kind{I, J, L, O, S, T, Z}

var kindNames = map[Kind]string{
	None: "None",
	I:    "I",
	J:    "J",
	L:    "L",
	O:    "O",
	S:    "S",
	T:    "T",
	Z:    "Z",
}

// kindShapes holds each kind's spawn orientation in first-quadrant offsets
// relative to the origin of its spawn rectangle.
var kindShapes = map[Kind][4]core.Point{
	I: {{X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2}, {X: 3, Y: 2}},
	J: {{X: 0, Y: 2}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}},
	L: {{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 2, Y: 2}},
	O: {{X: 1, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 1}, {X: 2, Y: 2}},
	S: {{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 2}},
	T: {{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 1}},
	Z: {{X: 0, Y: 2}, {X: 1, Y: 2}, {X: 1, Y: 1}, {X: 2, Y: 1}},
}

// spawnRects is the bounding rectangle each kind appears in. Rotation pivots
// around the center of this rectangle.
var spawnRects = map[Kind]core.Rect{
	I: core.NewRect(3, 18, 4, 4),
	J: core.NewRect(3, 19, 3, 3),
	L: core.NewRect(3, 19, 3, 3),
	O: core.NewRect(3, 19, 4, 3),
	S: core.NewRect(3, 19, 3, 3),
	T: core.NewRect(3, 19, 3, 3),
	Z: core.NewRect(3, 19, 3, 3),
}

var kindColors = map[Kind]core.Color{
	None: core.ColorGray,
	I:    core.ColorCyan,
	J:    core.ColorBlue,
	L:    core.ColorOrange,
	O:    core.ColorYellow,
	S:    core.ColorGreen,
	T:    core.ColorMagenta,
	Z:    core.ColorRed,
}

var kindFamilies = map[Kind]KickFamily{
	I: FamilyLongBar,
	J: FamilyStandard,
	L: FamilyStandard,
	O: FamilyStandard,
	S: FamilyStandard,
	T: FamilyStandard,
	Z: FamilyStandard,
}

// Kinds returns the seven playable kinds in canonical order.
func Kinds() []Kind {
	out := make([]Kind, len(playable))
	copy(out, playable[:])
	return out
}

// Valid reports whether k is one of the seven playable kinds.
func (k Kind) Valid() bool {
	_, ok := kindShapes[k]
	return ok
}

// String returns the letter name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Shape returns the spawn orientation offsets of k.
func (k Kind) Shape() [4]core.Point {
	return kindShapes[k]
}

// SpawnRect returns the bounding rectangle k spawns in.
func (k Kind) SpawnRect() core.Rect {
	return spawnRects[k]
}

// Color returns the display color of k. None maps to gray.
func (k Kind) Color() core.Color {
	if c, ok := kindColors[k]; ok {
		return c
	}
	return core.ColorGray
}

// Family returns the kick table family used when rotating k.
func (k Kind) Family() KickFamily {
	return kindFamilies[k]
}
