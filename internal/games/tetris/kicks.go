package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// KickFamily selects which SRS offset table a piece uses.
type KickFamily int

const (
	FamilyStandard KickFamily = iota // J, L, O, S, T, Z
	FamilyLongBar                    // I
)

// Rotation states, counted clockwise from spawn.
const (
	Spawn   = 0
	RotR    = 1
	Rot2    = 2
	RotL    = 3
	numRots = 4
)

type kickKey struct {
	family KickFamily
	dir    Direction
	from   int
}

// kickTable maps (family, direction, state before rotation) to the offsets
// tried in order after a raw rotation. y grows upward.
var kickTable = map[kickKey][5]core.Point{
	{FamilyStandard, Right, Spawn}: {{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
	{FamilyStandard, Right, RotR}:  {{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
	{FamilyStandard, Right, Rot2}:  {{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
	{FamilyStandard, Right, RotL}:  {{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
	{FamilyStandard, Left, Spawn}:  {{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
	{FamilyStandard, Left, RotR}:   {{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
	{FamilyStandard, Left, Rot2}:   {{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
	{FamilyStandard, Left, RotL}:   {{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},

	{FamilyLongBar, Right, Spawn}: {{0, 0}, {-2, 0}, {1, 0}, {-2, -1}, {1, 2}},
	{FamilyLongBar, Right, RotR}:  {{0, 0}, {-1, 0}, {2, 0}, {-1, 2}, {2, -1}},
	{FamilyLongBar, Right, Rot2}:  {{0, 0}, {2, 0}, {-1, 0}, {2, 1}, {-1, -2}},
	{FamilyLongBar, Right, RotL}:  {{0, 0}, {1, 0}, {-2, 0}, {1, -2}, {-2, 1}},
	{FamilyLongBar, Left, Spawn}:  {{0, 0}, {-1, 0}, {2, 0}, {-1, 2}, {2, -1}},
	{FamilyLongBar, Left, RotR}:   {{0, 0}, {2, 0}, {-1, 0}, {2, 1}, {-1, -2}},
	{FamilyLongBar, Left, Rot2}:   {{0, 0}, {1, 0}, {-2, 0}, {1, -2}, {-2, 1}},
	{FamilyLongBar, Left, RotL}:   {{0, 0}, {-2, 0}, {1, 0}, {-2, -1}, {1, 2}},
}

// Kicks returns the offsets to try when rotating a piece of the given family
// in dir from rotation state from. ok is false for a direction other than
// Left or Right or a state outside 0..3.
func Kicks(family KickFamily, dir Direction, from int) (offsets [5]core.Point, ok bool) {
	offsets, ok = kickTable[kickKey{family: family, dir: dir, from: from}]
	return offsets, ok
}
