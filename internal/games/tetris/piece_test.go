package tetris

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

func newTestPiece(t *testing.T, k Kind, b *Board) *Piece {
	t.Helper()
	p, err := NewPiece(k, b)
	require.NoError(t, err)
	return p
}

func TestNewPieceRejectsNone(t *testing.T) {
	_, err := NewPiece(None, NewBoard())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoPiece))
}

func TestSpawnPositions(t *testing.T) {
	tests := []struct {
		kind  Kind
		cells []core.Point
	}{
		{I, []core.Point{{X: 3, Y: 20}, {X: 4, Y: 20}, {X: 5, Y: 20}, {X: 6, Y: 20}}},
		{O, []core.Point{{X: 4, Y: 20}, {X: 4, Y: 21}, {X: 5, Y: 20}, {X: 5, Y: 21}}},
		{T, []core.Point{{X: 3, Y: 20}, {X: 4, Y: 20}, {X: 4, Y: 21}, {X: 5, Y: 20}}},
	}

	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			p := newTestPiece(t, tc.kind, NewBoard())
			cells := p.Cells()
			assert.ElementsMatch(t, tc.cells, cells[:])
			assert.False(t, p.Collides())
			assert.Equal(t, Spawn, p.Rotation())
		})
	}
}

func TestMoveStopsAtWalls(t *testing.T) {
	p := newTestPiece(t, T, NewBoard())

	moves := 0
	for p.Move(Left) {
		moves++
	}
	assert.Equal(t, 3, moves)
	assert.Equal(t, 0, p.Rect().X)

	moves = 0
	for p.Move(Right) {
		moves++
	}
	assert.Equal(t, 7, moves)
	assert.Equal(t, 7, p.Rect().X)
}

func TestMoveBlockedByCell(t *testing.T) {
	b := NewBoard()
	p := newTestPiece(t, O, b)
	p.Drop()
	b.Set(6, 0, Z)

	before := p.Rect()
	assert.False(t, p.Move(Right))
	assert.Equal(t, before, p.Rect(), "failed move must not change position")
	assert.False(t, p.Move(Down))
}

func TestRotateRejectsVerticalDirections(t *testing.T) {
	p := newTestPiece(t, T, NewBoard())

	for _, d := range []Direction{Up, Down} {
		ok, err := p.Rotate(d)
		assert.False(t, ok)
		assert.ErrorIs(t, err, ErrInvalidRotation)
	}
	assert.Equal(t, T.Shape(), p.Offsets())
}

func TestRotateOIsIdentity(t *testing.T) {
	p := newTestPiece(t, O, NewBoard())
	rect := p.Rect()

	for _, d := range []Direction{Left, Right, Right, Left, Left} {
		ok, err := p.Rotate(d)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, O.Shape(), p.Offsets())
		assert.Equal(t, rect, p.Rect())
	}
}

func TestRotateIRightTwice(t *testing.T) {
	p := newTestPiece(t, I, NewBoard())

	for i := 0; i < 2; i++ {
		ok, err := p.Rotate(Right)
		require.NoError(t, err)
		require.True(t, ok)
	}

	assert.Equal(t, Rot2, p.Rotation())
	offsets := p.Offsets()
	assert.ElementsMatch(t,
		[]core.Point{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 1}},
		offsets[:],
	)
}

func TestRotateRoundTrip(t *testing.T) {
	for _, k := range Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			p := newTestPiece(t, k, NewBoard())
			p.Move(Down)
			p.Move(Down)
			offsets, rect := p.Offsets(), p.Rect()

			ok, err := p.Rotate(Right)
			require.NoError(t, err)
			require.True(t, ok)
			assert.False(t, p.Collides())

			ok, err = p.Rotate(Left)
			require.NoError(t, err)
			require.True(t, ok)

			assert.Equal(t, offsets, p.Offsets())
			assert.Equal(t, rect, p.Rect())
			assert.Equal(t, Spawn, p.Rotation())
		})
	}
}

func TestRotateWrapsState(t *testing.T) {
	p := newTestPiece(t, T, NewBoard())
	p.Move(Down)
	p.Move(Down)

	ok, _ := p.Rotate(Left)
	require.True(t, ok)
	assert.Equal(t, RotL, p.Rotation())

	for i := 0; i < 4; i++ {
		ok, _ = p.Rotate(Right)
		require.True(t, ok)
	}
	assert.Equal(t, RotL, p.Rotation())
}

func TestRotateKicksOffWall(t *testing.T) {
	p := newTestPiece(t, T, NewBoard())
	p.Move(Down)
	ok, _ := p.Rotate(Right)
	require.True(t, ok)
	for p.Move(Left) {
	}
	require.Equal(t, -1, p.Rect().X, "vertical T rests its stem on the wall")

	ok, err := p.Rotate(Left)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, 0, p.Rect().X, "second kick shifts one column right")
	assert.Equal(t, Spawn, p.Rotation())
	assert.False(t, p.Collides())
}

func TestRotateFailsWhenBoxedIn(t *testing.T) {
	b := NewBoard()
	p := newTestPiece(t, I, b)
	p.Drop()
	// Walls of cells around a horizontal bar on the floor.
	for y := 0; y < 6; y++ {
		b.Set(2, y, Z)
		b.Set(7, y, Z)
	}
	for x := 3; x < 7; x++ {
		b.Set(x, 1, Z)
	}
	offsets, rect := p.Offsets(), p.Rect()

	ok, err := p.Rotate(Right)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, offsets, p.Offsets())
	assert.Equal(t, rect, p.Rect())
	assert.Equal(t, Spawn, p.Rotation())
}

func TestDropDistance(t *testing.T) {
	b := NewBoard()
	b.Set(4, 3, S)
	p := newTestPiece(t, O, b)

	dist := p.Drop()
	assert.Equal(t, 16, dist)
	cells := p.Cells()
	assert.ElementsMatch(t,
		[]core.Point{{X: 4, Y: 4}, {X: 4, Y: 5}, {X: 5, Y: 4}, {X: 5, Y: 5}},
		cells[:],
	)
	assert.False(t, p.Move(Down))
	assert.Zero(t, p.Drop())
}

func TestPlaceOccupiesCells(t *testing.T) {
	b := NewBoard()
	p := newTestPiece(t, L, b)
	p.Drop()

	assert.False(t, p.Place())
	assert.True(t, p.Collides(), "placed cells now overlap the piece")
	for _, c := range p.Cells() {
		assert.Equal(t, L, b.At(c.X, c.Y))
	}
	assert.Equal(t, 4, b.Filled())
}

func TestPlaceLockOut(t *testing.T) {
	b := NewBoard()
	p := newTestPiece(t, J, b)

	assert.True(t, p.Place(), "cells in rows 20-21 only lock out")

	q := newTestPiece(t, J, NewBoard())
	q.Move(Down)
	assert.False(t, q.Place(), "a cell in row 19 is visible")
}

func TestGhostCellsDoNotMovePiece(t *testing.T) {
	b := NewBoard()
	fillRow(b, 0, Z, 0)
	p := newTestPiece(t, I, b)
	rect := p.Rect()

	ghost := p.GhostCells()
	for _, c := range ghost {
		assert.Equal(t, 1, c.Y)
	}
	assert.Equal(t, rect, p.Rect())
}
