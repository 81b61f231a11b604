package tetris

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

var (
	// ErrInvalidRotation is returned when a piece is asked to rotate in a
	// direction other than Left or Right.
	ErrInvalidRotation = errors.New("rotation direction must be left or right")
	// ErrNoPiece is returned when a piece is requested for Kind None.
	ErrNoPiece = errors.New("no piece for kind")
)

// Direction is a unit step on the board. Left and Right double as the
// counterclockwise and clockwise rotation senses.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

var directionVectors = map[Direction]core.Point{
	Up:    {X: 0, Y: 1},
	Down:  {X: 0, Y: -1},
	Left:  {X: -1, Y: 0},
	Right: {X: 1, Y: 0},
}

var directionInverses = map[Direction]Direction{
	Up:    Down,
	Down:  Up,
	Left:  Right,
	Right: Left,
}

// Vector returns the unit translation for d.
func (d Direction) Vector() core.Point {
	return directionVectors[d]
}

// Inverse returns the opposite direction.
func (d Direction) Inverse() Direction {
	return directionInverses[d]
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Piece is the falling tetromino. It references the board it collides with
// but never writes to it until Place.
type Piece struct {
	kind     Kind
	offsets  [4]core.Point
	rect     core.Rect
	rotation int
	board    *Board
}

// NewPiece returns a piece of kind k at its spawn rectangle.
func NewPiece(k Kind, board *Board) (*Piece, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w %s", ErrNoPiece, k)
	}
	return &Piece{
		kind:    k,
		offsets: k.Shape(),
		rect:    k.SpawnRect(),
		board:   board,
	}, nil
}

// Kind returns the piece's kind.
func (p *Piece) Kind() Kind { return p.kind }

// Rotation returns the rotation state, counted clockwise from spawn.
func (p *Piece) Rotation() int { return p.rotation }

// Rect returns the bounding rectangle.
func (p *Piece) Rect() core.Rect { return p.rect }

// Offsets returns the cell offsets relative to the rectangle origin.
func (p *Piece) Offsets() [4]core.Point { return p.offsets }

// Cells returns the absolute board coordinates of the four cells.
func (p *Piece) Cells() [4]core.Point {
	var out [4]core.Point
	origin := p.rect.Origin()
	for i, o := range p.offsets {
		out[i] = origin.Add(o)
	}
	return out
}

// Collides reports whether any cell is outside the side walls, below the
// floor or on an occupied cell. There is no ceiling.
func (p *Piece) Collides() bool {
	for _, c := range p.Cells() {
		if c.X < 0 || c.X >= Width || c.Y < 0 || p.board.Occupied(c.X, c.Y) {
			return true
		}
	}
	return false
}

// Move shifts the piece one cell in d. It returns false and leaves the piece
// where it was if the new position collides.
func (p *Piece) Move(d Direction) bool {
	return p.shift(d.Vector())
}

func (p *Piece) shift(v core.Point) bool {
	prev := p.rect
	p.rect = p.rect.Translate(v.X, v.Y)
	if p.Collides() {
		p.rect = prev
		return false
	}
	return true
}

// Rotate turns the piece a quarter turn, Right for clockwise and Left for
// counterclockwise, trying each kick offset in order. It returns false and
// restores the original orientation when every offset collides.
func (p *Piece) Rotate(d Direction) (bool, error) {
	if d != Left && d != Right {
		return false, fmt.Errorf("rotate %s: %w", d, ErrInvalidRotation)
	}
	return p.rotate(d), nil
}

func (p *Piece) rotate(d Direction) bool {
	if p.kind == O {
		return true
	}
	from := p.rotation
	p.turn(d)
	kicks, _ := Kicks(p.kind.Family(), d, from)
	for _, k := range kicks {
		if p.shift(k) {
			return true
		}
	}
	p.turn(d.Inverse())
	return false
}

// turn applies the raw quarter turn inside the bounding rectangle.
func (p *Piece) turn(d Direction) {
	w, h := p.rect.W-1, p.rect.H-1
	for i, o := range p.offsets {
		if d == Right {
			p.offsets[i] = core.Pt(o.Y, h-o.X)
		} else {
			p.offsets[i] = core.Pt(w-o.Y, o.X)
		}
	}
	if d == Right {
		p.rotation = (p.rotation + 1) % numRots
	} else {
		p.rotation = (p.rotation + numRots - 1) % numRots
	}
}

// dropDistance returns how many rows the piece can fall before resting.
func (p *Piece) dropDistance() int {
	dist := math.MaxInt
	for _, c := range p.Cells() {
		top := 0
		for y := core.Min(c.Y, Height) - 1; y >= 0; y-- {
			if p.board.Occupied(c.X, y) {
				top = y + 1
				break
			}
		}
		dist = core.Min(dist, c.Y-top)
	}
	return dist
}

// Drop moves the piece straight down until it rests and returns the number
// of rows it fell.
func (p *Piece) Drop() int {
	dist := p.dropDistance()
	p.rect = p.rect.Translate(0, -dist)
	return dist
}

// GhostCells returns where the piece's cells would land after a Drop.
func (p *Piece) GhostCells() [4]core.Point {
	dist := p.dropDistance()
	cells := p.Cells()
	for i := range cells {
		cells[i].Y -= dist
	}
	return cells
}

// Place locks the piece into the board. It reports a lock out when every cell
// landed above the visible field.
func (p *Piece) Place() bool {
	lockOut := true
	for _, c := range p.Cells() {
		p.board.Set(c.X, c.Y, p.kind)
		if c.Y < VisibleHeight {
			lockOut = false
		}
	}
	return lockOut
}
