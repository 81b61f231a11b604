package tetris

// Playfield dimensions.
const (
	Width         = 10
	Height        = 22
	VisibleHeight = 20
)

// Board is the 10x22 grid of locked cells. Each row keeps a running count of
// its occupied cells so full rows are detected without rescanning.
//
// The zero value is an empty board ready to use.
type Board struct {
	cells [Height][Width]Kind
	rows  [Height]int
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{}
}

func inBounds(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}

// Occupied reports whether (x, y) holds a locked cell. Coordinates outside the
// grid are always empty.
func (b *Board) Occupied(x, y int) bool {
	return b.At(x, y) != None
}

// At returns the kind locked at (x, y), or None for empty or out-of-range cells.
func (b *Board) At(x, y int) Kind {
	if !inBounds(x, y) {
		return None
	}
	return b.cells[y][x]
}

// Set locks kind k into (x, y). Writes outside the grid and writes of None are
// ignored. Overwriting an occupied cell leaves the row count unchanged.
func (b *Board) Set(x, y int, k Kind) {
	if !inBounds(x, y) || k == None {
		return
	}
	if b.cells[y][x] == None {
		b.rows[y]++
	}
	b.cells[y][x] = k
}

// RowCount returns the number of occupied cells in row y.
func (b *Board) RowCount(y int) int {
	if y < 0 || y >= Height {
		return 0
	}
	return b.rows[y]
}

// Filled returns the total number of occupied cells.
func (b *Board) Filled() int {
	n := 0
	for _, c := range b.rows {
		n += c
	}
	return n
}

// ClearFullRows removes every full row, compacting the rows above it downward
// and refilling the top with empty rows. It returns the number of rows removed.
func (b *Board) ClearFullRows() int {
	dst := 0
	for src := 0; src < Height; src++ {
		if b.rows[src] == Width {
			continue
		}
		if dst != src {
			b.cells[dst] = b.cells[src]
			b.rows[dst] = b.rows[src]
		}
		dst++
	}
	cleared := Height - dst
	for ; dst < Height; dst++ {
		b.cells[dst] = [Width]Kind{}
		b.rows[dst] = 0
	}
	return cleared
}

// Cells returns a copy of the grid indexed [y][x].
func (b *Board) Cells() [Height][Width]Kind {
	return b.cells
}
