package tetris

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// PieceView describes the active piece for rendering.
type PieceView struct {
	Kind     Kind
	Cells    [4]core.Point // Absolute board coordinates
	Ghost    [4]core.Point // Landing position after a hard drop
	Rect     core.Rect
	Rotation int
}

// Snapshot is an immutable copy of everything a front end draws. It is safe
// to hand to another goroutine.
type Snapshot struct {
	Board   [Height][Width]Kind
	Piece   PieceView
	Hold    Kind
	CanHold bool
	Next    []Kind

	Score int
	Lines int
	Level int

	Elapsed time.Duration
	TakenAt time.Time
	State   string
	Paused  bool
	Over    bool

	Spawned map[Kind]int
	Ticks   uint64
}

// Snapshot captures the current state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Board:   s.board.Cells(),
		Hold:    s.hold,
		CanHold: !s.holding,
		Next:    s.Preview(),
		Score:   s.score,
		Lines:   s.lines,
		Level:   s.level,
		Elapsed: s.Elapsed(),
		TakenAt: s.cfg.Clock(),
		State:   s.State(),
		Paused:  s.Paused(),
		Over:    s.Over(),
		Spawned: make(map[Kind]int, s.spawned.Len()),
		Ticks:   s.ticks,
	}
	if s.piece != nil {
		snap.Piece = PieceView{
			Kind:     s.piece.Kind(),
			Cells:    s.piece.Cells(),
			Ghost:    s.piece.GhostCells(),
			Rect:     s.piece.Rect(),
			Rotation: s.piece.Rotation(),
		}
	}
	for k, n := range s.spawned.All() {
		snap.Spawned[k] = n
	}
	return snap
}

// ElapsedAt extrapolates the running time to now. Paused and finished games
// report the captured value unchanged.
func (snap Snapshot) ElapsedAt(now time.Time) time.Duration {
	if snap.Paused || snap.Over || snap.TakenAt.IsZero() {
		return snap.Elapsed
	}
	return snap.Elapsed + now.Sub(snap.TakenAt)
}

// Empty reports whether the snapshot was never filled in.
func (snap Snapshot) Empty() bool {
	return snap.State == ""
}
