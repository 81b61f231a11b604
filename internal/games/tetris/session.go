package tetris

import (
	"context"
	"math/rand"
	"time"

	"github.com/kamstrup/intmap"
	"github.com/looplab/fsm"
)

// State names of the session machine.
const (
	StateRunning = "running"
	StatePaused  = "paused"
	StateOver    = "over"
)

const (
	eventPause  = "pause"
	eventResume = "resume"
	eventTopOut = "top_out"
)

// Settings tunes a session. Zero fields fall back to DefaultSettings.
type Settings struct {
	LockDelay     time.Duration
	StartLevel    int
	LinesPerLevel int
	Preview       int
	Gravity       GravityCurve
	Seed          int64
	Clock         func() time.Time
}

// DefaultSettings returns guideline timing: 500ms lock delay, level 1,
// a level every five lines and a five-piece preview.
func DefaultSettings() Settings {
	return Settings{
		LockDelay:     500 * time.Millisecond,
		StartLevel:    1,
		LinesPerLevel: 5,
		Preview:       5,
		Gravity:       DefaultGravityCurve(),
		Clock:         time.Now,
	}
}

func (s Settings) withDefaults() Settings {
	def := DefaultSettings()
	if s.LockDelay <= 0 {
		s.LockDelay = def.LockDelay
	}
	if s.StartLevel < 1 {
		s.StartLevel = def.StartLevel
	}
	if s.LinesPerLevel < 1 {
		s.LinesPerLevel = def.LinesPerLevel
	}
	if s.Preview < 1 {
		s.Preview = def.Preview
	}
	if s.Gravity.Base == 0 {
		s.Gravity = def.Gravity
	}
	if s.Clock == nil {
		s.Clock = def.Clock
	}
	return s
}

// Session is one game: board, active piece, queue, hold slot, scoring and the
// running/paused/over machine. It is not safe for concurrent use; a single
// goroutine must apply all commands and timer events.
type Session struct {
	cfg Settings

	board   *Board
	bag     *Bag
	piece   *Piece
	hold    Kind
	holding bool

	score int
	lines int
	level int

	interval time.Duration
	gravity  Timer
	lock     Timer

	machine   *fsm.FSM
	elapsed   time.Duration
	resumedAt time.Time

	spawned *intmap.Map[Kind, int]
	ticks   uint64
}

// NewSession starts a game with the first piece already falling. gravity is
// armed at the start level's interval; lock stays idle until the piece rests.
func NewSession(cfg Settings, gravity, lock Timer) *Session {
	cfg = cfg.withDefaults()
	s := &Session{
		cfg:     cfg,
		board:   NewBoard(),
		bag:     NewBag(rand.New(rand.NewSource(cfg.Seed))),
		level:   cfg.StartLevel,
		gravity: gravity,
		lock:    lock,
		spawned: intmap.New[Kind, int](len(playable)),
	}
	s.interval = cfg.Gravity.Interval(s.level)
	s.machine = fsm.NewFSM(
		StateRunning,
		fsm.Events{
			{Name: eventPause, Src: []string{StateRunning}, Dst: StatePaused},
			{Name: eventResume, Src: []string{StatePaused}, Dst: StateRunning},
			{Name: eventTopOut, Src: []string{StateRunning}, Dst: StateOver},
		},
		fsm.Callbacks{
			"leave_" + StateRunning: func(_ context.Context, _ *fsm.Event) {
				s.elapsed += s.cfg.Clock().Sub(s.resumedAt)
			},
			"enter_" + StateRunning: func(_ context.Context, _ *fsm.Event) {
				s.resumedAt = s.cfg.Clock()
				s.gravity.Reset(s.interval)
			},
			"enter_" + StatePaused: func(_ context.Context, _ *fsm.Event) {
				s.stopTimers()
			},
			"enter_" + StateOver: func(_ context.Context, _ *fsm.Event) {
				s.stopTimers()
			},
		},
	)
	s.resumedAt = cfg.Clock()
	s.spawnNext()
	return s
}

func (s *Session) stopTimers() {
	s.gravity.Stop()
	s.lock.Stop()
}

// fire drives the machine. Transitions are only requested from states where
// they are defined, so an error here means the event table is wrong.
func (s *Session) fire(event string) {
	if err := s.machine.Event(context.Background(), event); err != nil {
		panic("tetris: " + err.Error())
	}
}

// Running reports whether the game accepts gameplay commands.
func (s *Session) Running() bool { return s.machine.Is(StateRunning) }

// Paused reports whether the game is paused.
func (s *Session) Paused() bool { return s.machine.Is(StatePaused) }

// Over reports whether the game has ended.
func (s *Session) Over() bool { return s.machine.Is(StateOver) }

// State returns the current machine state name.
func (s *Session) State() string { return s.machine.Current() }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Lines returns the total number of cleared lines.
func (s *Session) Lines() int { return s.lines }

// Level returns the current level.
func (s *Session) Level() int { return s.level }

// Hold returns the held kind, or None.
func (s *Session) Hold() Kind { return s.hold }

// Board returns the playfield. Callers must not modify it.
func (s *Session) Board() *Board { return s.board }

// Piece returns the active piece. Callers must not modify it.
func (s *Session) Piece() *Piece { return s.piece }

// Interval returns the current gravity interval.
func (s *Session) Interval() time.Duration { return s.interval }

// Preview returns the upcoming kinds without consuming them.
func (s *Session) Preview() []Kind { return s.bag.Peek(s.cfg.Preview) }

// Elapsed returns the time spent running, excluding pauses.
func (s *Session) Elapsed() time.Duration {
	if s.Running() {
		return s.elapsed + s.cfg.Clock().Sub(s.resumedAt)
	}
	return s.elapsed
}

// Ticks returns the number of events dispatched so far.
func (s *Session) Ticks() uint64 { return s.ticks }

// Spawned returns how many pieces of kind k have entered play.
func (s *Session) Spawned(k Kind) int {
	n, _ := s.spawned.Get(k)
	return n
}

// spawnNext brings the next queued kind into play, nudged one row down.
func (s *Session) spawnNext() {
	k := s.bag.Next()
	// The bag only yields playable kinds.
	s.piece, _ = NewPiece(k, s.board)
	s.holding = false
	s.spawned.Put(k, s.Spawned(k)+1)

	if s.piece.Collides() {
		s.fire(eventTopOut)
		return
	}
	s.piece.Move(Down)
	s.lock.Stop()
	s.gravity.Reset(s.interval)
}

// hold stashes the active kind. A previously held kind goes to the front of
// the queue so the following spawn brings it back.
func (s *Session) holdPiece() {
	if s.holding {
		return
	}
	if s.hold != None {
		s.bag.PushFront(s.hold)
	}
	s.hold = s.piece.Kind()
	s.spawnNext()
	s.holding = true
}

// lockPiece writes the active piece into the board, then clears, scores and
// spawns unless it locked out.
func (s *Session) lockPiece() {
	s.lock.Stop()
	if s.piece.Place() {
		s.fire(eventTopOut)
		return
	}
	s.scoreLines(s.board.ClearFullRows())
	s.spawnNext()
}

// scoreLines credits n cleared lines, advancing at most one level per clear.
func (s *Session) scoreLines(n int) {
	if n <= 0 {
		return
	}
	s.lines += n
	if s.lines >= s.cfg.LinesPerLevel*s.level {
		s.level++
	}
	s.interval = s.cfg.Gravity.Interval(s.level)
	s.score += 100 * n * s.level
}

// restartLock re-arms the lock delay if it is already counting.
func (s *Session) restartLock(moved bool) {
	if moved && s.lock.Running() {
		s.lock.Reset(s.cfg.LockDelay)
	}
}

// Handle applies a player command. Everything is ignored once the game is
// over, and everything except TogglePause is ignored while paused.
func (s *Session) Handle(cmd Command) {
	if s.Over() {
		return
	}
	if cmd == TogglePause {
		if s.Paused() {
			s.fire(eventResume)
		} else {
			s.fire(eventPause)
		}
		return
	}
	if s.Paused() {
		return
	}

	switch cmd {
	case RotateLeft:
		s.restartLock(s.piece.rotate(Left))
	case RotateRight:
		s.restartLock(s.piece.rotate(Right))
	case MoveLeft:
		s.restartLock(s.piece.Move(Left))
	case MoveRight:
		s.restartLock(s.piece.Move(Right))
	case SoftDrop:
		s.gravity.Reset(s.interval)
		if s.piece.Move(Down) {
			s.score++
		} else {
			s.lock.Reset(s.cfg.LockDelay)
		}
	case HardDrop:
		s.score += 2 * s.piece.Drop()
		s.lockPiece()
	case Hold:
		s.holdPiece()
	}
}

// GravityTick moves the piece down one row. A piece that cannot fall starts
// the lock delay.
func (s *Session) GravityTick() {
	if !s.Running() {
		return
	}
	if !s.piece.Move(Down) && !s.lock.Running() {
		s.lock.Reset(s.cfg.LockDelay)
	}
}

// LockExpire locks the resting piece. If the piece was slid off its support
// during the delay it is left falling instead.
func (s *Session) LockExpire() {
	if !s.Running() {
		return
	}
	if s.piece.dropDistance() > 0 {
		s.lock.Stop()
		return
	}
	s.lockPiece()
}

// Suspend pauses a running game. It is used when the player's terminal loses
// focus and, unlike TogglePause, never resumes.
func (s *Session) Suspend() {
	if s.Running() {
		s.fire(eventPause)
	}
}

// Dispatch applies a single queued event.
func (s *Session) Dispatch(ev Event) {
	s.ticks++
	switch ev.Kind {
	case EventCommand:
		s.Handle(ev.Command)
	case EventGravity:
		s.GravityTick()
	case EventLock:
		s.LockExpire()
	case EventFocusLost:
		s.Suspend()
	}
}
