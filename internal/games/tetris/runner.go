package tetris

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const eventBuffer = 64

// RunnerConfig configures a Runner.
type RunnerConfig struct {
	Settings Settings
	Logger   *log.Logger // nil discards
}

// Runner owns a Session and serializes every input and timer event through a
// single channel. Any goroutine may call Send, FocusLost, Restart and
// Subscribe; only Run touches the session.
type Runner struct {
	id       string
	cfg      Settings
	seeds    *rand.Rand
	logger   *log.Logger
	events   chan Event
	updates  chan Snapshot
	done     chan struct{}
	stopOnce sync.Once

	session *Session
	gravity *queueTimer
	lock    *queueTimer
	games   int
	logged  bool // game over already logged

	mu     sync.Mutex
	subs   map[int]chan Snapshot
	nextID int
	closed bool
	latest atomic.Pointer[Snapshot]
}

// NewRunner builds a runner with its first game ready. Timers start counting
// immediately and their events queue until Run begins consuming them.
func NewRunner(cfg RunnerConfig) *Runner {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	id := uuid.NewString()
	r := &Runner{
		id:      id,
		cfg:     cfg.Settings.withDefaults(),
		seeds:   rand.New(rand.NewSource(cfg.Settings.Seed)),
		logger:  logger.With("session", id),
		events:  make(chan Event, eventBuffer),
		updates: make(chan Snapshot, 1),
		done:    make(chan struct{}),
		subs:    make(map[int]chan Snapshot),
	}
	r.gravity = &queueTimer{kind: EventGravity, periodic: true, out: r.events, done: r.done}
	r.lock = &queueTimer{kind: EventLock, out: r.events, done: r.done}
	r.newGame(r.cfg.Seed)
	return r
}

// ID returns the runner's unique id, used to tag its log lines.
func (r *Runner) ID() string {
	return r.id
}

func (r *Runner) newGame(seed int64) {
	r.gravity.Stop()
	r.lock.Stop()
	cfg := r.cfg
	cfg.Seed = seed
	r.session = NewSession(cfg, r.gravity, r.lock)
	r.games++
	r.logged = false
	r.logger.Info("game started", "game", r.games, "seed", seed)
	r.publish()
}

// Run consumes events until ctx is cancelled. It returns nil on cancellation.
func (r *Runner) Run(ctx context.Context) error {
	grp, grpCtx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		return r.loop(grpCtx)
	})
	grp.Go(func() error {
		r.fanOut(grpCtx)
		return nil
	})
	err := grp.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (r *Runner) loop(ctx context.Context) error {
	defer r.stop()
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("session stopped",
				"score", r.session.Score(),
				"lines", r.session.Lines(),
				"elapsed", r.session.Elapsed(),
			)
			return ctx.Err()
		case ev := <-r.events:
			if r.apply(ev) {
				r.publish()
			}
		}
	}
}

// apply hands ev to the session. It reports whether anything was dispatched.
func (r *Runner) apply(ev Event) bool {
	switch ev.Kind {
	case EventGravity:
		if !r.gravity.accept(ev.gen) {
			return false
		}
	case EventLock:
		if !r.lock.accept(ev.gen) {
			return false
		}
	case EventRestart:
		r.newGame(r.seeds.Int63())
		return false
	}

	r.session.Dispatch(ev)
	if r.session.Over() && !r.logged {
		r.logged = true
		r.logger.Info("game over",
			"score", r.session.Score(),
			"lines", r.session.Lines(),
			"level", r.session.Level(),
			"elapsed", r.session.Elapsed(),
		)
	}
	return true
}

func (r *Runner) stop() {
	r.stopOnce.Do(func() {
		r.gravity.Stop()
		r.lock.Stop()
		close(r.done)
	})
}

// publish hands the latest state to the fan-out goroutine, replacing any
// snapshot it has not picked up yet.
func (r *Runner) publish() {
	snap := r.session.Snapshot()
	r.latest.Store(&snap)
	offer(r.updates, snap)
}

func (r *Runner) fanOut(ctx context.Context) {
	defer r.closeSubscribers()
	for {
		select {
		case <-ctx.Done():
			return
		case snap := <-r.updates:
			r.mu.Lock()
			for _, ch := range r.subs {
				offer(ch, snap)
			}
			r.mu.Unlock()
		}
	}
}

func (r *Runner) closeSubscribers() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	for id, ch := range r.subs {
		close(ch)
		delete(r.subs, id)
	}
}

// offer delivers snap on a one-slot channel, dropping a stale value if the
// receiver has not read it yet. ch must have a single sender.
func offer(ch chan Snapshot, snap Snapshot) {
	select {
	case ch <- snap:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- snap:
	default:
	}
}

// Subscribe returns a channel that always holds the most recent snapshot and
// a function that unsubscribes. The channel is closed when the runner stops.
func (r *Runner) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)

	// Offers to ch happen under mu, so the fan-out and this first delivery
	// never race and anything published after the load still arrives.
	r.mu.Lock()
	defer r.mu.Unlock()
	if snap := r.latest.Load(); snap != nil {
		offer(ch, *snap)
	}
	if r.closed {
		close(ch)
		return ch, func() {}
	}
	id := r.nextID
	r.nextID++
	r.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			if _, ok := r.subs[id]; ok {
				delete(r.subs, id)
				close(ch)
			}
		})
	}
}

// Latest returns the most recently published snapshot.
func (r *Runner) Latest() Snapshot {
	if snap := r.latest.Load(); snap != nil {
		return *snap
	}
	return Snapshot{}
}

// post queues ev. It reports false once the runner has stopped.
func (r *Runner) post(ev Event) bool {
	select {
	case <-r.done:
		return false
	default:
	}
	select {
	case r.events <- ev:
		return true
	case <-r.done:
		return false
	}
}

// Send queues a player command.
func (r *Runner) Send(cmd Command) bool {
	return r.post(CommandEvent(cmd))
}

// FocusLost pauses a running game.
func (r *Runner) FocusLost() bool {
	return r.post(Event{Kind: EventFocusLost})
}

// Restart replaces the current game with a fresh one using a new seed.
func (r *Runner) Restart() bool {
	return r.post(Event{Kind: EventRestart})
}

// queueTimer is a Timer whose firings become events on the runner channel.
// Every Reset or Stop bumps the generation, and a firing only counts if its
// generation is still current, so a timer that was re-armed or stopped after
// its callback was scheduled has no effect.
//
// All methods except the AfterFunc callback run on the loop goroutine.
type queueTimer struct {
	kind     EventKind
	periodic bool
	out      chan<- Event
	done     <-chan struct{}

	t        *time.Timer
	gen      uint64
	armed    bool
	interval time.Duration
}

func (q *queueTimer) Reset(d time.Duration) {
	q.Stop()
	q.armed = true
	q.interval = d
	gen := q.gen
	q.t = time.AfterFunc(d, func() {
		select {
		case q.out <- Event{Kind: q.kind, gen: gen}:
		case <-q.done:
		}
	})
}

func (q *queueTimer) Stop() {
	if q.t != nil {
		q.t.Stop()
		q.t = nil
	}
	q.armed = false
	q.gen++
}

func (q *queueTimer) Running() bool {
	return q.armed
}

// accept reports whether a firing with generation gen is current. A periodic
// timer re-arms itself, a one-shot timer disarms.
func (q *queueTimer) accept(gen uint64) bool {
	if !q.armed || gen != q.gen {
		return false
	}
	if q.periodic {
		q.Reset(q.interval)
	} else {
		q.armed = false
		q.t = nil
	}
	return true
}
