package tetris

import (
	"math"
	"time"
)

// Timer is the session's view of a gravity or lock-delay timer. Firing is
// delivered separately, as GravityTick or LockExpire calls on the session, so
// a Timer only tracks whether it is armed.
type Timer interface {
	// Reset arms the timer to fire after d, replacing any pending deadline.
	Reset(d time.Duration)
	// Stop disarms the timer. A stopped timer never fires.
	Stop()
	// Running reports whether the timer is armed.
	Running() bool
}

// ManualTimer is a Timer that never fires by itself. Drivers and tests fire
// it explicitly, which keeps a session fully deterministic.
type ManualTimer struct {
	armed  bool
	period time.Duration
	resets int
}

// Reset arms the timer.
func (t *ManualTimer) Reset(d time.Duration) {
	t.armed = true
	t.period = d
	t.resets++
}

// Stop disarms the timer.
func (t *ManualTimer) Stop() {
	t.armed = false
}

// Running reports whether the timer is armed.
func (t *ManualTimer) Running() bool {
	return t.armed
}

// Period returns the duration passed to the last Reset.
func (t *ManualTimer) Period() time.Duration {
	return t.period
}

// Resets returns how many times the timer has been armed.
func (t *ManualTimer) Resets() int {
	return t.resets
}

// GravityCurve computes the gravity interval for a level as
// (Base - (level-1)*Step)^(level-1) seconds.
type GravityCurve struct {
	Base     float64
	Step     float64
	MaxLevel int           // Levels above this use the MaxLevel interval
	Floor    time.Duration // Lower bound on the interval
}

// DefaultGravityCurve returns the guideline curve.
func DefaultGravityCurve() GravityCurve {
	return GravityCurve{
		Base:     0.8,
		Step:     0.007,
		MaxLevel: 20,
		Floor:    100 * time.Microsecond,
	}
}

// Interval returns how long a piece waits between gravity steps at level.
func (c GravityCurve) Interval(level int) time.Duration {
	if level < 1 {
		level = 1
	}
	if c.MaxLevel > 0 && level > c.MaxLevel {
		level = c.MaxLevel
	}
	n := float64(level - 1)
	seconds := math.Pow(c.Base-n*c.Step, n)
	d := time.Duration(seconds * float64(time.Second))
	if d < c.Floor {
		d = c.Floor
	}
	return d
}
