package engine

import "time"

// TimeControl is the immutable timing policy for a game.
//
// InitialTime is each side's starting budget. Increment is added to the
// mover's remaining time after every one of their turns. FixedExtra is free
// thinking time at the start of each turn: only the part of a turn that runs
// past it counts against the mover's budget.
type TimeControl struct {
	InitialTime time.Duration `json:"initial_time"`
	Increment   time.Duration `json:"increment"`
	FixedExtra  time.Duration `json:"fixed_extra"`
}

// Clock tracks both sides' remaining time. It never reads the wall clock
// itself: callers measure elapsed turn time and feed it in, which keeps the
// engine deterministic and testable. LastTurnStart is stored so a driving
// layer can compute elapsed time and timeout deadlines across restarts.
type Clock struct {
	control       TimeControl
	remaining     map[Side]time.Duration
	LastTurnStart time.Time
}

// NewClock returns a clock with both sides at the control's initial time.
func NewClock(control TimeControl) *Clock {
	return &Clock{
		control: control,
		remaining: map[Side]time.Duration{
			Home: control.InitialTime,
			Away: control.InitialTime,
		},
	}
}

// Control returns the clock's time control.
func (c *Clock) Control() TimeControl {
	return c.control
}

// Remaining returns side's remaining budget.
func (c *Clock) Remaining(side Side) time.Duration {
	return c.remaining[side]
}

// SetRemaining overwrites side's budget. Used when rebuilding a clock from
// persisted state.
func (c *Clock) SetRemaining(side Side, d time.Duration) {
	c.remaining[side] = d
}

// RecordTurnElapsed settles one completed turn for side: the elapsed time
// beyond the fixed extra is deducted, then the increment is credited. The
// increment applies even to turns shorter than the fixed extra.
func (c *Clock) RecordTurnElapsed(side Side, elapsed time.Duration) {
	if elapsed > c.control.FixedExtra {
		c.remaining[side] -= elapsed - c.control.FixedExtra
	}
	c.remaining[side] += c.control.Increment
}

// TurnEnd marks now as the start of the next turn.
func (c *Clock) TurnEnd(now time.Time) {
	c.LastTurnStart = now
}

// ProjectedTimeout returns the instant side runs out of time if their current
// turn never ends. Meaningful only while it is side's turn.
func (c *Clock) ProjectedTimeout(side Side) time.Time {
	return c.LastTurnStart.Add(c.remaining[side] + c.control.FixedExtra)
}
