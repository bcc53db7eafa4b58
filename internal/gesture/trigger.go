package gesture

import (
	"fmt"
	"time"
)

const (
	DefaultThreshold = 80.0 // px/ms
	DefaultCooldown  = 2500 * time.Millisecond
)

// State is the trigger's position in its one-way lifecycle.
type State int

const (
	// Locked: audio has not been unlocked by the user yet.
	Locked State = iota
	// Armed: unlocked and waiting for a fast enough gesture.
	Armed
	// Fired: the gesture happened. Fired is final for the session.
	Fired
)

func (s State) String() string {
	switch s {
	case Locked:
		return "locked"
	case Armed:
		return "armed"
	case Fired:
		return "fired"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Trigger fires once when the pointer moves at or above Threshold after the
// audio gate has been passed. A cooldown window starts on firing; because
// Fired never re-arms, the window expiring changes nothing observable beyond
// Cooling.
type Trigger struct {
	Threshold float64
	Cooldown  time.Duration

	state State
	until time.Time
}

func NewTrigger(threshold float64, cooldown time.Duration) *Trigger {
	return &Trigger{Threshold: threshold, Cooldown: cooldown}
}

func (t *Trigger) State() State { return t.state }

// Unlock moves a locked trigger to Armed. It reports whether the state
// changed.
func (t *Trigger) Unlock() bool {
	if t.state != Locked {
		return false
	}
	t.state = Armed
	return true
}

// Cooling reports whether the cooldown window is still open at the given
// instant.
func (t *Trigger) Cooling(at time.Time) bool {
	return !t.until.IsZero() && at.Before(t.until)
}

// Observe feeds one speed measurement taken at the given instant. It returns
// true exactly when this call fired the trigger.
func (t *Trigger) Observe(speed float64, at time.Time) bool {
	if t.state != Armed || t.Cooling(at) {
		return false
	}
	if speed < t.Threshold {
		return false
	}
	t.state = Fired
	t.until = at.Add(t.Cooldown)
	return true
}
