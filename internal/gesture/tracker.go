// Package gesture detects a fast pointer flick and turns it into a one-shot
// trigger.
package gesture

import (
	"math"
	"time"
)

// minElapsed floors the time between samples so two events carrying the
// same timestamp do not divide by zero.
const minElapsed = time.Millisecond

// Tracker keeps the last pointer sample and the speed between the last two.
// Speed is measured in pixels per millisecond.
type Tracker struct {
	x, y    float64
	at      time.Time
	speed   float64
	samples int
}

// Sample records a pointer position and returns the speed since the previous
// sample. ok is false for the very first sample, which has nothing to compare
// against.
func (t *Tracker) Sample(x, y float64, at time.Time) (speed float64, ok bool) {
	if t.samples > 0 {
		elapsed := at.Sub(t.at)
		if elapsed < minElapsed {
			elapsed = minElapsed
		}
		ms := float64(elapsed) / float64(time.Millisecond)
		t.speed = math.Hypot(x-t.x, y-t.y) / ms
		ok = true
	}
	t.x, t.y, t.at = x, y, at
	t.samples++
	return t.speed, ok
}

// Speed is the last measured speed; zero until two samples exist.
func (t *Tracker) Speed() float64 { return t.speed }

func (t *Tracker) Samples() int { return t.samples }
