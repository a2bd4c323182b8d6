package monitor

import "time"

// DefaultFrameInterval caps emissions at 24 per second.
const DefaultFrameInterval = time.Second / 24

// Throttle decides when a mutation may be emitted.
type Throttle struct {
	Interval time.Duration

	last    time.Time
	emitted bool
}

func NewThrottle(interval time.Duration) *Throttle {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &Throttle{Interval: interval}
}

// Allow reports whether at least Interval has passed since the last emission
// and, if so, records now as the last emission.
func (t *Throttle) Allow(now time.Time) bool {
	if t.emitted && now.Sub(t.last) < t.Interval {
		return false
	}
	t.Mark(now)
	return true
}

// Mark records an emission that bypassed the cap.
func (t *Throttle) Mark(now time.Time) {
	t.last = now
	t.emitted = true
}

func (t *Throttle) LastEmit() (time.Time, bool) {
	return t.last, t.emitted
}
