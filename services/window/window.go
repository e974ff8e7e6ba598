// Package window computes the time ranges that bound store queries.
package window

import (
	"math"
	"time"
)

// Day is a fixed 24-hour day; offsets are not calendar-aware.
const Day = 24 * time.Hour

type Direction int

const (
	// Forward looks ahead from now: [now, now+offset].
	Forward Direction = iota
	// Backward is everything strictly before now-offset.
	Backward
)

// Bound is one end of a window.
type Bound struct {
	At        time.Time
	Inclusive bool
}

// Window is a time range. A nil bound is unbounded on that side.
type Window struct {
	Lower *Bound
	Upper *Bound
}

// Compute returns the window offsetDays away from now in the given direction.
func Compute(now time.Time, offsetDays int, dir Direction) Window {
	offset := time.Duration(offsetDays) * Day
	if dir == Backward {
		return Window{Upper: &Bound{At: now.Add(-offset)}}
	}
	return Window{
		Lower: &Bound{At: now, Inclusive: true},
		Upper: &Bound{At: now.Add(offset), Inclusive: true},
	}
}

// Month returns [first instant of month, first instant of next month) in loc.
func Month(year int, month time.Month, loc *time.Location) Window {
	if loc == nil {
		loc = time.UTC
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return Window{
		Lower: &Bound{At: start, Inclusive: true},
		Upper: &Bound{At: start.AddDate(0, 1, 0)},
	}
}

// Contains reports whether t falls inside w.
func (w Window) Contains(t time.Time) bool {
	if w.Lower != nil {
		if t.Before(w.Lower.At) || (!w.Lower.Inclusive && t.Equal(w.Lower.At)) {
			return false
		}
	}
	if w.Upper != nil {
		if t.After(w.Upper.At) || (!w.Upper.Inclusive && t.Equal(w.Upper.At)) {
			return false
		}
	}
	return true
}

// LastInstant is the latest millisecond inside a window with an exclusive upper
// bound, or the upper bound itself when it is inclusive.
func (w Window) LastInstant() time.Time {
	if w.Upper == nil {
		return time.Time{}
	}
	if w.Upper.Inclusive {
		return w.Upper.At
	}
	return w.Upper.At.Add(-time.Millisecond)
}

// DaysUntil counts the days from now to t, rounding any partial day up.
func DaysUntil(now, t time.Time) int {
	return int(math.Ceil(t.Sub(now).Hours() / 24))
}
