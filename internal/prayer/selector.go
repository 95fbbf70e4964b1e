package prayer

import (
	"fmt"
	"time"
)

// Selection is the outcome of Select: the prayer whose window contains now
// (if any), the prayer that starts next, and when it starts.
type Selection struct {
	Current *Prayer
	Next    *Prayer
	// NextAt is the instant Next starts. It is always after the instant the
	// selection was made for, possibly on the following calendar day.
	NextAt time.Time

	currentIdx int
}

// Remaining returns the time left until the next prayer starts.
func (s Selection) Remaining(now time.Time) time.Duration {
	return s.NextAt.Sub(now)
}

// Select determines the current and next prayer for now. Activity is
// recomputed from each window; the IsActive flags on the list are ignored.
// The last entry (Isha) is treated as crossing midnight.
func Select(prayers []Prayer, now time.Time) Selection {
	sel := Selection{currentIdx: -1}
	if len(prayers) == 0 {
		return sel
	}

	last := len(prayers) - 1
	for i := range prayers {
		if IsActiveWindow(prayers[i].Start, prayers[i].End, i == last, now) {
			sel.currentIdx = i
			sel.Current = &prayers[i]
			break
		}
	}

	if sel.Current != nil {
		next := (sel.currentIdx + 1) % len(prayers)
		sel.Next = &prayers[next]
		sel.NextAt = nextOccurrence(prayers[next].Start, now)
		return sel
	}

	// Between windows: project each start onto today, or onto tomorrow when
	// its hour has already gone by, and take the earliest one still ahead.
	best := -1
	var bestAt time.Time
	for i := range prayers {
		at := prayers[i].Start.On(now)
		if at.Hour() < now.Hour() {
			at = at.AddDate(0, 0, 1)
		}
		if at.After(now) && (best < 0 || at.Before(bestAt)) {
			best, bestAt = i, at
		}
	}

	// Nothing ahead today: the first prayer, tomorrow.
	if best < 0 {
		best = 0
		bestAt = prayers[0].Start.On(now).AddDate(0, 0, 1)
	}

	sel.Next = &prayers[best]
	sel.NextAt = bestAt
	return sel
}

// nextOccurrence returns the first instant strictly after now whose time of
// day is c.
func nextOccurrence(c Clock, now time.Time) time.Time {
	at := c.On(now)
	if !at.After(now) {
		at = at.AddDate(0, 0, 1)
	}
	return at
}

// Countdown formats d as zero-padded HH:MM:SS. Negative durations render
// as 00:00:00.
func Countdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// Tracker keeps a Selection for one prayer list and refreshes it when the
// countdown runs out or the current window closes.
type Tracker struct {
	prayers []Prayer
	sel     Selection
	ready   bool
}

// NewTracker creates a Tracker over prayers.
func NewTracker(prayers []Prayer) *Tracker {
	return &Tracker{prayers: prayers}
}

// Reset replaces the prayer list; the next Tick selects afresh.
func (t *Tracker) Reset(prayers []Prayer) {
	t.prayers = prayers
	t.sel = Selection{}
	t.ready = false
}

// Tick returns the selection for now and the countdown to the next prayer.
func (t *Tracker) Tick(now time.Time) (Selection, string) {
	if len(t.prayers) == 0 {
		return Selection{currentIdx: -1}, Countdown(0)
	}
	if !t.ready || t.stale(now) {
		t.sel = Select(t.prayers, now)
		t.ready = true
	}
	return t.sel, Countdown(t.sel.Remaining(now))
}

func (t *Tracker) stale(now time.Time) bool {
	if t.sel.Remaining(now) <= 0 {
		return true
	}
	if t.sel.Current == nil {
		return false
	}
	c := t.sel.Current
	return !IsActiveWindow(c.Start, c.End, t.sel.currentIdx == len(t.prayers)-1, now)
}
