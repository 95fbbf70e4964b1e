package prayer

import "time"

// IsActiveWindow reports whether now's time of day lies in [start, end).
//
// With wraparound set and end earlier than start, the window crosses
// midnight. Both occurrences are considered: the one that began yesterday
// and runs until end today, and the one that begins today at start.
func IsActiveWindow(start, end Clock, wraparound bool, now time.Time) bool {
	s := start.On(now)
	e := end.On(now)

	if wraparound && e.Before(s) {
		return now.Before(e) || !now.Before(s)
	}
	return !now.Before(s) && now.Before(e)
}
