package prayer

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Clock is a time of day with minute precision, as the timings API reports it.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses "15:02" or "15:02 (BST)". The timezone suffix the API
// sometimes appends is ignored.
func ParseClock(raw string) (Clock, error) {
	s := strings.TrimSpace(raw)
	if idx := strings.Index(s, " "); idx != -1 {
		s = s[:idx]
	}

	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return Clock{}, fmt.Errorf("invalid time format: %q", raw)
	}

	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return Clock{}, fmt.Errorf("invalid hour in %q", raw)
	}
	min, err := strconv.Atoi(mm)
	if err != nil || min < 0 || min > 59 {
		return Clock{}, fmt.Errorf("invalid minute in %q", raw)
	}

	return Clock{Hour: hour, Minute: min}, nil
}

// On returns the instant of c on day's calendar date, in day's location.
func (c Clock) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour, c.Minute, 0, 0, day.Location())
}

// Before reports whether c is earlier in the day than o.
func (c Clock) Before(o Clock) bool {
	if c.Hour != o.Hour {
		return c.Hour < o.Hour
	}
	return c.Minute < o.Minute
}

// String returns the 24-hour form, e.g. "17:05".
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Format12h returns the 12-hour form, e.g. "5:05 PM" or "12:10 AM".
func (c Clock) Format12h() string {
	ampm := "AM"
	if c.Hour >= 12 {
		ampm = "PM"
	}
	hour := c.Hour % 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour, c.Minute, ampm)
}

// FormatClock12h converts an "HH:mm" string to its 12-hour form.
func FormatClock12h(raw string) (string, error) {
	c, err := ParseClock(raw)
	if err != nil {
		return "", err
	}
	return c.Format12h(), nil
}
