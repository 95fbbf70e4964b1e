// Package calendar provides today's Gregorian and Hijri dates and the
// midnight boundary the dashboard refreshes on.
package calendar

import (
	"fmt"
	"time"

	"github.com/hablullah/go-hijri"

	"github.com/smokyabdulrahman/prayer-dashboard/internal/api"
)

// HijriMonths holds the transliterated Hijri month names, Muharram first.
var HijriMonths = [12]string{
	"Muharram",
	"Safar",
	"Rabi' al-Awwal",
	"Rabi' al-Thani",
	"Jumada al-Ula",
	"Jumada al-Akhirah",
	"Rajab",
	"Sha'ban",
	"Ramadan",
	"Shawwal",
	"Dhu al-Qi'dah",
	"Dhu al-Hijjah",
}

// Dates is one calendar day in both calendars, formatted for display.
type Dates struct {
	Gregorian string // "19 October 2026"
	Hijri     string // "27 Rabi' al-Thani 1448 AH", empty when out of range
}

// Today returns the dates for now's calendar day.
func Today(now time.Time) Dates {
	d := Dates{Gregorian: now.Format("2 January 2006")}
	if h, err := Hijri(now); err == nil {
		d.Hijri = h
	}
	return d
}

// Hijri converts now's day using the Umm al-Qura calendar. The tables
// cover 1356 AH to 1500 AH; dates outside that range return an error.
func Hijri(now time.Time) (string, error) {
	// Umm al-Qura days run midnight to midnight; go-hijri reads the civil
	// date, so pin it to noon to stay clear of the boundary.
	noon := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, now.Location())

	date, err := hijri.CreateUmmAlQuraDate(noon)
	if err != nil {
		return "", fmt.Errorf("hijri date for %s: %w", now.Format("2006-01-02"), err)
	}
	month := int(date.Month)
	if month < 1 || month > 12 {
		return "", fmt.Errorf("hijri date for %s: month %d out of range", now.Format("2006-01-02"), month)
	}
	return fmt.Sprintf("%d %s %d AH", int(date.Day), HijriMonths[month-1], int(date.Year)), nil
}

// WithAPI replaces the Hijri date with the one the timings API reported,
// when it reported one.
func (d Dates) WithAPI(h api.HijriDate) Dates {
	if s := h.Format(); s != "" {
		d.Hijri = s
	}
	return d
}

// NextMidnight returns the start of the day after now, in now's location.
func NextMidnight(now time.Time) time.Time {
	y, m, day := now.Date()
	return time.Date(y, m, day+1, 0, 0, 0, 0, now.Location())
}

// UntilMidnight returns how long until the next midnight. It is always
// positive.
func UntilMidnight(now time.Time) time.Duration {
	d := NextMidnight(now).Sub(now)
	if d <= 0 {
		// DST edge where midnight does not exist; retry in a minute.
		return time.Minute
	}
	return d
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
