// Package prayer turns raw API timings into the five daily prayers and
// decides, for any instant, which prayer is current and which comes next.
package prayer

import (
	"fmt"
	"time"

	"github.com/smokyabdulrahman/prayer-dashboard/internal/api"
)

// Names lists the five daily prayers in their fixed liturgical order.
var Names = []string{"Fajr", "Dhuhr", "Asr", "Maghrib", "Isha"}

// ArabicNames maps each prayer to its Arabic display name.
var ArabicNames = map[string]string{
	"Fajr":    "الفجر",
	"Dhuhr":   "الظهر",
	"Asr":     "العصر",
	"Maghrib": "المغرب",
	"Isha":    "العشاء",
}

// ShortNames maps prayer names to single-character abbreviations.
var ShortNames = map[string]string{
	"Fajr":    "F",
	"Dhuhr":   "D",
	"Asr":     "A",
	"Maghrib": "M",
	"Isha":    "I",
}

// Prayer is one prayer window of the day.
type Prayer struct {
	Name       string
	ArabicName string
	Start      Clock
	End        Clock
	StartTime  string // 12-hour display form of Start
	EndTime    string // 12-hour display form of End
	// IsActive is evaluated once when the list is built. It goes stale;
	// use Select for anything live.
	IsActive bool
}

// FromTimings builds the five prayers from API timings. Each window ends
// where the next one starts, except Fajr which ends at Sunrise and Isha
// which ends at the following day's Fajr.
func FromTimings(t api.Timings, now time.Time) ([]Prayer, error) {
	bounds := []struct{ name, start, end string }{
		{"Fajr", t.Fajr, t.Sunrise},
		{"Dhuhr", t.Dhuhr, t.Asr},
		{"Asr", t.Asr, t.Maghrib},
		{"Maghrib", t.Maghrib, t.Isha},
		{"Isha", t.Isha, t.Fajr},
	}

	prayers := make([]Prayer, 0, len(bounds))
	for i, b := range bounds {
		start, err := ParseClock(b.start)
		if err != nil {
			return nil, fmt.Errorf("%w: %s start: %v", api.ErrMalformed, b.name, err)
		}
		end, err := ParseClock(b.end)
		if err != nil {
			return nil, fmt.Errorf("%w: %s end: %v", api.ErrMalformed, b.name, err)
		}

		prayers = append(prayers, Prayer{
			Name:       b.name,
			ArabicName: ArabicNames[b.name],
			Start:      start,
			End:        end,
			StartTime:  start.Format12h(),
			EndTime:    end.Format12h(),
			IsActive:   IsActiveWindow(start, end, i == len(bounds)-1, now),
		})
	}
	return prayers, nil
}

// FormatRemaining formats a duration as "Xh Ym" or "Ym" if less than an hour.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		return "0m"
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
