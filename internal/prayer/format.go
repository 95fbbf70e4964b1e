package prayer

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"
)

// Format constants for display modes.
const (
	FormatTimeRemaining      = "time-remaining"
	FormatCountdown          = "countdown"
	FormatNextPrayerTime     = "next-prayer-time"
	FormatNameAndTime        = "name-and-time"
	FormatNameAndRemaining   = "name-and-remaining"
	FormatShortNameAndTime   = "short-name-and-time"
	FormatShortNameAndRemain = "short-name-and-remaining"
	FormatFull               = "full"
)

// FormatModes lists the built-in modes, for help text.
var FormatModes = []string{
	FormatTimeRemaining, FormatCountdown, FormatNextPrayerTime, FormatNameAndTime,
	FormatNameAndRemaining, FormatShortNameAndTime, FormatShortNameAndRemain, FormatFull,
}

// FormatData is the data passed to custom Go templates.
type FormatData struct {
	Name       string // Full prayer name, e.g. "Asr"
	ArabicName string // e.g. "العصر"
	ShortName  string // Abbreviated name, e.g. "A"
	Time       string // Formatted prayer time, e.g. "15:02" or "3:02 PM"
	Remaining  string // Time remaining, e.g. "2h 15m"
	Countdown  string // Time remaining as HH:MM:SS
	Current    string // Name of the current prayer, empty between windows
	Hours      int    // Whole hours remaining
	Minutes    int    // Remaining minutes after hours
}

// FormatOutput formats the next prayer of sel for display according to
// the chosen format mode. timeFormat should be "15:04" for 24h or
// "3:04 PM" for 12h.
//
// If mode contains "{{", it is treated as a custom Go template string.
// Available template fields: .Name, .ArabicName, .ShortName, .Time,
// .Remaining, .Countdown, .Current, .Hours, .Minutes
//
// Example: "{{.Name}} in {{.Remaining}}" -> "Asr in 2h 15m"
func FormatOutput(sel Selection, now time.Time, mode string, timeFormat string) string {
	if sel.Next == nil {
		return ""
	}
	p := sel.Next
	d := sel.Remaining(now)
	remaining := FormatRemaining(d)
	timeStr := sel.NextAt.Format(timeFormat)
	short := ShortNames[p.Name]

	if strings.Contains(mode, "{{") {
		data := FormatData{
			Name:       p.Name,
			ArabicName: p.ArabicName,
			ShortName:  short,
			Time:       timeStr,
			Remaining:  remaining,
			Countdown:  Countdown(d),
			Hours:      int(d.Hours()),
			Minutes:    int(d.Minutes()) % 60,
		}
		if sel.Current != nil {
			data.Current = sel.Current.Name
		}
		return formatCustom(mode, data)
	}

	switch mode {
	case FormatTimeRemaining:
		return remaining
	case FormatCountdown:
		return Countdown(d)
	case FormatNextPrayerTime:
		return timeStr
	case FormatNameAndTime:
		return fmt.Sprintf("%s %s", p.Name, timeStr)
	case FormatNameAndRemaining:
		return fmt.Sprintf("%s %s", p.Name, remaining)
	case FormatShortNameAndTime:
		return fmt.Sprintf("%s %s", short, timeStr)
	case FormatShortNameAndRemain:
		return fmt.Sprintf("%s %s", short, remaining)
	case FormatFull:
		return fmt.Sprintf("%s %s (%s)", p.Name, timeStr, Countdown(d))
	default:
		return fmt.Sprintf("%s %s", p.Name, timeStr)
	}
}

// formatCustom executes a user-provided Go template string against the FormatData.
func formatCustom(tmpl string, data FormatData) string {
	t, err := template.New("custom").Parse(tmpl)
	if err != nil {
		return fmt.Sprintf("template-err: %v", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Sprintf("template-err: %v", err)
	}

	return buf.String()
}
