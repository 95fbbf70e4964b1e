package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-dashboard/internal/calendar"
	"github.com/smokyabdulrahman/prayer-dashboard/internal/display"
	"github.com/smokyabdulrahman/prayer-dashboard/internal/geo"
	"github.com/smokyabdulrahman/prayer-dashboard/internal/prayer"
)

var flagJSON bool

func newTodayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show today's prayer schedule",
		Long:  "Print today's five prayer windows with the current and next prayer.",
		Args:  cobra.NoArgs,
		RunE:  runToday,
	}
	cmd.Flags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	return cmd
}

// schedule is everything the today output shows.
type schedule struct {
	Location   geo.Location
	Timezone   string
	Dates      calendar.Dates
	Settings   prayer.Settings
	Prayers    []prayer.Prayer
	Selection  prayer.Selection
	Now        time.Time
	TimeLayout string
}

func runToday(cmd *cobra.Command, args []string) error {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}

	svc := openServices()
	defer svc.Close()

	loc, err := resolveLocation(cmd, cfg, svc)
	if err != nil {
		return err
	}

	day, err := svc.days.Fetch(cmd.Context(), loc, cfg.Settings(), time.Now())
	if err != nil {
		return fmt.Errorf("failed to fetch prayer times: %w", err)
	}

	s := newSchedule(loc, day, cfg.Settings(), time.Now(), cfg.TimeLayout())
	if flagJSON {
		return printTodayJSON(cmd.OutOrStdout(), s)
	}
	printTodayRich(cmd.OutOrStdout(), s)
	return nil
}

// newSchedule evaluates day at now, in the day's timezone.
func newSchedule(loc geo.Location, day *prayer.Day, settings prayer.Settings, now time.Time, layout string) schedule {
	tz := time.UTC
	if day.Location != nil {
		tz = day.Location
	}
	now = now.In(tz)

	return schedule{
		Location:   loc,
		Timezone:   tz.String(),
		Dates:      calendar.Today(now).WithAPI(day.Date.Hijri),
		Settings:   settings,
		Prayers:    day.Prayers,
		Selection:  prayer.Select(day.Prayers, now),
		Now:        now,
		TimeLayout: layout,
	}
}

// clockTime formats a prayer clock on the schedule's day.
func (s schedule) clockTime(c prayer.Clock) string {
	return c.On(s.Now).Format(s.TimeLayout)
}

// methodLabel returns the calculation method name, or its number when unknown.
func methodLabel(id int) string {
	if name, ok := prayer.MethodName(id); ok {
		return name
	}
	return fmt.Sprintf("method %d", id)
}

// printTodayRich renders the colored terminal output for today's prayer schedule.
func printTodayRich(w io.Writer, s schedule) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Bold("Prayer Times"))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %s %s\n", s.Location.Label(), display.Gray("("+s.Location.Coordinates()+")"))
	fmt.Fprintf(w, "  %s\n", s.Timezone)
	date := s.Dates.Gregorian
	if s.Dates.Hijri != "" {
		date += " · " + s.Dates.Hijri
	}
	fmt.Fprintf(w, "  %s\n", date)
	fmt.Fprintf(w, "  %s\n", display.Dim(methodLabel(s.Settings.CalculationMethod)+" · "+s.Settings.School.Label()))
	fmt.Fprintln(w)

	table := display.NewTable([]string{"Prayer", "", "Start", "End", ""})
	for i := range s.Prayers {
		p := &s.Prayers[i]
		row := []string{p.Name, p.ArabicName, s.clockTime(p.Start), s.clockTime(p.End), ""}

		switch {
		case p == s.Selection.Current:
			row[4] = "<- now"
			table.AddStyledRow(row, display.RowActive)
		case p == s.Selection.Next:
			row[4] = "<- next in " + prayer.FormatRemaining(s.Selection.Remaining(s.Now))
			table.AddStyledRow(row, display.RowNext)
		case p.Start.On(s.Now).Before(s.Now):
			table.AddStyledRow(row, display.RowMuted)
		default:
			table.AddRow(row)
		}
	}
	fmt.Fprint(w, table.Render())
	fmt.Fprintln(w)
}

// todayJSON is the JSON output structure for the today command.
type todayJSON struct {
	Location todayJSONLocation `json:"location"`
	Date     todayJSONDate     `json:"date"`
	Method   int               `json:"method"`
	School   string            `json:"school"`
	Timings  map[string]string `json:"timings"`
	Current  string            `json:"current"`
	Next     *todayJSONNext    `json:"next"`
}

type todayJSONLocation struct {
	City      string  `json:"city,omitempty"`
	Country   string  `json:"country,omitempty"`
	Timezone  string  `json:"timezone"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type todayJSONDate struct {
	Gregorian string `json:"gregorian"`
	Hijri     string `json:"hijri"`
}

type todayJSONNext struct {
	Prayer    string `json:"prayer"`
	Time      string `json:"time"`
	Remaining string `json:"remaining"`
	Countdown string `json:"countdown"`
}

// printTodayJSON renders structured JSON output.
func printTodayJSON(w io.Writer, s schedule) error {
	timings := make(map[string]string, len(s.Prayers))
	for _, p := range s.Prayers {
		timings[strings.ToLower(p.Name)] = s.clockTime(p.Start)
	}

	out := todayJSON{
		Location: todayJSONLocation{
			City:      s.Location.City,
			Country:   s.Location.Country,
			Timezone:  s.Timezone,
			Latitude:  s.Location.Latitude,
			Longitude: s.Location.Longitude,
		},
		Date: todayJSONDate{
			Gregorian: s.Dates.Gregorian,
			Hijri:     s.Dates.Hijri,
		},
		Method:  s.Settings.CalculationMethod,
		School:  s.Settings.School.String(),
		Timings: timings,
	}

	if cur := s.Selection.Current; cur != nil {
		out.Current = strings.ToLower(cur.Name)
	}
	if next := s.Selection.Next; next != nil {
		d := s.Selection.Remaining(s.Now)
		out.Next = &todayJSONNext{
			Prayer:    strings.ToLower(next.Name),
			Time:      s.Selection.NextAt.Format(s.TimeLayout),
			Remaining: prayer.FormatRemaining(d),
			Countdown: prayer.Countdown(d),
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}
