package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-dashboard/internal/prayer"
)

var (
	flagFormat string
	flagAt     string
)

func newNextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next prayer with countdown",
		Long: "Display the next upcoming prayer with a countdown, on one line for status bars.\n\n" +
			"Formats: " + strings.Join(prayer.FormatModes, ", ") + ", or a Go template such as\n" +
			"  '{{.Name}} in {{.Remaining}}'\n" +
			"Template fields: .Name .ArabicName .ShortName .Time .Remaining .Countdown .Current .Hours .Minutes",
		Args: cobra.NoArgs,
		RunE: runNext,
	}

	cmd.Flags().StringVar(&flagFormat, "format", prayer.FormatFull, "Display format mode or Go template")
	cmd.Flags().StringVar(&flagAt, "at", "", `Evaluate at another instant, e.g. "tomorrow 4am" or "in 3 hours"`)

	return cmd
}

func runNext(cmd *cobra.Command, args []string) error {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}

	now := time.Now()
	if flagAt != "" {
		if now, err = parseInstant(flagAt, now); err != nil {
			return err
		}
	}

	svc := openServices()
	defer svc.Close()

	loc, err := resolveLocation(cmd, cfg, svc)
	if err != nil {
		return err
	}

	day, err := svc.days.Fetch(cmd.Context(), loc, cfg.Settings(), now)
	if err != nil {
		return fmt.Errorf("failed to fetch prayer times: %w", err)
	}
	if day.Location != nil {
		now = now.In(day.Location)
	}

	sel := prayer.Select(day.Prayers, now)
	if sel.Next == nil {
		return fmt.Errorf("could not determine next prayer")
	}
	fmt.Fprint(cmd.OutOrStdout(), prayer.FormatOutput(sel, now, flagFormat, cfg.TimeLayout()))
	return nil
}

// parseInstant reads a natural-language instant relative to now.
func parseInstant(expr string, now time.Time) (time.Time, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" || strings.EqualFold(expr, "now") {
		return now, nil
	}

	cfg := &dateparser.Configuration{
		CurrentTime: now,
	}
	result, err := dateparser.Parse(cfg, expr)
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot parse --at %q: %w", expr, err)
	}
	return result.Time, nil
}
