package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-dashboard/internal/display"
	"github.com/smokyabdulrahman/prayer-dashboard/internal/geo"
)

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search for a place",
		Long: "Look up places by name and print their coordinates.\n\n" +
			"Save one with:\n  prayer-dashboard config set latitude <lat>\n  prayer-dashboard config set longitude <lon>",
		Args: cobra.MinimumNArgs(1),
		RunE: runSearch,
	}
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	svc := openServices()
	defer svc.Close()

	results, err := svc.candidates.Search(cmd.Context(), query)
	if errors.Is(err, geo.ErrNoResults) {
		return fmt.Errorf("no places match %q", query)
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	printCandidates(cmd.OutOrStdout(), results)
	return nil
}

// printCandidates lists search results, the first one marked as the match
// the dashboard would pick.
func printCandidates(w io.Writer, results []geo.Location) {
	table := display.NewTable([]string{"#", "Place", "Latitude", "Longitude"})
	for i, loc := range results {
		row := []string{
			fmt.Sprint(i + 1),
			loc.Label(),
			fmt.Sprintf("%.4f", loc.Latitude),
			fmt.Sprintf("%.4f", loc.Longitude),
		}
		if i == 0 {
			table.AddStyledRow(row, display.RowNext)
			continue
		}
		table.AddRow(row)
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, table.Render())
	fmt.Fprintln(w)
}
