package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/smokyabdulrahman/prayer-dashboard/internal/config"
	"github.com/smokyabdulrahman/prayer-dashboard/internal/geo"
	"github.com/smokyabdulrahman/prayer-dashboard/internal/logging"
	"github.com/smokyabdulrahman/prayer-dashboard/internal/tui"
)

// Global flags shared across all subcommands.
var (
	FlagCity       string
	FlagCountry    string
	FlagLatitude   float64
	FlagLongitude  float64
	FlagMethod     int
	FlagSchool     string
	FlagTimeFormat string
	FlagLogLevel   string
)

// dotenvFile is read for PRAYER_DASHBOARD_* overrides when present.
const dotenvFile = ".env"

// loadedConfig holds the config file merged with environment overrides,
// loaded during PersistentPreRunE.
var loadedConfig *config.Config

// NewRootCmd creates the root command for the prayer-dashboard CLI.
// The version parameter is set by the calling binary via ldflags.
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "prayer-dashboard",
		Short:   "Islamic prayer times dashboard",
		Long:    "A terminal dashboard for the five daily prayers, powered by the Al Adhan API.\nRun without a subcommand to open the live dashboard.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			env, err := config.Environ(dotenvFile)
			if err != nil {
				return err
			}
			if err := cfg.ApplyEnv(env); err != nil {
				return err
			}
			loadedConfig = cfg

			eff, err := effectiveConfig(cmd)
			if err != nil {
				return err
			}
			level, err := logging.ParseLevel(eff.LogLevel)
			if err != nil {
				return err
			}
			logging.Console(level)
			return nil
		},
		RunE:          runDashboard,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(PrintVersion(version))

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&FlagCity, "city", "", "Override city (searched when no coordinates are set)")
	pf.StringVar(&FlagCountry, "country", "", "Override country")
	pf.Float64Var(&FlagLatitude, "latitude", 0, "Override latitude")
	pf.Float64Var(&FlagLongitude, "longitude", 0, "Override longitude")
	pf.IntVar(&FlagMethod, "method", -1, "Override calculation method (see `methods`)")
	pf.StringVar(&FlagSchool, "school", "", "Override school: standard or hanafi")
	pf.StringVar(&FlagTimeFormat, "time-format", "", "Time format: 12h or 24h (overrides config)")
	pf.StringVar(&FlagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(newTodayCmd())
	rootCmd.AddCommand(newNextCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newMethodsCmd())

	return rootCmd
}

// PrintVersion prints the version string in the expected format.
func PrintVersion(version string) string {
	return fmt.Sprintf("prayer-dashboard %s\n", version)
}

// runDashboard opens the live dashboard. Logs go to a file while it owns
// the terminal.
func runDashboard(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("the dashboard needs a terminal; use `prayer-dashboard today` for plain output")
	}

	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	closer, err := logging.ToFile(logging.Path(), level)
	if err != nil {
		return err
	}
	defer closer.Close()

	svc := openServices()
	defer svc.Close()

	ctx := cmd.Context()
	opts := tui.Options{
		Context:    ctx,
		Services:   svc.app(),
		Settings:   cfg.Settings(),
		TimeFormat: clockLayout(cfg.TimeFormat),
	}

	// Configured places are resolved up front. Without one the dashboard
	// detects the device location itself.
	if loc, ok := cfg.Location(); ok {
		opts.Location = &loc
	} else if q := cityQuery(cfg); q != "" {
		loc, err := svc.places.Search(ctx, q)
		if err != nil {
			log.Warn().Err(err).Str("query", q).Msg("[cli] configured city not found, detecting location")
		} else {
			opts.Location = &loc
		}
	}

	p := tea.NewProgram(tui.New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}

// clockLayout returns the header clock layout for a time_format value.
func clockLayout(format string) string {
	if format == "12h" {
		return "3:04:05 PM"
	}
	return "15:04:05"
}

// effectiveConfig returns the merged configuration values,
// applying the priority: CLI flags > environment > config file > defaults.
// It uses cobra's Changed() to detect whether a flag was explicitly set.
func effectiveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Config{}
	if loadedConfig != nil {
		cfg = *loadedConfig
	}
	defaults := config.Defaults()

	flags := cmd.Flags()
	root := cmd.Root().PersistentFlags()

	if flagWasSet(flags, root, "city") {
		cfg.City = FlagCity
	}
	if flagWasSet(flags, root, "country") {
		cfg.Country = FlagCountry
	}
	if flagWasSet(flags, root, "latitude") {
		if err := cfg.Set("latitude", fmt.Sprint(FlagLatitude)); err != nil {
			return nil, err
		}
	}
	if flagWasSet(flags, root, "longitude") {
		if err := cfg.Set("longitude", fmt.Sprint(FlagLongitude)); err != nil {
			return nil, err
		}
	}

	// Flag values go through Set so they are validated like config values.
	overrides := []struct{ key, flag, value string }{
		{"method", "method", fmt.Sprint(FlagMethod)},
		{"school", "school", FlagSchool},
		{"time_format", "time-format", FlagTimeFormat},
		{"log_level", "log-level", FlagLogLevel},
	}
	for _, o := range overrides {
		if !flagWasSet(flags, root, o.flag) {
			continue
		}
		if err := cfg.Set(o.key, o.value); err != nil {
			return nil, fmt.Errorf("--%s: %w", o.flag, err)
		}
	}

	if cfg.Method == nil {
		cfg.Method = defaults.Method
	}
	if cfg.School == "" {
		cfg.School = defaults.School
	}
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = defaults.TimeFormat
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}

	return &cfg, nil
}

// flagWasSet checks if a flag was explicitly set on either the local or persistent flag set.
func flagWasSet(local, persistent *pflag.FlagSet, name string) bool {
	if f := local.Lookup(name); f != nil && f.Changed {
		return true
	}
	if f := persistent.Lookup(name); f != nil && f.Changed {
		return true
	}
	return false
}

// cityQuery builds a geocoding query from the configured city and country.
func cityQuery(cfg *config.Config) string {
	switch {
	case cfg.City == "":
		return ""
	case cfg.Country == "":
		return cfg.City
	default:
		return cfg.City + ", " + cfg.Country
	}
}

// resolveLocation determines the location for one-shot commands.
// Priority: coordinates > city search > IP auto-detect.
func resolveLocation(cmd *cobra.Command, cfg *config.Config, svc *services) (geo.Location, error) {
	ctx := cmd.Context()

	if loc, ok := cfg.Location(); ok {
		return loc, nil
	}
	if q := cityQuery(cfg); q != "" {
		loc, err := svc.places.Search(ctx, q)
		if err != nil {
			return geo.Location{}, fmt.Errorf("cannot find %q: %w", q, err)
		}
		return loc, nil
	}

	loc, err := svc.places.Current(ctx)
	if err != nil {
		return geo.Location{}, fmt.Errorf("no location specified and auto-detection failed: %w", err)
	}
	return loc, nil
}
