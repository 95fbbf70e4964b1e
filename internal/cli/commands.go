package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/prayer-dashboard/internal/config"
	"github.com/smokyabdulrahman/prayer-dashboard/internal/display"
	"github.com/smokyabdulrahman/prayer-dashboard/internal/prayer"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or modify configuration",
		Long:  "Display current configuration, or use subcommands to modify it.\nWhen run without subcommands, shows the current configuration.",
		RunE:  runConfigShow,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value",
		Long: fmt.Sprintf("Set a configuration value. Valid keys: %s\n\nExamples:\n  prayer-dashboard config set city Riyadh\n  prayer-dashboard config set country \"Saudi Arabia\"\n  prayer-dashboard config set method 4\n  prayer-dashboard config set school hanafi\n  prayer-dashboard config set time_format 12h\n\nEvery key can also be overridden with %s<KEY>, in the environment or a .env file.",
			strings.Join(config.ValidKeys, ", "), config.EnvPrefix),
		Args: cobra.ExactArgs(2),
		RunE: runConfigSet,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Reset config to defaults",
		Long:  "Delete the config file and restore all settings to defaults.",
		Args:  cobra.NoArgs,
		RunE:  runConfigReset,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print config file path",
		Args:  cobra.NoArgs,
		RunE:  runConfigPath,
	})

	return cmd
}

// runConfigShow displays the configuration file merged with environment overrides.
func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := loadedConfig
	if cfg == nil {
		var err error
		if cfg, err = config.Load(); err != nil {
			return err
		}
	}
	printConfig(cmd.OutOrStdout(), config.Path(), cfg)
	return nil
}

// printConfig lists every key with its value, or "(not set)".
func printConfig(w io.Writer, path string, cfg *config.Config) {
	fmt.Fprintf(w, "  Configuration (%s)\n\n", path)

	for _, key := range config.ValidKeys {
		val, _ := cfg.Get(key)
		shown := val
		if shown == "" {
			shown = display.Dim("(not set)")
		}
		switch {
		case key == "method" && val != "":
			shown = formatMethodValue(val)
		case key == "school" && val != "":
			shown = formatSchoolValue(val)
		}
		fmt.Fprintf(w, "  %-14s %s\n", key, shown)
	}
}

// runConfigSet sets a config key to the given value. Environment overrides
// are not written back.
func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := cfg.Set(key, value); err != nil {
		return err
	}

	if err := cfg.Save(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s\n", display.Green("Set"), key, value)
	return nil
}

// runConfigReset deletes the config file.
func runConfigReset(cmd *cobra.Command, args []string) error {
	if err := config.Reset(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), display.Green("Configuration reset to defaults."))
	return nil
}

// runConfigPath prints the config file path.
func runConfigPath(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), config.Path())
	return nil
}

// formatMethodValue adds the method name to the numeric value.
func formatMethodValue(val string) string {
	for _, m := range prayer.Methods {
		if fmt.Sprint(m.ID) == val {
			return fmt.Sprintf("%s (%s)", val, m.Name)
		}
	}
	return val
}

// formatSchoolValue adds the readable school name.
func formatSchoolValue(val string) string {
	s, err := prayer.ParseSchool(val)
	if err != nil {
		return val
	}
	return fmt.Sprintf("%s (%s)", val, s.Label())
}

func newMethodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List all calculation methods",
		Long:  "Print the table of all supported Al Adhan API calculation methods.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printMethods(cmd.OutOrStdout())
			return nil
		},
	}
}

// printMethods prints the method table with the default marked.
func printMethods(w io.Writer) {
	fmt.Fprintln(w, "Supported calculation methods:")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-4s %s\n", "ID", "Name")
	fmt.Fprintf(w, "  %-4s %s\n", "──", "────")
	for _, m := range prayer.Methods {
		name := m.Name
		if m.ID == prayer.DefaultMethod {
			name += display.Dim(" (default)")
		}
		fmt.Fprintf(w, "  %-4d %s\n", m.ID, name)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Use --method <ID> or `prayer-dashboard config set method <ID>` to select one.")
}
