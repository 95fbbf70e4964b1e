package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/smokyabdulrahman/prayer-dashboard/internal/prayer"
)

// SearchFormModel backs the location search form.
type SearchFormModel struct {
	Query string
}

// SettingsFormModel backs the calculation settings form.
type SettingsFormModel struct {
	Method int
	School prayer.School
}

// NewSearchForm creates the manual location entry form.
func NewSearchForm(fm *SearchFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Location").
				Description("City, address or place name").
				Placeholder("e.g. London, United Kingdom").
				Value(&fm.Query).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("enter a place to search for")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula()).WithShowHelp(false)
}

// NewSettingsForm creates the calculation settings form.
func NewSettingsForm(fm *SettingsFormModel) *huh.Form {
	methods := make([]huh.Option[int], 0, len(prayer.Methods))
	for _, m := range prayer.Methods {
		methods = append(methods, huh.NewOption(fmt.Sprintf("%2d  %s", m.ID, m.Name), m.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Calculation Method").
				Options(methods...).
				Height(8).
				Value(&fm.Method),
			huh.NewSelect[prayer.School]().
				Title("Juristic School (Asr)").
				Options(
					huh.NewOption(prayer.SchoolStandard.Label(), prayer.SchoolStandard),
					huh.NewOption(prayer.SchoolHanafi.Label(), prayer.SchoolHanafi),
				).
				Value(&fm.School),
		),
	).WithTheme(huh.ThemeDracula()).WithShowHelp(false)
}
