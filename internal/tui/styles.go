// Package tui provides the interactive terminal dashboard.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette for the dashboard.
var (
	ColorPrimary = lipgloss.Color("#4F46E5") // Indigo
	ColorActive  = lipgloss.Color("#0D9488") // Teal
	ColorAccent  = lipgloss.Color("#F59E0B") // Gold
	ColorMuted   = lipgloss.Color("#6B7280") // Gray
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorBorder  = lipgloss.Color("#4B5563") // Dark gray
	ColorText    = lipgloss.Color("#E5E7EB")
)

// Base styles.
var (
	// StyleTitle is used for the dashboard header.
	StyleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// StyleSubtitle is used for secondary information.
	StyleSubtitle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleLabel is used for small captions above values.
	StyleLabel = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// StyleValue is used for primary values.
	StyleValue = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText)

	// StyleArabic is used for Arabic prayer names.
	StyleArabic = lipgloss.NewStyle().
			Foreground(ColorAccent)

	// StyleCountdown is used for the HH:MM:SS countdown.
	StyleCountdown = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// StyleError is used for the error banner.
	StyleError = lipgloss.NewStyle().
			Foreground(ColorError).
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(ColorError).
			PaddingLeft(1).
			MarginBottom(1)

	// StyleStatus is used for transient notes.
	StyleStatus = lipgloss.NewStyle().
			Foreground(ColorAccent)

	// StyleQuote is used for the guidance footer.
	StyleQuote = lipgloss.NewStyle().
			Italic(true).
			Foreground(ColorMuted).
			MarginTop(1)
)

// Box styles.
var (
	// StyleBox frames a dashboard section.
	StyleBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	// StyleCurrentBox frames the current prayer in the countdown card.
	StyleCurrentBox = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(ColorActive).
			Padding(0, 1)

	// StyleNextBox frames the next prayer in the countdown card.
	StyleNextBox = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(ColorPrimary).
			Padding(0, 1)

	// StylePrayerCard frames one prayer.
	StylePrayerCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1).
			Width(cardWidth)

	// StyleStaleCard frames prayers kept on screen while a refresh runs.
	StyleStaleCard = StylePrayerCard.
			Foreground(ColorMuted).
			Faint(true)

	// StyleActiveCard frames the prayer whose window contains now.
	StyleActiveCard = StylePrayerCard.
			BorderForeground(ColorActive).
			Bold(true)
)

// cardWidth is the inner width of a prayer card.
const cardWidth = 22
