package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/smokyabdulrahman/prayer-dashboard/internal/prayer"
)

// Guidance is the verse shown under the prayer cards.
const Guidance = `"Indeed, prayer has been decreed upon the believers a decree of specified times." (Quran 4:103)`

// StaleNote labels prayer cards left from before a refresh.
const StaleNote = "Refreshing, showing previous times"

// View renders the dashboard.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.renderHeader(),
		m.renderDates(),
		m.renderLocation(),
	}

	if m.state != StateDashboard && m.form != nil {
		sections = append(sections,
			StyleBox.Render(m.form.View()),
			m.help.ShortHelpView([]key.Binding{m.keys.Back}),
		)
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	if msg := m.ctrl.Error(); msg != "" {
		sections = append(sections, StyleError.Render(msg))
	}
	if line := m.renderStatus(); line != "" {
		sections = append(sections, line)
	}

	if !m.ctrl.Loading() && len(m.ctrl.Prayers()) > 0 {
		sections = append(sections, m.renderCountdown())
	}
	sections = append(sections, m.renderPrayers())
	sections = append(sections, StyleQuote.Render(Guidance))
	sections = append(sections, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderHeader() string {
	title := StyleTitle.Render("Islamic Prayer Times")
	clock := StyleSubtitle.Render(m.clock.Format("Mon 2 Jan  " + m.clockFmt))
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "   ", clock) + "\n"
}

func (m *Model) renderDates() string {
	d := m.ctrl.Dates(m.clock)
	greg := lipgloss.JoinVertical(lipgloss.Left, StyleLabel.Render("Gregorian"), StyleValue.Render(d.Gregorian))
	parts := []string{greg}
	if d.Hijri != "" {
		hijri := lipgloss.JoinVertical(lipgloss.Left, StyleLabel.Render("Hijri"), StyleValue.Render(d.Hijri))
		parts = append(parts, "    ", hijri)
	}
	return StyleBox.Render(lipgloss.JoinHorizontal(lipgloss.Top, parts...))
}

func (m *Model) renderLocation() string {
	s := m.ctrl.Settings()
	method, ok := prayer.MethodName(s.CalculationMethod)
	if !ok {
		method = fmt.Sprintf("method %d", s.CalculationMethod)
	}
	settings := StyleSubtitle.Render(fmt.Sprintf("%s · %s", method, s.School.Label()))

	loc, ok := m.ctrl.Location()
	if !ok {
		return StyleSubtitle.Render("No location set") + "\n" + settings
	}
	place := StyleValue.Render(loc.Label()) + " " + StyleSubtitle.Render("("+loc.Coordinates()+")")
	return place + "\n" + settings
}

func (m *Model) renderStatus() string {
	var parts []string
	if m.ctrl.Loading() {
		parts = append(parts, m.spinner.View()+" Loading prayer times…")
	}
	if s := m.ctrl.Status(); s != "" {
		parts = append(parts, StyleStatus.Render(s))
	}
	return strings.Join(parts, "  ")
}

func (m *Model) renderCountdown() string {
	var boxes []string

	if cur := m.selection.Current; cur != nil {
		boxes = append(boxes, StyleCurrentBox.Render(lipgloss.JoinVertical(lipgloss.Left,
			StyleLabel.Render("Current Prayer"),
			StyleValue.Render(cur.Name)+"  "+StyleArabic.Render(cur.ArabicName),
			StyleSubtitle.Render("Until "+cur.EndTime),
		)))
	}
	if next := m.selection.Next; next != nil {
		if len(boxes) > 0 {
			boxes = append(boxes, "   ")
		}
		boxes = append(boxes, StyleNextBox.Render(lipgloss.JoinVertical(lipgloss.Left,
			StyleLabel.Render("Next Prayer"),
			StyleValue.Render(next.Name)+"  "+StyleArabic.Render(next.ArabicName),
			StyleSubtitle.Render("Starts at "+next.StartTime),
			StyleCountdown.Render(m.countdown),
		)))
	}
	return StyleBox.Render(lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
}

func (m *Model) renderPrayers() string {
	prayers := m.ctrl.Prayers()
	if len(prayers) == 0 {
		if m.ctrl.Loading() {
			return ""
		}
		return StyleSubtitle.Render("No prayer times to show.")
	}

	refreshing := m.ctrl.Loading()
	cards := make([]string, 0, len(prayers))
	for i := range prayers {
		p := &prayers[i]
		style := StylePrayerCard
		switch {
		case refreshing:
			style = StyleStaleCard
		case p == m.selection.Current:
			style = StyleActiveCard
		}
		cards = append(cards, style.Render(lipgloss.JoinVertical(lipgloss.Left,
			StyleValue.Render(p.Name),
			StyleArabic.Render(p.ArabicName),
			p.StartTime+" - "+p.EndTime,
		)))
	}

	// Each card takes its width plus two border columns.
	var grid string
	if m.width > 0 && m.width < len(cards)*(cardWidth+2) {
		grid = lipgloss.JoinVertical(lipgloss.Left, cards...)
	} else {
		grid = lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	}
	if refreshing {
		return lipgloss.JoinVertical(lipgloss.Left, StyleSubtitle.Render(StaleNote), grid)
	}
	return grid
}
