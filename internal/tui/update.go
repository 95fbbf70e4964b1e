package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/smokyabdulrahman/prayer-dashboard/internal/app"
	"github.com/smokyabdulrahman/prayer-dashboard/internal/prayer"
)

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		m.advance(time.Time(msg))
		return m, tickCmd()

	case midnightMsg:
		if msg.gen != m.midnightGen {
			return m, nil
		}
		m.advance(msg.at)
		cmds := []tea.Cmd{m.midnightCmd(msg.at)}
		if req, ok := m.ctrl.Refresh(); ok {
			cmds = append(cmds, m.fetchCmd(req))
		}
		return m, tea.Batch(cmds...)

	case fetchDoneMsg:
		if !m.ctrl.ApplyFetch(app.FetchResult(msg)) {
			return m, nil
		}
		now := m.now()
		m.advance(now)
		if msg.Err != nil {
			return m, nil
		}
		// The day may be in another timezone than the last schedule.
		return m, m.midnightCmd(now)

	case locateDoneMsg:
		var cmd tea.Cmd
		if req, ok := m.ctrl.ApplyLocate(app.LocateResult(msg)); ok {
			cmd = m.fetchCmd(req)
		}
		if m.ctrl.TakeFormRequest() && m.state == StateDashboard {
			return m, tea.Batch(cmd, m.openSearch())
		}
		return m, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.state != StateDashboard {
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKeyPress(msg)
	}
	return m, nil
}

// advance moves the clock and countdown to now.
func (m *Model) advance(now time.Time) {
	m.clock = now
	m.selection, m.countdown = m.ctrl.Tick(now)
}

// handleKeyPress handles keyboard input on the dashboard.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Search):
		return m, m.openSearch()

	case key.Matches(msg, m.keys.Locate):
		return m, m.locateCmd(m.ctrl.BeginLocate(app.LookupDetect, ""))

	case key.Matches(msg, m.keys.Settings):
		return m, m.openSettings()

	case key.Matches(msg, m.keys.Refresh):
		if req, ok := m.ctrl.Refresh(); ok {
			return m, m.fetchCmd(req)
		}
		m.ctrl.SetStatus("Set a location first")
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	return m, nil
}

func (m *Model) openSearch() tea.Cmd {
	m.searchForm = &SearchFormModel{}
	m.form = NewSearchForm(m.searchForm)
	m.state = StateSearch
	return m.form.Init()
}

func (m *Model) openSettings() tea.Cmd {
	s := m.ctrl.Settings()
	m.settingsForm = &SettingsFormModel{Method: s.CalculationMethod, School: s.School}
	m.form = NewSettingsForm(m.settingsForm)
	m.state = StateSettings
	return m.form.Init()
}

func (m *Model) closeForm() {
	m.form = nil
	m.state = StateDashboard
}

// updateForm routes input to the open form and applies it once submitted.
func (m *Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Back):
			m.closeForm()
			return m, nil
		case msg.String() == "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		cmds = append(cmds, m.submitForm())
		m.closeForm()
	case huh.StateAborted:
		m.closeForm()
	}
	return m, tea.Batch(cmds...)
}

// submitForm applies the completed form to the controller.
func (m *Model) submitForm() tea.Cmd {
	switch m.state {
	case StateSearch:
		q := strings.TrimSpace(m.searchForm.Query)
		return m.locateCmd(m.ctrl.BeginLocate(app.LookupSearch, q))

	case StateSettings:
		req, ok := m.ctrl.SetSettings(prayer.Settings{
			CalculationMethod: m.settingsForm.Method,
			School:            m.settingsForm.School,
		})
		if ok {
			return m.fetchCmd(req)
		}
	}
	return nil
}
