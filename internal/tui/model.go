package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/smokyabdulrahman/prayer-dashboard/internal/app"
	"github.com/smokyabdulrahman/prayer-dashboard/internal/geo"
	"github.com/smokyabdulrahman/prayer-dashboard/internal/prayer"
)

// SessionState is what the dashboard is currently showing.
type SessionState int

const (
	StateDashboard SessionState = iota
	StateSearch
	StateSettings
)

// tickMsg drives the clock and countdown once per second.
type tickMsg time.Time

// midnightMsg marks the start of a new day at the prayer location. Only
// the most recently scheduled one is acted on.
type midnightMsg struct {
	at  time.Time
	gen uint64
}

// fetchDoneMsg carries a finished timings fetch.
type fetchDoneMsg app.FetchResult

// locateDoneMsg carries a finished location lookup.
type locateDoneMsg app.LocateResult

// Options configures a dashboard.
type Options struct {
	Context  context.Context
	Services *app.Services
	Settings prayer.Settings
	// Location starts the dashboard at a fixed place. When nil the device
	// location is detected.
	Location *geo.Location
	// TimeFormat is the Go layout for the header clock.
	TimeFormat string
	// Now replaces time.Now, for tests.
	Now func() time.Time
}

// Model is the dashboard's bubbletea model.
type Model struct {
	ctx      context.Context
	services *app.Services
	ctrl     *app.Controller
	now      func() time.Time

	state        SessionState
	keys         KeyMap
	help         help.Model
	spinner      spinner.Model
	form         *huh.Form
	searchForm   *SearchFormModel
	settingsForm *SettingsFormModel

	clock     time.Time
	clockFmt  string
	selection prayer.Selection
	countdown string
	width     int
	height    int
	startup   tea.Cmd
	quitting  bool

	midnightGen uint64
}

// New creates a dashboard. The first lookup or fetch starts with Init.
func New(opts Options) *Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.TimeFormat == "" {
		opts.TimeFormat = "15:04:05"
	}

	m := &Model{
		ctx:      opts.Context,
		services: opts.Services,
		ctrl:     app.NewController(opts.Settings),
		now:      opts.Now,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(StyleStatus),
		),
		clockFmt:  opts.TimeFormat,
		countdown: prayer.Countdown(0),
	}
	m.clock = m.now()

	if opts.Location != nil {
		m.startup = m.fetchCmd(m.ctrl.SetLocation(*opts.Location))
	} else {
		m.startup = m.locateCmd(m.ctrl.BeginLocate(app.LookupDetect, ""))
	}
	return m
}

// Init starts the clock, the midnight timer and the first lookup.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		tickCmd(),
		m.midnightCmd(m.clock),
		m.startup,
	)
}

// Controller exposes the dashboard state.
func (m *Model) Controller() *app.Controller { return m.ctrl }

// State returns what the dashboard is showing.
func (m *Model) State() SessionState { return m.state }

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// midnightCmd schedules the next midnight in the loaded day's timezone and
// supersedes any earlier schedule.
func (m *Model) midnightCmd(now time.Time) tea.Cmd {
	m.midnightGen++
	gen := m.midnightGen
	return tea.Tick(m.ctrl.UntilMidnight(now), func(t time.Time) tea.Msg {
		return midnightMsg{at: t, gen: gen}
	})
}

// fetchCmd runs req off the event loop.
func (m *Model) fetchCmd(req app.FetchRequest) tea.Cmd {
	ctx, svc, now := m.ctx, m.services, m.now
	return func() tea.Msg {
		return fetchDoneMsg(svc.Fetch(ctx, req, now()))
	}
}

// locateCmd runs req off the event loop.
func (m *Model) locateCmd(req app.LocateRequest) tea.Cmd {
	ctx, svc := m.ctx, m.services
	return func() tea.Msg {
		return locateDoneMsg(svc.Locate(ctx, req))
	}
}
