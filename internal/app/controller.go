// Package app holds the dashboard state and the rules for changing it.
//
// The Controller is owned by a single event loop. Every change that needs
// network work returns a request carrying a generation number; results are
// applied only when they answer the latest request, so a slow response
// can never overwrite a newer one.
package app

import (
	"time"

	"github.com/google/uuid"

	"github.com/smokyabdulrahman/prayer-dashboard/internal/calendar"
	"github.com/smokyabdulrahman/prayer-dashboard/internal/geo"
	"github.com/smokyabdulrahman/prayer-dashboard/internal/prayer"
)

// User-facing error messages.
const (
	ErrLocationMessage = "Unable to get your location. Please enter it manually."
	ErrFetchMessage    = "Unable to fetch prayer times. Please try again later."
)

// LookupKind says how a location is being resolved.
type LookupKind int

const (
	LookupDetect LookupKind = iota // IP geolocation plus reverse lookup
	LookupSearch                   // forward geocoding of a query
)

// FetchRequest asks for the timings of one location and settings pair.
type FetchRequest struct {
	ID         string
	Generation uint64
	Location   geo.Location
	Settings   prayer.Settings
}

// FetchResult answers a FetchRequest.
type FetchResult struct {
	Generation uint64
	Day        *prayer.Day
	Err        error
}

// LocateRequest asks for a location to be resolved.
type LocateRequest struct {
	Generation uint64
	Kind       LookupKind
	Query      string // LookupSearch only
}

// LocateResult answers a LocateRequest.
type LocateResult struct {
	Generation uint64
	Kind       LookupKind
	Query      string
	Location   geo.Location
	Err        error
}

// Controller owns the dashboard state. It is not safe for concurrent use.
type Controller struct {
	location *geo.Location
	settings prayer.Settings
	day      *prayer.Day
	tracker  *prayer.Tracker

	locating bool
	fetching bool
	errMsg   string
	status   string
	wantForm bool

	fetchGen  uint64
	locateGen uint64
}

// NewController starts with no location and the given settings.
func NewController(settings prayer.Settings) *Controller {
	return &Controller{
		settings: settings,
		tracker:  prayer.NewTracker(nil),
	}
}

// Location returns the current location, if one is set.
func (c *Controller) Location() (geo.Location, bool) {
	if c.location == nil {
		return geo.Location{}, false
	}
	return *c.location, true
}

// Settings returns the current calculation settings.
func (c *Controller) Settings() prayer.Settings { return c.settings }

// Day returns the last successful fetch, or nil.
func (c *Controller) Day() *prayer.Day { return c.day }

// Prayers returns the current prayer list. It is empty while nothing has
// been fetched or after a failed fetch.
func (c *Controller) Prayers() []prayer.Prayer {
	if c.day == nil {
		return nil
	}
	return c.day.Prayers
}

// Loading reports whether a lookup or fetch is in flight.
func (c *Controller) Loading() bool { return c.locating || c.fetching }

// Error returns the message to show in the error banner, or "".
func (c *Controller) Error() string { return c.errMsg }

// Status returns a transient note for the status line, or "".
func (c *Controller) Status() string { return c.status }

// SetStatus replaces the status note.
func (c *Controller) SetStatus(s string) { c.status = s }

// TakeFormRequest reports, once, that manual location entry should open.
func (c *Controller) TakeFormRequest() bool {
	want := c.wantForm
	c.wantForm = false
	return want
}

// SetLocation replaces the location and starts a fetch for it. Any lookup
// still in flight is superseded.
func (c *Controller) SetLocation(loc geo.Location) FetchRequest {
	c.location = &loc
	c.locateGen++
	c.locating = false
	return c.newFetch()
}

// SetSettings replaces the settings. A fetch is started when a location is
// known.
func (c *Controller) SetSettings(s prayer.Settings) (FetchRequest, bool) {
	c.settings = s
	return c.Refresh()
}

// Refresh refetches for the current location and settings. It is also the
// midnight rollover.
func (c *Controller) Refresh() (FetchRequest, bool) {
	if c.location == nil {
		return FetchRequest{}, false
	}
	return c.newFetch(), true
}

func (c *Controller) newFetch() FetchRequest {
	c.fetchGen++
	c.fetching = true
	c.errMsg = ""
	return FetchRequest{
		ID:         uuid.NewString(),
		Generation: c.fetchGen,
		Location:   *c.location,
		Settings:   c.settings,
	}
}

// ApplyFetch records a fetch result. Results for anything but the latest
// request are ignored and false is returned.
func (c *Controller) ApplyFetch(r FetchResult) bool {
	if r.Generation != c.fetchGen {
		return false
	}
	c.fetching = false
	if r.Err != nil {
		c.errMsg = ErrFetchMessage
		c.day = nil
		c.tracker.Reset(nil)
		return true
	}
	c.errMsg = ""
	c.day = r.Day
	c.tracker.Reset(r.Day.Prayers)
	return true
}

// BeginLocate starts resolving a location. It supersedes earlier lookups.
func (c *Controller) BeginLocate(kind LookupKind, query string) LocateRequest {
	c.locateGen++
	c.locating = true
	switch kind {
	case LookupDetect:
		c.status = "Detecting your location…"
	case LookupSearch:
		c.status = "Searching for " + query + "…"
	}
	return LocateRequest{Generation: c.locateGen, Kind: kind, Query: query}
}

// ApplyLocate records a lookup result. On success the location is replaced
// and the returned request must be run. ok is false when there is nothing
// to fetch: a stale result or a failure.
func (c *Controller) ApplyLocate(r LocateResult) (req FetchRequest, ok bool) {
	if r.Generation != c.locateGen || !c.locating {
		return FetchRequest{}, false
	}
	c.locating = false
	c.status = ""

	if r.Err != nil {
		switch r.Kind {
		case LookupDetect:
			c.LocationFailed()
		case LookupSearch:
			c.status = "No results for \"" + r.Query + "\""
		}
		return FetchRequest{}, false
	}

	return c.SetLocation(r.Location), true
}

// LocationFailed shows the geolocation error and asks for manual entry.
func (c *Controller) LocationFailed() {
	c.locating = false
	c.errMsg = ErrLocationMessage
	c.wantForm = true
}

// Tick returns the live selection and countdown for now.
func (c *Controller) Tick(now time.Time) (prayer.Selection, string) {
	if c.day != nil && c.day.Location != nil {
		now = now.In(c.day.Location)
	}
	return c.tracker.Tick(now)
}

// UntilMidnight returns how long until the next midnight at the prayer
// location, or in now's zone before any day is loaded.
func (c *Controller) UntilMidnight(now time.Time) time.Duration {
	if c.day != nil && c.day.Location != nil {
		now = now.In(c.day.Location)
	}
	return calendar.UntilMidnight(now)
}

// Dates returns today's dates at the prayer location. The API's Hijri date
// is preferred while the fetched day is still today.
func (c *Controller) Dates(now time.Time) calendar.Dates {
	if c.day != nil && c.day.Location != nil {
		now = now.In(c.day.Location)
	}
	d := calendar.Today(now)
	if c.day != nil && calendar.SameDay(c.day.FetchedAt, now) {
		d = d.WithAPI(c.day.Date.Hijri)
	}
	return d
}
