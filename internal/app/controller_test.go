package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smokyabdulrahman/prayer-dashboard/internal/api"
	"github.com/smokyabdulrahman/prayer-dashboard/internal/geo"
	"github.com/smokyabdulrahman/prayer-dashboard/internal/prayer"
)

var (
	london = geo.Location{Latitude: 51.5074, Longitude: -0.1278, City: "London", Country: "United Kingdom"}
	cairo  = geo.Location{Latitude: 30.0444, Longitude: 31.2357, City: "Cairo", Country: "Egypt"}
)

func at(h, m, s int) time.Time {
	return time.Date(2026, time.February, 28, h, m, s, 0, time.UTC)
}

func testDay(t *testing.T, now time.Time) *prayer.Day {
	t.Helper()
	prayers, err := prayer.FromTimings(api.Timings{
		Fajr: "05:17", Sunrise: "06:48", Dhuhr: "12:13", Asr: "15:02", Maghrib: "17:39", Isha: "19:10",
	}, now)
	require.NoError(t, err)
	return &prayer.Day{
		Prayers:   prayers,
		Location:  time.UTC,
		FetchedAt: now,
		Date: api.DateInfo{Hijri: api.HijriDate{
			Day: "11", Month: api.HijriMonth{En: "Ramaḍān"}, Year: "1447",
		}},
	}
}

func TestController_Initial(t *testing.T) {
	c := NewController(prayer.DefaultSettings())

	_, ok := c.Location()
	assert.False(t, ok)
	assert.False(t, c.Loading())
	assert.Empty(t, c.Prayers())

	_, ok = c.Refresh()
	assert.False(t, ok, "nothing to fetch without a location")
}

func TestController_SetLocationFetches(t *testing.T) {
	c := NewController(prayer.DefaultSettings())

	req := c.SetLocation(london)
	assert.Equal(t, uint64(1), req.Generation)
	assert.Equal(t, london, req.Location)
	assert.Equal(t, prayer.DefaultSettings(), req.Settings)
	assert.NotEmpty(t, req.ID)
	assert.True(t, c.Loading())

	applied := c.ApplyFetch(FetchResult{Generation: req.Generation, Day: testDay(t, at(13, 0, 0))})
	assert.True(t, applied)
	assert.False(t, c.Loading())
	assert.Empty(t, c.Error())
	assert.Len(t, c.Prayers(), 5)

	loc, ok := c.Location()
	require.True(t, ok)
	assert.Equal(t, "London, United Kingdom", loc.Label())
}

func TestController_IgnoresOutOfOrderResults(t *testing.T) {
	c := NewController(prayer.DefaultSettings())

	first := c.SetLocation(london)
	second := c.SetLocation(cairo)
	assert.NotEqual(t, first.ID, second.ID)

	cairoDay := testDay(t, at(13, 0, 0))
	require.True(t, c.ApplyFetch(FetchResult{Generation: second.Generation, Day: cairoDay}))

	// London's response arrives late.
	assert.False(t, c.ApplyFetch(FetchResult{Generation: first.Generation, Day: testDay(t, at(9, 0, 0))}))
	assert.Same(t, cairoDay, c.Day())

	// A late failure is just as stale.
	assert.False(t, c.ApplyFetch(FetchResult{Generation: first.Generation, Err: errors.New("timeout")}))
	assert.Empty(t, c.Error())
	assert.Len(t, c.Prayers(), 5)
}

func TestController_StaleResultKeepsLoading(t *testing.T) {
	c := NewController(prayer.DefaultSettings())
	first := c.SetLocation(london)
	c.SetLocation(cairo)

	c.ApplyFetch(FetchResult{Generation: first.Generation, Day: testDay(t, at(13, 0, 0))})
	assert.True(t, c.Loading(), "the latest request is still in flight")
}

func TestController_FetchFailureClearsPrayers(t *testing.T) {
	c := NewController(prayer.DefaultSettings())
	req := c.SetLocation(london)
	c.ApplyFetch(FetchResult{Generation: req.Generation, Day: testDay(t, at(13, 0, 0))})

	req, ok := c.Refresh()
	require.True(t, ok)
	require.True(t, c.ApplyFetch(FetchResult{Generation: req.Generation, Err: api.ErrMalformed}))

	assert.Equal(t, ErrFetchMessage, c.Error())
	assert.False(t, c.Loading())
	assert.Empty(t, c.Prayers())
	assert.Nil(t, c.Day())

	sel, cd := c.Tick(at(13, 0, 0))
	assert.Nil(t, sel.Next)
	assert.Equal(t, "00:00:00", cd)
}

func TestController_NewFetchClearsError(t *testing.T) {
	c := NewController(prayer.DefaultSettings())
	req := c.SetLocation(london)
	c.ApplyFetch(FetchResult{Generation: req.Generation, Err: errors.New("boom")})
	require.NotEmpty(t, c.Error())

	c.Refresh()
	assert.Empty(t, c.Error())
	assert.True(t, c.Loading())
}

func TestController_SetSettings(t *testing.T) {
	c := NewController(prayer.DefaultSettings())
	hanafi := prayer.Settings{CalculationMethod: 4, School: prayer.SchoolHanafi}

	_, ok := c.SetSettings(hanafi)
	assert.False(t, ok)
	assert.Equal(t, hanafi, c.Settings())

	c.SetLocation(london)
	req, ok := c.SetSettings(prayer.DefaultSettings())
	require.True(t, ok)
	assert.Equal(t, uint64(2), req.Generation)
	assert.Equal(t, prayer.DefaultSettings(), req.Settings)
	assert.Equal(t, london, req.Location)
}

func TestController_DetectFailure(t *testing.T) {
	c := NewController(prayer.DefaultSettings())

	lr := c.BeginLocate(LookupDetect, "")
	assert.True(t, c.Loading())
	assert.NotEmpty(t, c.Status())

	_, ok := c.ApplyLocate(LocateResult{Generation: lr.Generation, Kind: LookupDetect, Err: geo.ErrUnavailable})
	assert.False(t, ok)
	assert.Equal(t, ErrLocationMessage, c.Error())
	assert.False(t, c.Loading())
	assert.True(t, c.TakeFormRequest())
	assert.False(t, c.TakeFormRequest(), "form request is consumed")
}

func TestController_SearchFailureKeepsLocation(t *testing.T) {
	c := NewController(prayer.DefaultSettings())
	c.SetLocation(london)

	lr := c.BeginLocate(LookupSearch, "Atlantis")
	_, ok := c.ApplyLocate(LocateResult{Generation: lr.Generation, Kind: LookupSearch, Query: "Atlantis", Err: geo.ErrNoResults})
	assert.False(t, ok)

	loc, _ := c.Location()
	assert.Equal(t, london, loc)
	assert.Empty(t, c.Error())
	assert.Contains(t, c.Status(), "Atlantis")
	assert.False(t, c.TakeFormRequest())
}

func TestController_LocateSuccess(t *testing.T) {
	c := NewController(prayer.DefaultSettings())

	lr := c.BeginLocate(LookupSearch, "Cairo")
	assert.Equal(t, "Cairo", lr.Query)

	req, ok := c.ApplyLocate(LocateResult{Generation: lr.Generation, Kind: LookupSearch, Location: cairo})
	require.True(t, ok)
	assert.Equal(t, cairo, req.Location)
	assert.True(t, c.Loading())
	assert.Empty(t, c.Status())
}

func TestController_ManualLocationSupersedesLookup(t *testing.T) {
	c := NewController(prayer.DefaultSettings())

	lr := c.BeginLocate(LookupDetect, "")
	c.SetLocation(cairo)

	_, ok := c.ApplyLocate(LocateResult{Generation: lr.Generation, Kind: LookupDetect, Location: london})
	assert.False(t, ok)
	loc, _ := c.Location()
	assert.Equal(t, cairo, loc)
}

func TestController_LaterLookupWins(t *testing.T) {
	c := NewController(prayer.DefaultSettings())

	first := c.BeginLocate(LookupSearch, "London")
	second := c.BeginLocate(LookupSearch, "Cairo")

	_, ok := c.ApplyLocate(LocateResult{Generation: first.Generation, Kind: LookupSearch, Location: london})
	assert.False(t, ok)
	_, ok = c.ApplyLocate(LocateResult{Generation: second.Generation, Kind: LookupSearch, Location: cairo})
	assert.True(t, ok)

	// A duplicate delivery of the applied result is ignored.
	_, ok = c.ApplyLocate(LocateResult{Generation: second.Generation, Kind: LookupSearch, Location: cairo})
	assert.False(t, ok)
}

func TestController_Tick(t *testing.T) {
	c := NewController(prayer.DefaultSettings())
	req := c.SetLocation(london)
	c.ApplyFetch(FetchResult{Generation: req.Generation, Day: testDay(t, at(13, 0, 0))})

	// The caller's zone does not matter; the day's zone is used.
	tokyo := time.FixedZone("JST", 9*3600)
	sel, cd := c.Tick(at(13, 0, 0).In(tokyo))
	require.NotNil(t, sel.Current)
	assert.Equal(t, "Dhuhr", sel.Current.Name)
	assert.Equal(t, "02:02:00", cd)
}

func TestController_UntilMidnightUsesDayZone(t *testing.T) {
	c := NewController(prayer.DefaultSettings())
	now := at(15, 30, 0)
	assert.Equal(t, 8*time.Hour+30*time.Minute, c.UntilMidnight(now))

	tokyo := time.FixedZone("JST", 9*3600)
	day := testDay(t, now.In(tokyo))
	day.Location = tokyo
	req := c.SetLocation(london)
	c.ApplyFetch(FetchResult{Generation: req.Generation, Day: day})

	// 15:30 UTC is 00:30 the next day in Tokyo.
	assert.Equal(t, 23*time.Hour+30*time.Minute, c.UntilMidnight(now))
}

func TestController_Dates(t *testing.T) {
	c := NewController(prayer.DefaultSettings())
	assert.Equal(t, "28 February 2026", c.Dates(at(13, 0, 0)).Gregorian)

	req := c.SetLocation(london)
	c.ApplyFetch(FetchResult{Generation: req.Generation, Day: testDay(t, at(13, 0, 0))})

	assert.Equal(t, "11 Ramaḍān 1447 AH", c.Dates(at(20, 0, 0)).Hijri)

	// After midnight the fetched day no longer describes today.
	next := c.Dates(at(0, 0, 1).AddDate(0, 0, 1))
	assert.Equal(t, "1 March 2026", next.Gregorian)
	assert.NotEqual(t, "11 Ramaḍān 1447 AH", next.Hijri)
}

type fakeDays struct {
	day *prayer.Day
	err error
	got geo.Location
}

func (f *fakeDays) Fetch(_ context.Context, loc geo.Location, _ prayer.Settings, _ time.Time) (*prayer.Day, error) {
	f.got = loc
	return f.day, f.err
}

type fakePlaces struct {
	current geo.Location
	found   geo.Location
	err     error
	queries []string
}

func (f *fakePlaces) Current(context.Context) (geo.Location, error) {
	return f.current, f.err
}

func (f *fakePlaces) Search(_ context.Context, q string) (geo.Location, error) {
	f.queries = append(f.queries, q)
	return f.found, f.err
}

func TestServices_Fetch(t *testing.T) {
	day := testDay(t, at(13, 0, 0))
	days := &fakeDays{day: day}
	s := &Services{Days: days}

	res := s.Fetch(context.Background(), FetchRequest{ID: "abc", Generation: 7, Location: cairo}, at(13, 0, 0))
	assert.Equal(t, uint64(7), res.Generation)
	assert.Same(t, day, res.Day)
	assert.NoError(t, res.Err)
	assert.Equal(t, cairo, days.got)

	days.err = errors.New("offline")
	res = s.Fetch(context.Background(), FetchRequest{Generation: 8, Location: cairo}, at(13, 0, 0))
	assert.Equal(t, uint64(8), res.Generation)
	assert.Error(t, res.Err)
}

func TestServices_Locate(t *testing.T) {
	places := &fakePlaces{current: london, found: cairo}
	s := &Services{Places: places}

	res := s.Locate(context.Background(), LocateRequest{Generation: 3, Kind: LookupDetect})
	assert.Equal(t, london, res.Location)
	assert.Equal(t, uint64(3), res.Generation)
	assert.Empty(t, places.queries)

	res = s.Locate(context.Background(), LocateRequest{Generation: 4, Kind: LookupSearch, Query: "Cairo"})
	assert.Equal(t, cairo, res.Location)
	assert.Equal(t, "Cairo", res.Query)
	assert.Equal(t, []string{"Cairo"}, places.queries)

	places.err = geo.ErrUnavailable
	res = s.Locate(context.Background(), LocateRequest{Generation: 5, Kind: LookupDetect})
	assert.ErrorIs(t, res.Err, geo.ErrUnavailable)
}
