package prayer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smokyabdulrahman/prayer-dashboard/internal/api"
	"github.com/smokyabdulrahman/prayer-dashboard/internal/cache"
	"github.com/smokyabdulrahman/prayer-dashboard/internal/geo"
)

type fakeSource struct {
	mu       sync.Mutex
	queries  []api.Query
	timezone string
	timings  api.Timings
	err      error
}

func (f *fakeSource) FetchTimings(_ context.Context, q api.Query) (*api.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	if f.err != nil {
		return nil, f.err
	}
	return &api.Response{
		Code:   200,
		Status: "OK",
		Data: api.Data{
			Timings: f.timings,
			Date:    api.DateInfo{Readable: q.Date.Format("02 Jan 2006")},
			Meta:    api.Meta{Timezone: f.timezone},
		},
	}, nil
}

var london = geo.Location{Latitude: 51.5074, Longitude: -0.1278, City: "London", Country: "United Kingdom"}

func TestFetcher_Success(t *testing.T) {
	src := &fakeSource{timings: sampleTimings(), timezone: "UTC"}
	f := NewFetcher(src, nil)
	now := at(13, 0, 0)

	day, err := f.Fetch(context.Background(), london, Settings{CalculationMethod: 3, School: SchoolHanafi}, now)
	require.NoError(t, err)

	require.Len(t, day.Prayers, 5)
	assert.True(t, day.Prayers[1].IsActive)
	assert.Equal(t, "28 Feb 2026", day.Date.Readable)
	assert.Equal(t, "UTC", day.Location.String())

	require.Len(t, src.queries, 1)
	q := src.queries[0]
	assert.Equal(t, 51.5074, q.Latitude)
	assert.Equal(t, -0.1278, q.Longitude)
	assert.Equal(t, 3, q.Method)
	assert.Equal(t, 1, q.School)
}

func TestFetcher_SourceError(t *testing.T) {
	boom := errors.New("connection reset")
	f := NewFetcher(&fakeSource{err: boom}, nil)

	day, err := f.Fetch(context.Background(), london, DefaultSettings(), at(13, 0, 0))
	assert.Nil(t, day)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "fetch timings")
}

func TestFetcher_MalformedTimings(t *testing.T) {
	timings := sampleTimings()
	timings.Isha = "??"
	f := NewFetcher(&fakeSource{timings: timings}, nil)

	_, err := f.Fetch(context.Background(), london, DefaultSettings(), at(13, 0, 0))
	assert.ErrorIs(t, err, api.ErrMalformed)
}

func TestFetcher_CachesResponses(t *testing.T) {
	store, err := cache.New[*api.Response](time.Hour)
	require.NoError(t, err)
	t.Cleanup(store.Close)

	src := &fakeSource{timings: sampleTimings(), timezone: "UTC"}
	f := NewFetcher(src, store)

	_, err = f.Fetch(context.Background(), london, DefaultSettings(), at(9, 0, 0))
	require.NoError(t, err)
	day, err := f.Fetch(context.Background(), london, DefaultSettings(), at(13, 0, 0))
	require.NoError(t, err)

	assert.Len(t, src.queries, 1)
	// Activity is evaluated for the second call's instant, not the cached one.
	assert.True(t, day.Prayers[1].IsActive)

	_, err = f.Fetch(context.Background(), london, Settings{CalculationMethod: 4}, at(13, 0, 0))
	require.NoError(t, err)
	assert.Len(t, src.queries, 2)
}

func TestFetcher_RefetchesForAPITimezoneDate(t *testing.T) {
	src := &fakeSource{timings: sampleTimings(), timezone: "Asia/Tokyo"}
	f := NewFetcher(src, nil)
	// 20:00 UTC on the 28th is 05:00 on 1 March in Tokyo.
	now := at(20, 0, 0)

	day, err := f.Fetch(context.Background(), geo.Location{Latitude: 35.68, Longitude: 139.69}, DefaultSettings(), now)
	require.NoError(t, err)

	require.Len(t, src.queries, 2)
	assert.Equal(t, 28, src.queries[0].Date.Day())
	assert.Equal(t, 1, src.queries[1].Date.Day())
	assert.Equal(t, time.March, src.queries[1].Date.Month())

	assert.Equal(t, "Asia/Tokyo", day.Location.String())
	assert.Equal(t, 1, day.FetchedAt.Day())
	assert.Equal(t, 5, day.FetchedAt.Hour())
	// 05:00 in Tokyo is during Isha, before Fajr at 05:17.
	assert.True(t, day.Prayers[4].IsActive)
}

func TestFetcher_UsesLocationTimezone(t *testing.T) {
	src := &fakeSource{timings: sampleTimings(), timezone: "Asia/Tokyo"}
	f := NewFetcher(src, nil)

	loc := geo.Location{Latitude: 35.68, Longitude: 139.69, Timezone: "Asia/Tokyo"}
	_, err := f.Fetch(context.Background(), loc, DefaultSettings(), at(20, 0, 0))
	require.NoError(t, err)

	require.Len(t, src.queries, 1)
	assert.Equal(t, 1, src.queries[0].Date.Day())
}

func TestFetcher_UnknownTimezoneKeepsCaller(t *testing.T) {
	src := &fakeSource{timings: sampleTimings(), timezone: "Mars/Olympus_Mons"}
	f := NewFetcher(src, nil)

	day, err := f.Fetch(context.Background(), london, DefaultSettings(), at(13, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, "UTC", day.Location.String())
	assert.Len(t, src.queries, 1)
}
