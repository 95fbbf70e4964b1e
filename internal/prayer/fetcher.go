package prayer

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/smokyabdulrahman/prayer-dashboard/internal/api"
	"github.com/smokyabdulrahman/prayer-dashboard/internal/cache"
	"github.com/smokyabdulrahman/prayer-dashboard/internal/geo"
)

// TimingsSource is the timings API as the Fetcher sees it.
type TimingsSource interface {
	FetchTimings(ctx context.Context, q api.Query) (*api.Response, error)
}

// Day is one successful fetch: the five prayers plus what the API reported
// about the date and place.
type Day struct {
	Prayers  []Prayer
	Date     api.DateInfo
	Location *time.Location // timezone the prayer clocks are expressed in
	// FetchedAt is the instant IsActive was evaluated for, in Location.
	FetchedAt time.Time
}

// Fetcher retrieves and maps timings for a location and settings.
type Fetcher struct {
	Source TimingsSource
	// Cache holds raw responses keyed by date, place and settings. May be nil.
	Cache *cache.Store[*api.Response]
}

// NewFetcher creates a Fetcher over the given source and cache.
func NewFetcher(src TimingsSource, c *cache.Store[*api.Response]) *Fetcher {
	return &Fetcher{Source: src, Cache: c}
}

// Fetch requests the timings for now's calendar date at loc. When loc
// carries no timezone the date is taken in now's location and, if the API
// reports a timezone where the date differs, fetched once more for the
// right day.
func (f *Fetcher) Fetch(ctx context.Context, loc geo.Location, settings Settings, now time.Time) (*Day, error) {
	logger := zerolog.Ctx(ctx)

	tz := now.Location()
	if loc.Timezone != "" {
		if l, err := time.LoadLocation(loc.Timezone); err == nil {
			tz = l
		} else {
			logger.Warn().Err(err).Str("timezone", loc.Timezone).Msg("[prayer] unknown location timezone")
		}
	}
	date := now.In(tz)

	resp, err := f.fetch(ctx, loc, settings, date)
	if err != nil {
		return nil, err
	}

	if name := resp.Data.Meta.Timezone; name != "" {
		l, err := time.LoadLocation(name)
		if err != nil {
			logger.Warn().Err(err).Str("timezone", name).Msg("[prayer] unknown API timezone, keeping " + tz.String())
		} else {
			tz = l
		}
	}

	local := now.In(tz)
	if !sameDate(local, date) {
		logger.Debug().Str("requested", date.Format("2006-01-02")).Str("local", local.Format("2006-01-02")).Msg("[prayer] refetching for local date")
		if resp, err = f.fetch(ctx, loc, settings, local); err != nil {
			return nil, err
		}
	}

	prayers, err := FromTimings(resp.Data.Timings, local)
	if err != nil {
		return nil, err
	}

	return &Day{
		Prayers:   prayers,
		Date:      resp.Data.Date,
		Location:  tz,
		FetchedAt: local,
	}, nil
}

func (f *Fetcher) fetch(ctx context.Context, loc geo.Location, settings Settings, date time.Time) (*api.Response, error) {
	key := cache.TimingsKey(date, loc.Latitude, loc.Longitude, settings.CalculationMethod, settings.School.APIValue())
	if resp, ok := f.Cache.Get(key); ok {
		zerolog.Ctx(ctx).Debug().Str("key", key).Msg("[prayer] timings cache hit")
		return resp, nil
	}

	resp, err := f.Source.FetchTimings(ctx, api.Query{
		Date:      date,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		Method:    settings.CalculationMethod,
		School:    settings.School.APIValue(),
	})
	if err != nil {
		return nil, fmt.Errorf("fetch timings: %w", err)
	}

	f.Cache.Set(key, resp)
	return resp, nil
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
