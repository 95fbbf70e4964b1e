package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/smokyabdulrahman/prayer-dashboard/internal/geo"
	"github.com/smokyabdulrahman/prayer-dashboard/internal/prayer"
)

// DayFetcher loads one day of prayers.
type DayFetcher interface {
	Fetch(ctx context.Context, loc geo.Location, settings prayer.Settings, now time.Time) (*prayer.Day, error)
}

// Locator resolves locations.
type Locator interface {
	Current(ctx context.Context) (geo.Location, error)
	Search(ctx context.Context, query string) (geo.Location, error)
}

// Services performs the network work behind requests. Its methods block
// and are meant to run off the event loop.
type Services struct {
	Days   DayFetcher
	Places Locator
}

// Fetch runs req. The request ID is attached to every log line it produces.
func (s *Services) Fetch(ctx context.Context, req FetchRequest, now time.Time) FetchResult {
	logger := log.With().Str("request_id", req.ID).Uint64("generation", req.Generation).Logger()
	ctx = logger.WithContext(ctx)

	day, err := s.Days.Fetch(ctx, req.Location, req.Settings, now)
	if err != nil {
		logger.Error().Err(err).Str("location", req.Location.Coordinates()).Msg("[app] fetch failed")
		return FetchResult{Generation: req.Generation, Err: err}
	}
	logger.Debug().Str("location", req.Location.Label()).Msg("[app] fetched timings")
	return FetchResult{Generation: req.Generation, Day: day}
}

// Locate runs req.
func (s *Services) Locate(ctx context.Context, req LocateRequest) LocateResult {
	res := LocateResult{Generation: req.Generation, Kind: req.Kind, Query: req.Query}

	switch req.Kind {
	case LookupSearch:
		res.Location, res.Err = s.Places.Search(ctx, req.Query)
	default:
		res.Location, res.Err = s.Places.Current(ctx)
	}
	if res.Err != nil {
		log.Warn().Err(res.Err).Str("query", req.Query).Msg("[app] location lookup failed")
	}
	return res
}
