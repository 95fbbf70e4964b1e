package cli

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/smokyabdulrahman/prayer-dashboard/internal/api"
	"github.com/smokyabdulrahman/prayer-dashboard/internal/app"
	"github.com/smokyabdulrahman/prayer-dashboard/internal/cache"
	"github.com/smokyabdulrahman/prayer-dashboard/internal/geo"
	"github.com/smokyabdulrahman/prayer-dashboard/internal/prayer"
)

const (
	timingsTTL = 12 * time.Hour
	placesTTL  = 24 * time.Hour
)

// candidateSearcher lists every geocoding match for a query.
type candidateSearcher interface {
	Search(ctx context.Context, query string) ([]geo.Location, error)
}

// services bundles the network-backed components a command needs.
type services struct {
	days       app.DayFetcher
	places     app.Locator
	candidates candidateSearcher
	close      func()
}

// openServices builds the production services. Tests replace it.
var openServices = func() *services {
	timings, err := cache.New[*api.Response](timingsTTL)
	if err != nil {
		log.Warn().Err(err).Msg("[cli] timings cache disabled")
	}
	places, err := cache.New[geo.Location](placesTTL)
	if err != nil {
		log.Warn().Err(err).Msg("[cli] places cache disabled")
	}

	locator := geo.NewService(places)
	return &services{
		days:       prayer.NewFetcher(api.NewClient(), timings),
		places:     locator,
		candidates: locator.Geocoder,
		close: func() {
			timings.Close()
			places.Close()
		},
	}
}

// app exposes the services to the dashboard.
func (s *services) app() *app.Services {
	return &app.Services{Days: s.days, Places: s.places}
}

// Close releases the caches.
func (s *services) Close() {
	if s.close != nil {
		s.close()
	}
}
