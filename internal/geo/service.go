package geo

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/smokyabdulrahman/prayer-dashboard/internal/cache"
)

// Service combines device detection with reverse lookup, the two steps
// behind "use my current location".
type Service struct {
	Detector *Detector
	Geocoder *Geocoder
	// Places caches reverse lookups. May be nil.
	Places *cache.Store[Location]
}

// NewService wires a Detector and a Geocoder with their defaults.
func NewService(places *cache.Store[Location]) *Service {
	return &Service{
		Detector: NewDetector(),
		Geocoder: NewGeocoder(),
		Places:   places,
	}
}

// Current detects the device position and names it. A failed reverse lookup
// is not an error: the coordinate-only location is returned instead.
func (s *Service) Current(ctx context.Context) (Location, error) {
	loc, err := s.Detector.Detect(ctx)
	if err != nil {
		return Location{}, err
	}
	return s.Name(ctx, loc), nil
}

// Name attaches a city and country to loc, keeping its coordinates and
// timezone. On lookup failure loc is returned unchanged.
func (s *Service) Name(ctx context.Context, loc Location) Location {
	key := cache.PlaceKey(loc.Latitude, loc.Longitude)
	if cached, ok := s.Places.Get(key); ok {
		loc.City, loc.Country = cached.City, cached.Country
		return loc
	}

	named, err := s.Geocoder.Reverse(ctx, loc)
	if err != nil {
		log.Warn().Err(err).Str("coords", loc.Coordinates()).Msg("[geo] reverse lookup failed, using coordinates only")
		return loc
	}
	s.Places.Set(key, named)
	return named
}

// Search returns the best candidate for a free-text query.
func (s *Service) Search(ctx context.Context, query string) (Location, error) {
	results, err := s.Geocoder.Search(ctx, query)
	if err != nil {
		return Location{}, err
	}
	return results[0], nil
}
