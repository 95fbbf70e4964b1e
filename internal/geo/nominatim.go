package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ErrNoResults is returned by Search when the query matches nothing.
var ErrNoResults = errors.New("no matching location")

const (
	defaultNominatimURL = "https://nominatim.openstreetmap.org"
	userAgent           = "prayer-dashboard (+https://github.com/smokyabdulrahman/prayer-dashboard)"
	unknownPlace        = "Unknown"
)

// searchResult is one candidate of a Nominatim forward search.
// Nominatim encodes coordinates as strings.
type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

type reverseResult struct {
	Address struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		Country string `json:"country"`
	} `json:"address"`
}

// Geocoder performs forward and reverse lookups against Nominatim.
type Geocoder struct {
	httpClient *http.Client
	// BaseURL is the Nominatim base URL. Exported for testing with httptest.
	BaseURL string
}

// NewGeocoder creates a Geocoder pointed at the public Nominatim instance.
func NewGeocoder() *Geocoder {
	return &Geocoder{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		BaseURL:    defaultNominatimURL,
	}
}

// Search returns every candidate for a free-text query, best match first.
func (g *Geocoder) Search(ctx context.Context, query string) ([]Location, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrNoResults
	}

	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", query)

	var results []searchResult
	if err := g.get(ctx, "/search", params, &results); err != nil {
		return nil, fmt.Errorf("location search failed: %w", err)
	}

	locations := make([]Location, 0, len(results))
	for _, r := range results {
		lat, err := strconv.ParseFloat(r.Lat, 64)
		if err != nil {
			continue
		}
		lon, err := strconv.ParseFloat(r.Lon, 64)
		if err != nil {
			continue
		}
		city, country := splitDisplayName(r.DisplayName)
		locations = append(locations, Location{
			Latitude:  lat,
			Longitude: lon,
			City:      city,
			Country:   country,
		})
	}

	if len(locations) == 0 {
		return nil, ErrNoResults
	}
	return locations, nil
}

// Reverse resolves coordinates to a place name. Missing address parts come
// back as "Unknown"; coordinates are always preserved.
func (g *Geocoder) Reverse(ctx context.Context, loc Location) (Location, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("lat", formatCoord(loc.Latitude))
	params.Set("lon", formatCoord(loc.Longitude))

	var result reverseResult
	if err := g.get(ctx, "/reverse", params, &result); err != nil {
		return loc, fmt.Errorf("reverse lookup failed: %w", err)
	}

	a := result.Address
	loc.City = firstNonEmpty(a.City, a.Town, a.Village, unknownPlace)
	loc.Country = firstNonEmpty(a.Country, unknownPlace)
	return loc, nil
}

func (g *Geocoder) get(ctx context.Context, path string, params url.Values, out any) error {
	reqURL := fmt.Sprintf("%s%s?%s", g.BaseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode nominatim response: %w", err)
	}
	return nil
}

// splitDisplayName takes the first and last comma-separated parts of a
// Nominatim display name as city and country.
func splitDisplayName(name string) (city, country string) {
	parts := strings.Split(name, ",")
	city = strings.TrimSpace(parts[0])
	country = strings.TrimSpace(parts[len(parts)-1])
	return city, country
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
