package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrUnavailable is returned when the position of the device cannot be determined.
var ErrUnavailable = errors.New("geolocation unavailable")

// ipAPIResponse maps the response from ip-api.com.
type ipAPIResponse struct {
	Status   string  `json:"status"`
	Message  string  `json:"message"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	City     string  `json:"city"`
	Country  string  `json:"country"`
	Timezone string  `json:"timezone"`
}

const defaultDetectURL = "http://ip-api.com/json/?fields=status,message,lat,lon,city,country,timezone"

// Detector determines the user's position from their public IP address
// using ip-api.com, a free service that requires no API key.
type Detector struct {
	httpClient *http.Client
	// URL is the geolocation endpoint. Exported for testing with httptest.
	URL string
}

// NewDetector creates a Detector with a short timeout.
func NewDetector() *Detector {
	return &Detector{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		URL:        defaultDetectURL,
	}
}

// Detect returns the coordinates and timezone of the caller. Every failure
// wraps ErrUnavailable so callers can route the user to manual entry.
func (d *Detector) Detect(ctx context.Context) (Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.URL, nil)
	if err != nil {
		return Location{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return Location{}, fmt.Errorf("%w: request failed: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Location{}, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var result ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return Location{}, fmt.Errorf("%w: failed to decode response: %v", ErrUnavailable, err)
	}

	if result.Status != "success" {
		return Location{}, fmt.Errorf("%w: %s", ErrUnavailable, result.Message)
	}

	return Location{
		Latitude:  result.Lat,
		Longitude: result.Lon,
		Timezone:  result.Timezone,
	}, nil
}
