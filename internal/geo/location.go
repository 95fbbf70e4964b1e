// Package geo resolves where the user is: IP-based detection, forward search
// and reverse lookup of place names.
package geo

import (
	"fmt"
	"strconv"
)

// Location holds geographic coordinates and an optional place name.
// A Location is a value: callers replace it, they never patch fields.
type Location struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	City      string  `json:"city,omitempty"`
	Country   string  `json:"country,omitempty"`
	Timezone  string  `json:"timezone,omitempty"`
}

// Label returns "City, Country", or "Current Location" when no place name is known.
func (l Location) Label() string {
	if l.City == "" {
		return "Current Location"
	}
	if l.Country == "" {
		return l.City
	}
	return l.City + ", " + l.Country
}

// Coordinates formats the position with four decimals.
func (l Location) Coordinates() string {
	return fmt.Sprintf("%.4f, %.4f", l.Latitude, l.Longitude)
}

// Valid reports whether the coordinates are on the globe.
func (l Location) Valid() bool {
	return l.Latitude >= -90 && l.Latitude <= 90 && l.Longitude >= -180 && l.Longitude <= 180
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
