// Package tzlookup maps coordinates to IANA timezone names without any
// network access.
package tzlookup

import (
	"fmt"
	"math"

	"github.com/acai-travel/global-time-agent/internal/worldtime"
	"github.com/bradfitz/latlong"
)

// LatLong implements worldtime.TimezoneLookup with the shape tables compiled
// into github.com/bradfitz/latlong.
type LatLong struct{}

func New() *LatLong {
	return &LatLong{}
}

// TimezoneAt returns worldtime.ErrTimezoneNotFound for points outside any
// zone (open ocean) and for coordinates that are non-finite or out of range.
func (l *LatLong) TimezoneAt(latitude, longitude float64) (string, error) {
	if math.IsNaN(latitude) || math.IsNaN(longitude) || math.IsInf(latitude, 0) || math.IsInf(longitude, 0) {
		return "", fmt.Errorf("%w: non-finite coordinates (%g, %g)", worldtime.ErrTimezoneNotFound, latitude, longitude)
	}
	if latitude < -90 || latitude > 90 || longitude < -180 || longitude > 180 {
		return "", fmt.Errorf("%w: coordinates (%g, %g) out of range", worldtime.ErrTimezoneNotFound, latitude, longitude)
	}

	zone := latlong.LookupZoneName(latitude, longitude)
	if zone == "" {
		return "", worldtime.ErrTimezoneNotFound
	}
	return zone, nil
}
