// Package worldtime resolves the current local time for a free-text location.
//
// A Resolver chains three capabilities: a Geocoder turns the text into
// coordinates, a TimezoneLookup maps the coordinates to an IANA zone and a
// Clock reads the wall-clock time in that zone. Every failure is folded into
// a Result so callers (an agent tool, an HTTP handler, a CLI) always get a
// well-formed record back.
package worldtime

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrLocationNotFound is returned by a Geocoder when nothing matches the query.
	ErrLocationNotFound = errors.New("location not found")

	// ErrServiceUnavailable is wrapped by a Geocoder for timeouts and remote faults.
	ErrServiceUnavailable = errors.New("geocoding service unavailable")

	// ErrTimezoneNotFound is returned by a TimezoneLookup when no zone covers the point.
	ErrTimezoneNotFound = errors.New("timezone not found")
)

// Coordinates is a WGS84 position in decimal degrees.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Geocoder maps a place description to coordinates. The lookup deadline is
// carried by ctx.
type Geocoder interface {
	Geocode(ctx context.Context, text string) (Coordinates, error)
}

// TimezoneLookup maps coordinates to an IANA timezone identifier.
type TimezoneLookup interface {
	TimezoneAt(latitude, longitude float64) (string, error)
}

// Clock reports the current time in a named timezone.
type Clock interface {
	Now(zone string) (time.Time, error)
}
