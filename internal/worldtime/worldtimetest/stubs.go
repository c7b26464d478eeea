// Package worldtimetest provides test doubles for the worldtime capabilities.
package worldtimetest

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/acai-travel/global-time-agent/internal/worldtime"
)

// StubGeocoder is a test double for worldtime.Geocoder
type StubGeocoder struct {
	GeocodeFunc func(ctx context.Context, text string) (worldtime.Coordinates, error)

	calls atomic.Int64
	last  atomic.Value
}

func (s *StubGeocoder) Geocode(ctx context.Context, text string) (worldtime.Coordinates, error) {
	s.calls.Add(1)
	s.last.Store(text)
	if s.GeocodeFunc != nil {
		return s.GeocodeFunc(ctx, text)
	}
	return worldtime.Coordinates{}, worldtime.ErrLocationNotFound
}

// Calls returns how many times Geocode ran.
func (s *StubGeocoder) Calls() int { return int(s.calls.Load()) }

// LastQuery returns the text passed to the most recent Geocode call.
func (s *StubGeocoder) LastQuery() string {
	v, _ := s.last.Load().(string)
	return v
}

// StubTimezones is a test double for worldtime.TimezoneLookup
type StubTimezones struct {
	TimezoneAtFunc func(latitude, longitude float64) (string, error)

	calls atomic.Int64
}

func (s *StubTimezones) TimezoneAt(latitude, longitude float64) (string, error) {
	s.calls.Add(1)
	if s.TimezoneAtFunc != nil {
		return s.TimezoneAtFunc(latitude, longitude)
	}
	return "", worldtime.ErrTimezoneNotFound
}

func (s *StubTimezones) Calls() int { return int(s.calls.Load()) }

// FixedGeocoder answers every query with the same coordinates.
func FixedGeocoder(lat, lon float64) *StubGeocoder {
	return &StubGeocoder{
		GeocodeFunc: func(context.Context, string) (worldtime.Coordinates, error) {
			return worldtime.Coordinates{Latitude: lat, Longitude: lon}, nil
		},
	}
}

// FixedTimezone answers every lookup with zone.
func FixedTimezone(zone string) *StubTimezones {
	return &StubTimezones{
		TimezoneAtFunc: func(float64, float64) (string, error) {
			return zone, nil
		},
	}
}

// ReferenceTime is the frozen instant used by tests: 2024-03-15 06:30:45 UTC.
var ReferenceTime = time.Date(2024, time.March, 15, 6, 30, 45, 0, time.UTC)
