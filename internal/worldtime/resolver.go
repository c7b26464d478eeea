package worldtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"
)

// DefaultGeocodeTimeout bounds a single geocoder call.
const DefaultGeocodeTimeout = 10 * time.Second

// Resolver turns a location name into the current local time there.
// It holds no mutable state and is safe for concurrent use as long as its
// capabilities are.
type Resolver struct {
	geocoder Geocoder
	zones    TimezoneLookup
	clock    Clock
	timeout  time.Duration
}

type Option func(*Resolver)

// WithGeocodeTimeout overrides DefaultGeocodeTimeout. Non-positive values are ignored.
func WithGeocodeTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

func NewResolver(geocoder Geocoder, zones TimezoneLookup, clock Clock, opts ...Option) *Resolver {
	r := &Resolver{
		geocoder: geocoder,
		zones:    zones,
		clock:    clock,
		timeout:  DefaultGeocodeTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve always returns a well-formed Result; failures are described by
// Result.Kind and Result.Message.
func (r *Resolver) Resolve(ctx context.Context, location string) Result {
	res, _ := r.Lookup(ctx, location)
	return res
}

// Lookup is Resolve for programmatic callers: on failure it also returns
// the classified *Error with its underlying cause.
func (r *Resolver) Lookup(ctx context.Context, location string) (res Result, err error) {
	defer func() {
		if p := recover(); p != nil {
			e := unknown(fmt.Errorf("%v", p))
			slog.ErrorContext(ctx, "Location time resolution panicked", "location", location, "panic", p)
			res, err = e.result(), e
		}
	}()

	res, e := r.lookup(ctx, location)
	if e != nil {
		slog.WarnContext(ctx, "Location time resolution failed",
			"location", location,
			"kind", e.Kind.String(),
			"error", e)
		return e.result(), e
	}
	return res, nil
}

func (r *Resolver) lookup(ctx context.Context, location string) (Result, *Error) {
	query := strings.TrimSpace(location)
	if query == "" {
		return Result{}, invalidInput()
	}

	gctx, cancel := context.WithTimeout(ctx, r.timeout)
	coords, err := r.geocoder.Geocode(gctx, query)
	cancel()
	if err != nil {
		return Result{}, classifyGeocodeError(location, err)
	}

	zone, err := r.zones.TimezoneAt(coords.Latitude, coords.Longitude)
	switch {
	case errors.Is(err, ErrTimezoneNotFound):
		return Result{}, timezoneNotFound(location, err)
	case err != nil:
		return Result{}, unknown(err)
	case zone == "":
		return Result{}, timezoneNotFound(location, ErrTimezoneNotFound)
	}

	now, err := r.clock.Now(zone)
	if err != nil {
		return Result{}, unknown(err)
	}

	return Result{
		Status:      StatusSuccess,
		Location:    location,
		Latitude:    coords.Latitude,
		Longitude:   coords.Longitude,
		Timezone:    zone,
		CurrentTime: now.Format(TimeLayout),
	}, nil
}

func classifyGeocodeError(location string, err error) *Error {
	if errors.Is(err, ErrLocationNotFound) {
		return locationNotFound(location, err)
	}
	if errors.Is(err, ErrServiceUnavailable) || errors.Is(err, context.DeadlineExceeded) {
		return serviceUnavailable(err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return serviceUnavailable(err)
	}
	return unknown(err)
}
