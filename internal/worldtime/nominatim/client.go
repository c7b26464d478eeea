// Package nominatim implements worldtime.Geocoder on top of the
// OpenStreetMap Nominatim search API.
package nominatim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/acai-travel/global-time-agent/internal/worldtime"
)

const (
	DefaultBaseURL   = "https://nominatim.openstreetmap.org"
	DefaultUserAgent = "global_time_agent"
)

// Client geocodes free text with Nominatim. The request deadline comes from
// the caller's context.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithUserAgent sets the User-Agent header; Nominatim's usage policy
// rejects anonymous clients.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		userAgent:  DefaultUserAgent,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Geocode returns the coordinates of the best match for text.
func (c *Client) Geocode(ctx context.Context, text string) (worldtime.Coordinates, error) {
	params := url.Values{
		"q":      {text},
		"format": {"jsonv2"},
		"limit":  {"1"},
	}
	fullURL := c.baseURL + "/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return worldtime.Coordinates{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Caller cancellation says nothing about the service.
		if errors.Is(err, context.Canceled) {
			return worldtime.Coordinates{}, fmt.Errorf("making request: %w", err)
		}
		return worldtime.Coordinates{}, fmt.Errorf("%w: making request: %w", worldtime.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return worldtime.Coordinates{}, fmt.Errorf("%w: API returned %d: %s", worldtime.ErrServiceUnavailable, resp.StatusCode, body)
	}

	var places []place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return worldtime.Coordinates{}, fmt.Errorf("%w: decoding response: %w", worldtime.ErrServiceUnavailable, err)
	}

	if len(places) == 0 {
		return worldtime.Coordinates{}, worldtime.ErrLocationNotFound
	}

	coords, err := places[0].coordinates()
	if err != nil {
		return worldtime.Coordinates{}, fmt.Errorf("%w: %w", worldtime.ErrServiceUnavailable, err)
	}

	slog.DebugContext(ctx, "Geocoded location",
		"query", text,
		"display_name", places[0].DisplayName,
		"lat", coords.Latitude,
		"lon", coords.Longitude)

	return coords, nil
}

// Nominatim API response types.

type place struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (p place) coordinates() (worldtime.Coordinates, error) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return worldtime.Coordinates{}, fmt.Errorf("parsing latitude %q: %w", p.Lat, err)
	}
	lon, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return worldtime.Coordinates{}, fmt.Errorf("parsing longitude %q: %w", p.Lon, err)
	}
	if !finite(lat) || !finite(lon) {
		return worldtime.Coordinates{}, fmt.Errorf("non-finite coordinates (%q, %q)", p.Lat, p.Lon)
	}
	return worldtime.Coordinates{Latitude: lat, Longitude: lon}, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
