package config

import (
	"fmt"
	"os"
	"time"

	"github.com/acai-travel/global-time-agent/internal/worldtime"
	"github.com/acai-travel/global-time-agent/internal/worldtime/nominatim"
	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	MetricsInterval time.Duration

	GeocodeTimeout     time.Duration
	NominatimURL       string
	NominatimUserAgent string

	// Chat model endpoint. OPENAI_API_KEY is read by the client itself.
	AgentModel    string
	OpenAIBaseURL string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}
	metricsInterval, err := parseDuration("METRICS_INTERVAL", 10*time.Second)
	if err != nil {
		return nil, err
	}
	geocodeTimeout, err := parseDuration("GEOCODE_TIMEOUT", worldtime.DefaultGeocodeTimeout)
	if err != nil {
		return nil, err
	}

	return &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		MetricsInterval: metricsInterval,

		GeocodeTimeout:     geocodeTimeout,
		NominatimURL:       sharedcfg.EnvOrDefault("NOMINATIM_URL", nominatim.DefaultBaseURL),
		NominatimUserAgent: sharedcfg.EnvOrDefault("NOMINATIM_USER_AGENT", nominatim.DefaultUserAgent),

		AgentModel:    sharedcfg.EnvOrDefault("AGENT_MODEL", "gpt-4.1"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
	}, nil
}

// parseDuration covers the positive durations the shared package has no
// parser for.
func parseDuration(key string, def time.Duration) (time.Duration, error) {
	s := sharedcfg.EnvOrDefault(key, def.String())
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive duration", key, s)
	}
	return d, nil
}
