package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"HTTP_ADDR", "LOG_LEVEL", "LOG_FORMAT", "SHUTDOWN_TIMEOUT", "METRICS_INTERVAL",
		"GEOCODE_TIMEOUT", "NOMINATIM_URL", "NOMINATIM_USER_AGENT", "AGENT_MODEL", "OPENAI_BASE_URL",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 10*time.Second, cfg.MetricsInterval)
	assert.Equal(t, 10*time.Second, cfg.GeocodeTimeout)
	assert.Equal(t, "https://nominatim.openstreetmap.org", cfg.NominatimURL)
	assert.Equal(t, "global_time_agent", cfg.NominatimUserAgent)
	assert.Equal(t, "gpt-4.1", cfg.AgentModel)
	assert.Empty(t, cfg.OpenAIBaseURL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("GEOCODE_TIMEOUT", "3s")
	t.Setenv("NOMINATIM_URL", "http://localhost:8088")
	t.Setenv("AGENT_MODEL", "gemini-2.5-flash")
	t.Setenv("OPENAI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/openai/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 3*time.Second, cfg.GeocodeTimeout)
	assert.Equal(t, "http://localhost:8088", cfg.NominatimURL)
	assert.Equal(t, "gemini-2.5-flash", cfg.AgentModel)
	assert.Equal(t, "https://generativelanguage.googleapis.com/v1beta/openai/", cfg.OpenAIBaseURL)
}

func TestLoad_InvalidDurations(t *testing.T) {
	for _, key := range []string{"GEOCODE_TIMEOUT", "METRICS_INTERVAL"} {
		for _, val := range []string{"soon", "-1s", "0s"} {
			t.Run(key+"="+val, func(t *testing.T) {
				t.Setenv(key, val)
				_, err := Load()
				require.Error(t, err)
				assert.Contains(t, err.Error(), key)
			})
		}
	}
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	for _, val := range []string{"not-a-duration", "-1s"} {
		t.Run(val, func(t *testing.T) {
			t.Setenv("SHUTDOWN_TIMEOUT", val)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
		})
	}
}
