package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/botaynabessar/meteo-pro-2.000/internal/weather"
)

// AppConfig holds everything tunable through the environment.
type AppConfig struct {
	Port string

	// Outbound HTTP behaviour towards the provider.
	HTTPTimeout time.Duration
	RetryMax    int
	RetryDelay  time.Duration

	// Per-operation cache expiries.
	ForecastTTL   time.Duration
	GeocodingTTL  time.Duration
	AirQualityTTL time.Duration

	// Cities refreshed in the background, and how often.
	TrackedCities   []string
	RefreshInterval time.Duration

	// DefaultUnits applies when a request does not specify a unit system.
	DefaultUnits weather.Units

	// SessionMaxAge bounds how long an idle session survives.
	SessionMaxAge time.Duration
}

// Load reads configuration from the environment with sensible defaults.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		Port:     getenvDefault("PORT", "8080"),
		RetryMax: getenvInt("RETRY_MAX", 3),
	}

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.RetryDelay, err = getenvDuration("RETRY_DELAY", time.Second); err != nil {
		return nil, err
	}
	if cfg.ForecastTTL, err = getenvDuration("FORECAST_CACHE_TTL", 15*time.Minute); err != nil {
		return nil, err
	}
	if cfg.GeocodingTTL, err = getenvDuration("GEOCODING_CACHE_TTL", time.Hour); err != nil {
		return nil, err
	}
	if cfg.AirQualityTTL, err = getenvDuration("AIR_QUALITY_CACHE_TTL", time.Hour); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", 15*time.Minute); err != nil {
		return nil, err
	}
	if cfg.SessionMaxAge, err = getenvDuration("SESSION_MAX_AGE", 24*time.Hour); err != nil {
		return nil, err
	}

	units := weather.Units(getenvDefault("DEFAULT_UNITS", string(weather.UnitsMetric)))
	if !units.Valid() {
		return nil, fmt.Errorf("invalid DEFAULT_UNITS: %q", units)
	}
	cfg.DefaultUnits = units

	if cities := os.Getenv("TRACKED_CITIES"); cities != "" {
		for _, c := range strings.Split(cities, ",") {
			if c = strings.TrimSpace(c); c != "" {
				cfg.TrackedCities = append(cfg.TrackedCities, c)
			}
		}
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
