package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/botaynabessar/meteo-pro-2.000/internal/weather"
)

// TTLConfig holds the per-operation expiries.
type TTLConfig struct {
	Forecast   time.Duration
	Geocoding  time.Duration
	AirQuality time.Duration
}

// Gateway wraps a weather.Gateway and memoizes its responses, keyed by
// operation and parameters, with an expiry per operation type. Errors are
// never cached.
type Gateway struct {
	next  weather.Gateway
	store *TTLStore
	ttl   TTLConfig
}

// NewGateway creates the caching decorator around next.
func NewGateway(next weather.Gateway, ttl TTLConfig) *Gateway {
	return &Gateway{next: next, store: NewTTLStore(), ttl: ttl}
}

var _ weather.Gateway = (*Gateway)(nil)

// ResolveLocation caches geocoding results per lowercased city name.
func (g *Gateway) ResolveLocation(ctx context.Context, name string) (weather.Location, error) {
	key := "geocode:" + strings.ToLower(strings.TrimSpace(name))
	if v, ok := g.store.Get(key); ok {
		return v.(weather.Location), nil
	}

	loc, err := g.next.ResolveLocation(ctx, name)
	if err != nil {
		return weather.Location{}, err
	}
	g.store.Set(key, loc, g.ttl.Geocoding)
	return loc, nil
}

// FetchForecast caches forecasts per coordinates, day count and unit system.
func (g *Gateway) FetchForecast(ctx context.Context, lat, lon float64, days int, units weather.Units) (weather.ForecastPayload, error) {
	key := fmt.Sprintf("forecast:%.4f:%.4f:%d:%s", lat, lon, days, units)
	if v, ok := g.store.Get(key); ok {
		return v.(weather.ForecastPayload), nil
	}

	payload, err := g.next.FetchForecast(ctx, lat, lon, days, units)
	if err != nil {
		return weather.ForecastPayload{}, err
	}
	g.store.Set(key, payload, g.ttl.Forecast)
	return payload, nil
}

// FetchAirQuality caches readings per coordinates. Zero-valued snapshots
// (the degraded no-data answer) are not cached, so a recovered endpoint is
// picked up on the next call.
func (g *Gateway) FetchAirQuality(ctx context.Context, lat, lon float64) weather.AirQualitySnapshot {
	key := fmt.Sprintf("airquality:%.4f:%.4f", lat, lon)
	if v, ok := g.store.Get(key); ok {
		return v.(weather.AirQualitySnapshot)
	}

	snap := g.next.FetchAirQuality(ctx, lat, lon)
	if snap != (weather.AirQualitySnapshot{}) {
		g.store.Set(key, snap, g.ttl.AirQuality)
	}
	return snap
}

// CacheStats exposes the underlying hit/miss counters.
func (g *Gateway) CacheStats() (hits, misses int) {
	return g.store.Stats()
}
