package weather

import (
	"context"
	"errors"
)

var (
	// ErrLocationNotFound means a city name did not resolve to coordinates.
	ErrLocationNotFound = errors.New("location not found")

	// ErrUpstreamUnavailable means the provider could not be reached after
	// the gateway exhausted its retries.
	ErrUpstreamUnavailable = errors.New("weather provider unavailable")

	// ErrInvalidPayload means the provider answered but the response failed
	// the gateway's shape validation.
	ErrInvalidPayload = errors.New("invalid provider payload")
)

// Gateway abstracts the upstream weather provider. Implementations handle
// all network I/O, retries and caching; the derivation engine only ever sees
// validated payloads.
type Gateway interface {
	// ResolveLocation geocodes a city name. Returns ErrLocationNotFound
	// when the name does not match any place.
	ResolveLocation(ctx context.Context, name string) (Location, error)

	// FetchForecast retrieves current conditions plus hourly and daily
	// series for up to 16 forecast days, pre-converted to the requested
	// unit system. The payload is validated before being returned: the
	// current, daily and hourly sections are present and the current block
	// carries at least a temperature and a weather code.
	FetchForecast(ctx context.Context, lat, lon float64, days int, units Units) (ForecastPayload, error)

	// FetchAirQuality retrieves the current air quality reading. It never
	// fails the overall flow: on any error a zero-valued snapshot is
	// returned instead.
	FetchAirQuality(ctx context.Context, lat, lon float64) AirQualitySnapshot
}
