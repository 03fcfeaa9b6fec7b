// Package openmeteo implements the weather.Gateway contract against the
// Open-Meteo public APIs: forecast, geocoding and air quality.
package openmeteo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/botaynabessar/meteo-pro-2.000/internal/weather"
)

const (
	defaultForecastURL   = "https://api.open-meteo.com/v1/forecast"
	defaultGeocodingURL  = "https://geocoding-api.open-meteo.com/v1/search"
	defaultAirQualityURL = "https://air-quality-api.open-meteo.com/v1/air-quality"

	// Open-Meteo serves at most 16 forecast days.
	maxForecastDays = 16

	currentFields = "temperature_2m,relative_humidity_2m,apparent_temperature,precipitation,weather_code,wind_speed_10m,pressure_msl,cloud_cover,is_day"
	hourlyFields  = "temperature_2m,precipitation_probability,precipitation,weather_code,wind_speed_10m,relative_humidity_2m,cloud_cover"
	dailyFields   = "weather_code,temperature_2m_max,temperature_2m_min,precipitation_sum,precipitation_probability_max,wind_speed_10m_max,sunrise,sunset,uv_index_max"

	airQualityFields = "european_aqi,us_aqi,uv_index,dust,carbon_monoxide,pm10,pm2_5"
)

// Config tunes the client. Zero fields fall back to defaults.
type Config struct {
	ForecastURL   string
	GeocodingURL  string
	AirQualityURL string

	// MaxRetries is the number of additional attempts after the first
	// request fails with a timeout or connection error.
	MaxRetries int
	// RetryDelay is the fixed pause between attempts.
	RetryDelay time.Duration

	// RequestsPerSecond bounds the outbound request rate across all three
	// endpoints. Zero disables rate limiting.
	RequestsPerSecond float64
	Burst             int
}

func (c *Config) applyDefaults() {
	if c.ForecastURL == "" {
		c.ForecastURL = defaultForecastURL
	}
	if c.GeocodingURL == "" {
		c.GeocodingURL = defaultGeocodingURL
	}
	if c.AirQualityURL == "" {
		c.AirQualityURL = defaultAirQualityURL
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = time.Second
	}
}

// Client talks to Open-Meteo with bounded retries, a circuit breaker and an
// outbound rate limit. It implements weather.Gateway.
type Client struct {
	cfg     Config
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
	limiter *rate.Limiter
}

// NewClient creates a Client using the given HTTP client, which should carry
// the request timeout.
func NewClient(httpClient *http.Client, cfg Config) *Client {
	cfg.applyDefaults()

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openmeteo",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &Client{
		cfg:     cfg,
		client:  httpClient,
		circuit: cb,
		limiter: limiter,
	}
}

var _ weather.Gateway = (*Client)(nil)

var (
	errRateLimited = errors.New("rate limited")
	errServerError = errors.New("server error")
	errUnexpected  = errors.New("unexpected status code")
)

// getJSON performs a GET to base with the given query, retrying on timeout
// and connection failure with a fixed delay, and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, base string, params url.Values, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(c.cfg.RetryDelay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}

		result, err := c.circuit.Execute(func() (interface{}, error) {
			req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+params.Encode(), nil)
			if reqErr != nil {
				return nil, reqErr
			}
			resp, doErr := c.client.Do(req)
			if doErr != nil {
				return nil, doErr
			}
			if resp.StatusCode == http.StatusTooManyRequests {
				resp.Body.Close()
				return nil, errRateLimited
			}
			if resp.StatusCode >= 500 {
				resp.Body.Close()
				return nil, fmt.Errorf("%w: status %d", errServerError, resp.StatusCode)
			}
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				resp.Body.Close()
				return nil, fmt.Errorf("%w: status %d", errUnexpected, resp.StatusCode)
			}
			return resp, nil
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return fmt.Errorf("%w: %v", weather.ErrUpstreamUnavailable, err)
			}
			if errors.Is(err, errUnexpected) {
				return fmt.Errorf("%w: %v", weather.ErrUpstreamUnavailable, err)
			}
			if isTransient(err) || errors.Is(err, errServerError) || errors.Is(err, errRateLimited) {
				lastErr = err
				continue
			}
			return err
		}

		resp := result.(*http.Response)
		err = json.NewDecoder(resp.Body).Decode(out)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("%w: %v", weather.ErrInvalidPayload, err)
		}
		return nil
	}

	return fmt.Errorf("%w: %v", weather.ErrUpstreamUnavailable, lastErr)
}

// isTransient reports whether the error is a timeout or connection failure
// worth retrying.
func isTransient(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}

// geocodingResponse mirrors the geocoding search endpoint.
type geocodingResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Country   string  `json:"country"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Timezone  string  `json:"timezone"`
	} `json:"results"`
}

// ResolveLocation geocodes a city name through the Open-Meteo search API,
// taking the first match.
func (c *Client) ResolveLocation(ctx context.Context, name string) (weather.Location, error) {
	params := url.Values{}
	params.Set("name", name)
	params.Set("count", "1")
	params.Set("language", "en")
	params.Set("format", "json")

	var resp geocodingResponse
	if err := c.getJSON(ctx, c.cfg.GeocodingURL, params, &resp); err != nil {
		return weather.Location{}, err
	}
	if len(resp.Results) == 0 {
		return weather.Location{}, fmt.Errorf("%w: %q", weather.ErrLocationNotFound, name)
	}

	r := resp.Results[0]
	loc := weather.Location{
		Name:      r.Name,
		Country:   r.Country,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		Timezone:  r.Timezone,
	}
	if loc.Timezone == "" {
		loc.Timezone = "auto"
	}
	return loc, nil
}

// forecastEnvelope defers section decoding so presence can be validated
// before the payload is accepted.
type forecastEnvelope struct {
	Latitude  float64         `json:"latitude"`
	Longitude float64         `json:"longitude"`
	Timezone  string          `json:"timezone"`
	Current   json.RawMessage `json:"current"`
	Daily     json.RawMessage `json:"daily"`
	Hourly    json.RawMessage `json:"hourly"`
}

// FetchForecast retrieves the forecast, pre-converted to the requested unit
// system. days is clamped to [1,16]. The response is validated before being
// handed to the caller: all three sections must be present and the current
// block must carry a temperature and a weather code.
func (c *Client) FetchForecast(ctx context.Context, lat, lon float64, days int, units weather.Units) (weather.ForecastPayload, error) {
	if days < 1 {
		days = 1
	}
	if days > maxForecastDays {
		days = maxForecastDays
	}

	tempUnit, windUnit := "celsius", "kmh"
	if units == weather.UnitsImperial {
		tempUnit, windUnit = "fahrenheit", "mph"
	}

	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%f", lat))
	params.Set("longitude", fmt.Sprintf("%f", lon))
	params.Set("current", currentFields)
	params.Set("hourly", hourlyFields)
	params.Set("daily", dailyFields)
	params.Set("timezone", "auto")
	params.Set("forecast_days", fmt.Sprintf("%d", days))
	params.Set("temperature_unit", tempUnit)
	params.Set("wind_speed_unit", windUnit)

	var env forecastEnvelope
	if err := c.getJSON(ctx, c.cfg.ForecastURL, params, &env); err != nil {
		return weather.ForecastPayload{}, err
	}

	if len(env.Current) == 0 || len(env.Daily) == 0 || len(env.Hourly) == 0 {
		return weather.ForecastPayload{}, fmt.Errorf("%w: missing current, daily or hourly section", weather.ErrInvalidPayload)
	}

	// The current block must carry its essential fields, not just decode.
	var probe struct {
		Temperature *float64 `json:"temperature_2m"`
		WeatherCode *int     `json:"weather_code"`
	}
	if err := json.Unmarshal(env.Current, &probe); err != nil || probe.Temperature == nil || probe.WeatherCode == nil {
		return weather.ForecastPayload{}, fmt.Errorf("%w: current block lacks temperature or weather code", weather.ErrInvalidPayload)
	}

	payload := weather.ForecastPayload{
		Latitude:  env.Latitude,
		Longitude: env.Longitude,
		Timezone:  env.Timezone,
	}
	if err := json.Unmarshal(env.Current, &payload.Current); err != nil {
		return weather.ForecastPayload{}, fmt.Errorf("%w: %v", weather.ErrInvalidPayload, err)
	}
	if err := json.Unmarshal(env.Daily, &payload.Daily); err != nil {
		return weather.ForecastPayload{}, fmt.Errorf("%w: %v", weather.ErrInvalidPayload, err)
	}
	if err := json.Unmarshal(env.Hourly, &payload.Hourly); err != nil {
		return weather.ForecastPayload{}, fmt.Errorf("%w: %v", weather.ErrInvalidPayload, err)
	}
	return payload, nil
}

// FetchAirQuality retrieves the current air quality. It degrades to a zero
// snapshot on any failure rather than propagating an error, so a broken air
// quality endpoint never takes the forecast down with it.
func (c *Client) FetchAirQuality(ctx context.Context, lat, lon float64) weather.AirQualitySnapshot {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%f", lat))
	params.Set("longitude", fmt.Sprintf("%f", lon))
	params.Set("current", airQualityFields)
	params.Set("timezone", "auto")

	var resp struct {
		Current weather.AirQualitySnapshot `json:"current"`
	}
	if err := c.getJSON(ctx, c.cfg.AirQualityURL, params, &resp); err != nil {
		log.Printf("air quality fetch failed for %.4f,%.4f: %v", lat, lon, err)
		return weather.AirQualitySnapshot{}
	}
	return resp.Current
}
