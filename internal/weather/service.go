package weather

import (
	"context"
	"fmt"
	"time"
)

// Service turns gateway payloads into fully derived reports.
type Service struct {
	gateway Gateway
}

// NewService creates a Service on top of the given gateway.
func NewService(gateway Gateway) *Service {
	return &Service{gateway: gateway}
}

// CityReport resolves a city and assembles the complete derived report for
// it: normalized daily records, period statistics, trends, classification,
// indices and advisories. Air-quality absence degrades to a zero snapshot;
// a malformed daily payload fails the whole report since it indicates a
// gateway contract violation.
func (s *Service) CityReport(ctx context.Context, city string, days int, units Units) (Report, error) {
	loc, err := s.gateway.ResolveLocation(ctx, city)
	if err != nil {
		return Report{}, err
	}

	payload, err := s.gateway.FetchForecast(ctx, loc.Latitude, loc.Longitude, days, units)
	if err != nil {
		return Report{}, err
	}
	aqi := s.gateway.FetchAirQuality(ctx, loc.Latitude, loc.Longitude)

	records, err := NormalizeDaily(payload.Daily)
	if err != nil {
		return Report{}, fmt.Errorf("normalizing forecast for %s: %w", loc.Name, err)
	}

	stats, err := ComputeStatistics(records)
	if err != nil {
		return Report{}, fmt.Errorf("computing statistics for %s: %w", loc.Name, err)
	}
	trends, err := TrendAnalysis(records)
	if err != nil {
		return Report{}, fmt.Errorf("analyzing trends for %s: %w", loc.Name, err)
	}

	cur := payload.Current
	return Report{
		Location:     loc,
		Units:        units,
		GeneratedAt:  time.Now().UTC(),
		Current:      cur,
		AirQuality:   aqi,
		Records:      records,
		Statistics:   stats,
		Trends:       trends,
		Description:  Describe(cur.WeatherCode),
		Category:     ClassifyCategory(cur.WeatherCode, cur.Daytime()),
		ComfortIndex: ComfortIndex(cur.Temperature, cur.Humidity, units),
		WindChill:    WindChill(cur.Temperature, cur.WindSpeed, units),
		ComfortScore: GlobalComfortScore(cur.Temperature, cur.Humidity, cur.WindSpeed, aqi.EuropeanAQI),
		AQITier:      AQITier(aqi.EuropeanAQI),
		Advice:       Recommendations(cur.Temperature, cur.WeatherCode, units),
		Hourly:       payload.Hourly,
	}, nil
}
