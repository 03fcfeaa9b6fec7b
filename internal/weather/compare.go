package weather

import (
	"context"
	"log"
	"sync"
)

// MaxCompareCities caps how many cities a single comparison run may cover.
const MaxCompareCities = 4

// CompareCities fetches current conditions and air quality for each city
// concurrently, scores them, and returns one LocationResult per city that
// succeeded, in the order the cities were given. Cities that fail to resolve
// or to fetch are skipped; they neither abort the batch nor appear in the
// result. When every city fails the result is empty, not an error.
func (s *Service) CompareCities(ctx context.Context, cities []string, units Units) []LocationResult {
	if len(cities) > MaxCompareCities {
		cities = cities[:MaxCompareCities]
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = make([]*LocationResult, len(cities))
	)

	for i, city := range cities {
		i, city := i, city
		wg.Add(1)
		go func() {
			defer wg.Done()

			loc, err := s.gateway.ResolveLocation(ctx, city)
			if err != nil {
				log.Printf("compare: skipping %s: %v", city, err)
				return
			}

			payload, err := s.gateway.FetchForecast(ctx, loc.Latitude, loc.Longitude, 1, units)
			if err != nil {
				log.Printf("compare: skipping %s: %v", city, err)
				return
			}
			aqi := s.gateway.FetchAirQuality(ctx, loc.Latitude, loc.Longitude)

			cur := payload.Current
			res := LocationResult{
				Name:        city,
				Score:       GlobalComfortScore(cur.Temperature, cur.Humidity, cur.WindSpeed, aqi.EuropeanAQI),
				Temperature: cur.Temperature,
				Humidity:    cur.Humidity,
				WindSpeed:   cur.WindSpeed,
				AQI:         aqi.EuropeanAQI,
				Category:    ClassifyCategory(cur.WeatherCode, cur.Daytime()),
				Description: Describe(cur.WeatherCode),
			}

			mu.Lock()
			results[i] = &res
			mu.Unlock()
		}()
	}
	wg.Wait()

	// Compact while preserving encounter order.
	out := make([]LocationResult, 0, len(cities))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out
}

// BestLocation picks the result with the highest comfort score. Ties go to
// the earliest entry: only a strictly greater score displaces the leader.
// The second return value is false when the slice is empty.
func BestLocation(results []LocationResult) (LocationResult, bool) {
	if len(results) == 0 {
		return LocationResult{}, false
	}
	best := results[0]
	for _, r := range results[1:] {
		if r.Score > best.Score {
			best = r
		}
	}
	return best, true
}
