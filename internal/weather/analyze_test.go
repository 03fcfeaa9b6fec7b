package weather

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func approx(got, want float64) bool {
	return math.Abs(got-want) < 0.051
}

func sampleDaily(n int) DailyPayload {
	p := DailyPayload{}
	for i := 0; i < n; i++ {
		p.Time = append(p.Time, "2024-06-0"+string(rune('1'+i)))
		p.TemperatureMax = append(p.TemperatureMax, 20+float64(i))
		p.TemperatureMin = append(p.TemperatureMin, 10+float64(i))
		p.PrecipitationSum = append(p.PrecipitationSum, float64(i))
		p.WindSpeedMax = append(p.WindSpeedMax, 15)
		p.WeatherCode = append(p.WeatherCode, 1)
	}
	return p
}

func TestNormalizeDailyFillsOptionalArrays(t *testing.T) {
	records, err := NormalizeDaily(sampleDaily(7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 7 {
		t.Fatalf("got %d records, want 7", len(records))
	}
	for i, r := range records {
		if r.RainProbability != 0 || r.UVIndexMax != 0 {
			t.Errorf("record %d: optional fields not zero-filled: prob=%v uv=%v", i, r.RainProbability, r.UVIndexMax)
		}
	}
	if !records[0].Date.Before(records[6].Date) {
		t.Error("records not ordered by date ascending")
	}
}

func TestNormalizeDailyMissingMandatoryField(t *testing.T) {
	p := sampleDaily(3)
	p.WindSpeedMax = nil

	_, err := NormalizeDaily(p)
	var malformed *MalformedPayloadError
	if !errors.As(err, &malformed) {
		t.Fatalf("got %v, want *MalformedPayloadError", err)
	}
	if malformed.Field != "wind_speed_10m_max" {
		t.Errorf("error names field %q, want wind_speed_10m_max", malformed.Field)
	}
}

func TestNormalizeDailyLengthMismatch(t *testing.T) {
	p := sampleDaily(3)
	p.TemperatureMin = p.TemperatureMin[:2]

	_, err := NormalizeDaily(p)
	var malformed *MalformedPayloadError
	if !errors.As(err, &malformed) {
		t.Fatalf("got %v, want *MalformedPayloadError", err)
	}
	if malformed.Field != "temperature_2m_min" {
		t.Errorf("error names field %q, want temperature_2m_min", malformed.Field)
	}
}

func TestNormalizeDailyEmptyPayload(t *testing.T) {
	_, err := NormalizeDaily(DailyPayload{})
	var malformed *MalformedPayloadError
	if !errors.As(err, &malformed) {
		t.Fatalf("got %v, want *MalformedPayloadError", err)
	}
}

func TestComputeStatisticsRoundTrip(t *testing.T) {
	// All-zero precipitation: zero rainy days.
	p := sampleDaily(7)
	for i := range p.PrecipitationSum {
		p.PrecipitationSum[i] = 0
	}
	records, err := NormalizeDaily(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stats, err := ComputeStatistics(records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.RainyDays != 0 {
		t.Errorf("RainyDays = %d, want 0", stats.RainyDays)
	}

	// All-positive precipitation: every day counts.
	for i := range p.PrecipitationSum {
		p.PrecipitationSum[i] = 0.5
	}
	records, _ = NormalizeDaily(p)
	stats, _ = ComputeStatistics(records)
	if stats.RainyDays != 7 {
		t.Errorf("RainyDays = %d, want 7", stats.RainyDays)
	}
	if !approx(stats.TotalPrecipitation, 3.5) {
		t.Errorf("TotalPrecipitation = %v, want 3.5", stats.TotalPrecipitation)
	}
	if !approx(stats.MeanMaxTemperature, 23) {
		t.Errorf("MeanMaxTemperature = %v, want 23", stats.MeanMaxTemperature)
	}
	if stats.MaxTemperature != 26 || stats.MinTemperature != 10 {
		t.Errorf("period extremes = %v/%v, want 26/10", stats.MaxTemperature, stats.MinTemperature)
	}
	if stats.MaxWindSpeed != 15 || !approx(stats.MeanMaxWindSpeed, 15) {
		t.Errorf("wind stats = %v/%v, want 15/15", stats.MaxWindSpeed, stats.MeanMaxWindSpeed)
	}
}

func TestComputeStatisticsEmpty(t *testing.T) {
	stats, err := ComputeStatistics(nil)
	if !errors.Is(err, ErrNoRecords) {
		t.Fatalf("got %v, want ErrNoRecords", err)
	}
	if stats != (PeriodStatistics{}) {
		t.Errorf("empty input should yield the zero value, got %+v", stats)
	}
}

func TestComfortIndex(t *testing.T) {
	// Metric: t + 0.05t + (h-50)*0.1
	if got := ComfortIndex(20, 50, UnitsMetric); !approx(got, 21) {
		t.Errorf("ComfortIndex(20, 50, metric) = %v, want 21.0", got)
	}
	if got := ComfortIndex(30, 80, UnitsMetric); !approx(got, 34.5) {
		t.Errorf("ComfortIndex(30, 80, metric) = %v, want 34.5", got)
	}
	// Imperial: 0.5*(t + 61 + (t-68)*1.2 + h*0.094)
	if got := ComfortIndex(68, 50, UnitsImperial); !approx(got, 66.9) {
		t.Errorf("ComfortIndex(68, 50, imperial) = %v, want ~66.9", got)
	}
}

func TestWindChill(t *testing.T) {
	// Inside the metric danger band the formula engages and cools.
	if got := WindChill(5, 10, UnitsMetric); got >= 5 {
		t.Errorf("WindChill(5, 10, metric) = %v, want < 5", got)
	}
	// Outside the band (too warm) the input passes through unchanged.
	if got := WindChill(15, 30, UnitsMetric); got != 15 {
		t.Errorf("WindChill(15, 30, metric) = %v, want 15", got)
	}
	// Outside the band (too calm).
	if got := WindChill(5, 4, UnitsMetric); got != 5 {
		t.Errorf("WindChill(5, 4, metric) = %v, want 5", got)
	}
	// Imperial band.
	if got := WindChill(30, 20, UnitsImperial); got >= 30 {
		t.Errorf("WindChill(30, 20, imperial) = %v, want < 30", got)
	}
	if got := WindChill(60, 20, UnitsImperial); got != 60 {
		t.Errorf("WindChill(60, 20, imperial) = %v, want 60", got)
	}
}

func TestGlobalComfortScore(t *testing.T) {
	// Midpoint of every comfort band: no penalties at all.
	if got := GlobalComfortScore(21.5, 50, 10, 30); got != 100 {
		t.Errorf("score = %v, want 100", got)
	}
	// Hot, humid, windy, polluted: heavy penalties but never negative.
	if got := GlobalComfortScore(35, 80, 40, 150); !approx(got, 5) || got < 0 {
		t.Errorf("score = %v, want 5.0", got)
	}
	// Extreme inputs clamp to zero.
	if got := GlobalComfortScore(45, 100, 80, 300); got != 0 {
		t.Errorf("score = %v, want 0", got)
	}
	// Individual penalties are not clamped: cold alone can zero the score.
	if got := GlobalComfortScore(-40, 50, 10, 30); got != 0 {
		t.Errorf("score = %v, want 0", got)
	}
}

func TestAQITierBoundaries(t *testing.T) {
	tests := []struct {
		aqi  float64
		want string
	}{
		{0, "Excellent"},
		{20, "Excellent"},
		{21, "Good"},
		{40, "Good"},
		{41, "Moderate"},
		{60, "Moderate"},
		{61, "Poor"},
		{80, "Poor"},
		{81, "Bad"},
		{100, "Bad"},
		{101, "Very Bad"},
		{500, "Very Bad"},
	}
	for _, tt := range tests {
		if got := AQITier(tt.aqi); got != tt.want {
			t.Errorf("AQITier(%v) = %q, want %q", tt.aqi, got, tt.want)
		}
	}
}

func hasLine(lines []string, substr string) bool {
	for _, l := range lines {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

func TestRecommendationsHotClearDay(t *testing.T) {
	advice := Recommendations(35, 0, UnitsMetric)
	if len(advice) == 0 {
		t.Fatal("advice must never be empty")
	}
	if !strings.Contains(advice[0], "light clothing") {
		t.Errorf("first line must be clothing advice, got %q", advice[0])
	}
	if !hasLine(advice, "hydrated") {
		t.Error("expected a hydration reminder above 30 degrees")
	}
	if !hasLine(advice, "Sunglasses") {
		t.Error("expected sunglasses advice for a clear code")
	}
	if hasLine(advice, "umbrella") || hasLine(advice, "Snow") {
		t.Errorf("unexpected rain or snow line: %v", advice)
	}
}

func TestRecommendationsWeatherLinePriority(t *testing.T) {
	// Code 95 is both stormy and in the rain set; only the umbrella line
	// may appear, never two weather lines.
	advice := Recommendations(15, 95, UnitsMetric)
	if !hasLine(advice, "umbrella") {
		t.Errorf("expected umbrella advice, got %v", advice)
	}

	advice = Recommendations(-5, 73, UnitsMetric)
	if !hasLine(advice, "drive carefully") {
		t.Errorf("expected snow driving advice, got %v", advice)
	}
	if !hasLine(advice, "frostbite") {
		t.Errorf("expected frostbite warning below zero, got %v", advice)
	}
	if !strings.Contains(advice[0], "Winter clothing") {
		t.Errorf("first line must be clothing advice, got %q", advice[0])
	}
}

func TestRecommendationsConvertsImperial(t *testing.T) {
	// 95F is 35C: same banding as the metric hot case.
	advice := Recommendations(95, 0, UnitsImperial)
	if !strings.Contains(advice[0], "light clothing") {
		t.Errorf("first line = %q, want very light clothing", advice[0])
	}
	if !hasLine(advice, "hydrated") {
		t.Errorf("expected hydration reminder, got %v", advice)
	}
}

func trendRecords(maxTemps, precip []float64) []DailyRecord {
	records := make([]DailyRecord, len(maxTemps))
	for i := range maxTemps {
		records[i] = DailyRecord{TemperatureMax: maxTemps[i], Precipitation: precip[i]}
	}
	return records
}

func TestTrendAnalysis(t *testing.T) {
	// Strictly increasing temperatures with last-first > 3.
	trends, err := TrendAnalysis(trendRecords(
		[]float64{10, 12, 14, 16, 18},
		[]float64{0, 0, 0, 0, 0},
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trends.Temperature != TrendWarming {
		t.Errorf("temperature trend = %q, want warming", trends.Temperature)
	}
	if trends.Precipitation != TrendStable {
		t.Errorf("precipitation trend = %q, want stable for all-zero rain", trends.Precipitation)
	}

	// Flat series.
	trends, _ = TrendAnalysis(trendRecords(
		[]float64{20, 20, 20, 20},
		[]float64{2, 2, 2, 2},
	))
	if trends.Temperature != TrendStable {
		t.Errorf("temperature trend = %q, want stable", trends.Temperature)
	}

	// Cooling and increasing rain.
	trends, _ = TrendAnalysis(trendRecords(
		[]float64{20, 18, 16, 12},
		[]float64{1, 1, 5, 5},
	))
	if trends.Temperature != TrendCooling {
		t.Errorf("temperature trend = %q, want cooling", trends.Temperature)
	}
	if trends.Precipitation != TrendIncreasing {
		t.Errorf("precipitation trend = %q, want increasing", trends.Precipitation)
	}

	// Decreasing rain.
	trends, _ = TrendAnalysis(trendRecords(
		[]float64{20, 20, 20, 20},
		[]float64{8, 8, 1, 1},
	))
	if trends.Precipitation != TrendDecreasing {
		t.Errorf("precipitation trend = %q, want decreasing", trends.Precipitation)
	}
}

func TestTrendAnalysisDegenerateInputs(t *testing.T) {
	if _, err := TrendAnalysis(nil); !errors.Is(err, ErrNoRecords) {
		t.Fatalf("got %v, want ErrNoRecords", err)
	}

	// A single record has an empty first half; both trends are stable even
	// when the lone day saw rain.
	trends, err := TrendAnalysis(trendRecords([]float64{20}, []float64{9}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trends.Temperature != TrendStable || trends.Precipitation != TrendStable {
		t.Errorf("single record trends = %+v, want both stable", trends)
	}
}
