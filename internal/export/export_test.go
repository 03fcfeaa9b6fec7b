package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/botaynabessar/meteo-pro-2.000/internal/weather"
)

func sampleReport() weather.Report {
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	records := make([]weather.DailyRecord, 0, 9)
	for i := 0; i < 9; i++ {
		records = append(records, weather.DailyRecord{
			Date:           day.AddDate(0, 0, i),
			TemperatureMax: 20 + float64(i),
			TemperatureMin: 12,
			Precipitation:  0.5,
			WindSpeedMax:   14,
			WeatherCode:    61,
		})
	}
	return weather.Report{
		Location:    weather.Location{Name: "Le Havre", Country: "FR"},
		Units:       weather.UnitsMetric,
		GeneratedAt: time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC),
		Current: weather.CurrentConditions{
			Temperature: 21.4, Humidity: 58, WindSpeed: 9.3,
			Pressure: 1013.2, WeatherCode: 61, IsDay: 1,
		},
		AirQuality:  weather.AirQualitySnapshot{EuropeanAQI: 18},
		Records:     records,
		Statistics:  weather.PeriodStatistics{MeanMaxTemperature: 24, RainyDays: 9},
		Description: "Light rain",
		AQITier:     "Excellent",
	}
}

func TestToCSV(t *testing.T) {
	data, name, err := ToCSV(sampleReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != 10 {
		t.Fatalf("got %d rows, want header plus 9 records", len(rows))
	}
	if rows[0][0] != "Date" || rows[0][1] != "Max Temp" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][0] != "2024-06-01" || rows[1][1] != "20.0" {
		t.Errorf("unexpected first record: %v", rows[1])
	}

	if !strings.HasPrefix(name, "meteo_Le_Havre_") || !strings.HasSuffix(name, ".csv") {
		t.Errorf("unexpected filename %q", name)
	}
}

func TestToJSONNormalizesNonFiniteValues(t *testing.T) {
	report := sampleReport()
	report.Statistics.MeanMaxTemperature = math.NaN()
	report.Current.Pressure = math.Inf(1)

	data, name, err := ToJSON(report)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(name, ".json") {
		t.Errorf("unexpected filename %q", name)
	}

	var doc struct {
		Statistics map[string]any `json:"statistics"`
		Current    map[string]any `json:"current"`
		Daily      []any          `json:"daily_records"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if doc.Statistics["mean_max_temperature"] != nil {
		t.Errorf("NaN statistic = %v, want null", doc.Statistics["mean_max_temperature"])
	}
	if doc.Current["pressure"] != nil {
		t.Errorf("infinite pressure = %v, want null", doc.Current["pressure"])
	}
	if doc.Statistics["rainy_days"] != float64(9) {
		t.Errorf("rainy_days = %v, want 9", doc.Statistics["rainy_days"])
	}
	if len(doc.Daily) != 9 {
		t.Errorf("got %d daily records, want 9", len(doc.Daily))
	}
}

func TestToPDF(t *testing.T) {
	data, name, err := ToPDF(sampleReport())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("output does not start with the PDF magic bytes")
	}
	if !strings.HasSuffix(name, ".pdf") {
		t.Errorf("unexpected filename %q", name)
	}
}
