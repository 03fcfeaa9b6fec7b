package export

import (
	"encoding/json"
	"math"

	"github.com/botaynabessar/meteo-pro-2.000/internal/weather"
)

// ToJSON renders a structured document with location metadata, the export
// timestamp, period statistics, current conditions and the daily records.
// Non-finite numbers are normalized to null before marshalling, since JSON
// has no representation for them.
func ToJSON(report weather.Report) ([]byte, string, error) {
	doc := map[string]any{
		"city":        report.Location,
		"exported_at": report.GeneratedAt,
		"units":       report.Units,
		"statistics": map[string]any{
			"mean_max_temperature": finite(report.Statistics.MeanMaxTemperature),
			"max_temperature":      finite(report.Statistics.MaxTemperature),
			"min_temperature":      finite(report.Statistics.MinTemperature),
			"total_precipitation":  finite(report.Statistics.TotalPrecipitation),
			"rainy_days":           report.Statistics.RainyDays,
			"mean_max_wind_speed":  finite(report.Statistics.MeanMaxWindSpeed),
			"max_wind_speed":       finite(report.Statistics.MaxWindSpeed),
			"max_uv_index":         finite(report.Statistics.MaxUVIndex),
		},
		"current": map[string]any{
			"temperature":          finite(report.Current.Temperature),
			"apparent_temperature": finite(report.Current.ApparentTemperature),
			"humidity":             finite(report.Current.Humidity),
			"precipitation":        finite(report.Current.Precipitation),
			"weather_code":         report.Current.WeatherCode,
			"description":          report.Description,
			"wind_speed":           finite(report.Current.WindSpeed),
			"pressure":             finite(report.Current.Pressure),
			"cloud_cover":          finite(report.Current.CloudCover),
			"is_day":               report.Current.IsDay,
		},
		"daily_records": dailyDocs(report.Records),
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, "", err
	}
	return data, filename(report, "json"), nil
}

func dailyDocs(records []weather.DailyRecord) []map[string]any {
	docs := make([]map[string]any, 0, len(records))
	for _, r := range records {
		docs = append(docs, map[string]any{
			"date":             r.Date.Format("2006-01-02"),
			"temperature_max":  finite(r.TemperatureMax),
			"temperature_min":  finite(r.TemperatureMin),
			"precipitation":    finite(r.Precipitation),
			"rain_probability": finite(r.RainProbability),
			"wind_speed_max":   finite(r.WindSpeedMax),
			"weather_code":     r.WeatherCode,
			"uv_index_max":     finite(r.UVIndexMax),
		})
	}
	return docs
}

// finite passes v through unless it is NaN or infinite, in which case nil
// marks the value as absent.
func finite(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}
