// Package export serializes derived weather reports to CSV, JSON and PDF.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/botaynabessar/meteo-pro-2.000/internal/weather"
)

var csvHeader = []string{
	"Date", "Max Temp", "Min Temp", "Precipitation",
	"Rain Probability", "Max Wind", "Weather Code", "Max UV",
}

// ToCSV renders the daily records as a flat delimited table with
// human-readable headers. Returns the file content and a suggested
// filename.
func ToCSV(report weather.Report) ([]byte, string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, "", err
	}
	for _, r := range report.Records {
		row := []string{
			r.Date.Format("2006-01-02"),
			formatFloat(r.TemperatureMax),
			formatFloat(r.TemperatureMin),
			formatFloat(r.Precipitation),
			formatFloat(r.RainProbability),
			formatFloat(r.WindSpeedMax),
			strconv.Itoa(r.WeatherCode),
			formatFloat(r.UVIndexMax),
		}
		if err := w.Write(row); err != nil {
			return nil, "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), filename(report, "csv"), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// filename builds meteo_<city>_<yyyymmdd_hhmm>.<ext>, with spaces in the
// city name flattened.
func filename(report weather.Report, ext string) string {
	city := strings.ReplaceAll(report.Location.Name, " ", "_")
	stamp := report.GeneratedAt
	if stamp.IsZero() {
		stamp = time.Now().UTC()
	}
	return fmt.Sprintf("meteo_%s_%s.%s", city, stamp.Format("20060102_1504"), ext)
}
