package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/botaynabessar/meteo-pro-2.000/internal/weather"
)

// reportTableDays caps how many daily rows the printed table shows.
const reportTableDays = 7

// ToPDF renders a printable A4 report: headline conditions, period
// statistics and a table of the first seven daily records.
func ToPDF(report weather.Report) ([]byte, string, error) {
	tempUnit, windUnit := "°C", "km/h"
	if report.Units == weather.UnitsImperial {
		tempUnit, windUnit = "°F", "mph"
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; the translator keeps the degree sign and any
	// accented city names printable.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(0, 14, tr(fmt.Sprintf("Weather Report - %s", report.Location.Name)), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8, fmt.Sprintf("Generated on %s", report.GeneratedAt.Format("02/01/2006 at 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(4)
	x, y := pdf.GetXY()
	pdf.Line(15, y, 195, y)
	pdf.SetXY(x, y+6)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Current Conditions", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, line := range []string{
		fmt.Sprintf("Temperature: %.1f%s (%s)", report.Current.Temperature, tempUnit, report.Description),
		fmt.Sprintf("Feels like: %.1f%s", report.Current.ApparentTemperature, tempUnit),
		fmt.Sprintf("Humidity: %.0f%%", report.Current.Humidity),
		fmt.Sprintf("Wind: %.1f %s", report.Current.WindSpeed, windUnit),
		fmt.Sprintf("Pressure: %.1f hPa", report.Current.Pressure),
		fmt.Sprintf("Air quality: %s (European AQI %.0f)", report.AQITier, report.AirQuality.EuropeanAQI),
	} {
		pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Period Statistics", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, line := range []string{
		fmt.Sprintf("Mean max temperature: %.1f%s", report.Statistics.MeanMaxTemperature, tempUnit),
		fmt.Sprintf("Max temperature: %.1f%s", report.Statistics.MaxTemperature, tempUnit),
		fmt.Sprintf("Min temperature: %.1f%s", report.Statistics.MinTemperature, tempUnit),
		fmt.Sprintf("Total precipitation: %.1f mm", report.Statistics.TotalPrecipitation),
		fmt.Sprintf("Rainy days: %d", report.Statistics.RainyDays),
		fmt.Sprintf("Mean max wind: %.1f %s", report.Statistics.MeanMaxWindSpeed, windUnit),
	} {
		pdf.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Daily Forecast", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(200, 200, 200)
	for _, h := range []string{"Date", "Max Temp", "Min Temp", "Rain (mm)"} {
		pdf.CellFormat(40, 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 11)
	rows := report.Records
	if len(rows) > reportTableDays {
		rows = rows[:reportTableDays]
	}
	for _, r := range rows {
		pdf.CellFormat(40, 7, r.Date.Format("02/01"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 7, tr(fmt.Sprintf("%.1f%s", r.TemperatureMax, tempUnit)), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 7, tr(fmt.Sprintf("%.1f%s", r.TemperatureMin, tempUnit)), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%.1f", r.Precipitation), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.SetY(-20)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, "Data provided by the Open-Meteo API", "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), filename(report, "pdf"), nil
}
