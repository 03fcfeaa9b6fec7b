package weather

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrNoRecords is returned when an aggregation is asked for zero records.
var ErrNoRecords = errors.New("no daily records")

// MalformedPayloadError reports a contract violation between the gateway and
// the derivation engine: a mandatory daily array is missing or its length
// disagrees with the rest of the payload.
type MalformedPayloadError struct {
	Field  string
	Reason string
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("malformed daily payload: field %q %s", e.Field, e.Reason)
}

// Weather-code sets driving the advisory lines, checked in this order.
// A code contributes at most one weather line.
var (
	rainCodes  = map[int]bool{61: true, 63: true, 65: true, 80: true, 81: true, 82: true, 95: true, 96: true, 99: true}
	snowCodes  = map[int]bool{71: true, 73: true, 75: true, 85: true, 86: true}
	clearCodes = map[int]bool{0: true, 1: true}
)

// round1 rounds to one decimal place; every derived index is reported at
// that precision.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// NormalizeDaily converts the provider's parallel daily arrays into ordered
// DailyRecord rows. The optional probability and UV arrays are zero-filled
// when absent; a missing or length-mismatched mandatory array is a contract
// violation and fails with a *MalformedPayloadError.
func NormalizeDaily(daily DailyPayload) ([]DailyRecord, error) {
	n := len(daily.Time)
	if n == 0 {
		return nil, &MalformedPayloadError{Field: "time", Reason: "is missing or empty"}
	}

	mandatory := []struct {
		field  string
		length int
	}{
		{"temperature_2m_max", len(daily.TemperatureMax)},
		{"temperature_2m_min", len(daily.TemperatureMin)},
		{"precipitation_sum", len(daily.PrecipitationSum)},
		{"wind_speed_10m_max", len(daily.WindSpeedMax)},
		{"weather_code", len(daily.WeatherCode)},
	}
	for _, m := range mandatory {
		if m.length == 0 {
			return nil, &MalformedPayloadError{Field: m.field, Reason: "is missing or empty"}
		}
		if m.length != n {
			return nil, &MalformedPayloadError{
				Field:  m.field,
				Reason: fmt.Sprintf("has %d entries, want %d", m.length, n),
			}
		}
	}

	probs := daily.PrecipProbabilityMax
	if probs == nil {
		probs = make([]float64, n)
	} else if len(probs) != n {
		return nil, &MalformedPayloadError{
			Field:  "precipitation_probability_max",
			Reason: fmt.Sprintf("has %d entries, want %d", len(probs), n),
		}
	}
	uv := daily.UVIndexMax
	if uv == nil {
		uv = make([]float64, n)
	} else if len(uv) != n {
		return nil, &MalformedPayloadError{
			Field:  "uv_index_max",
			Reason: fmt.Sprintf("has %d entries, want %d", len(uv), n),
		}
	}

	records := make([]DailyRecord, 0, n)
	for i := 0; i < n; i++ {
		date, err := time.Parse("2006-01-02", daily.Time[i])
		if err != nil {
			return nil, &MalformedPayloadError{
				Field:  "time",
				Reason: fmt.Sprintf("entry %d is not a date: %v", i, err),
			}
		}
		records = append(records, DailyRecord{
			Date:            date,
			TemperatureMax:  daily.TemperatureMax[i],
			TemperatureMin:  daily.TemperatureMin[i],
			Precipitation:   daily.PrecipitationSum[i],
			RainProbability: probs[i],
			WindSpeedMax:    daily.WindSpeedMax[i],
			WeatherCode:     daily.WeatherCode[i],
			UVIndexMax:      uv[i],
		})
	}
	return records, nil
}

// ComputeStatistics aggregates the period statistics over the records.
// An empty sequence returns the zero value and ErrNoRecords.
func ComputeStatistics(records []DailyRecord) (PeriodStatistics, error) {
	if len(records) == 0 {
		return PeriodStatistics{}, ErrNoRecords
	}

	stats := PeriodStatistics{
		MaxTemperature: records[0].TemperatureMax,
		MinTemperature: records[0].TemperatureMin,
	}

	var sumMaxTemp, sumWind float64
	for _, r := range records {
		sumMaxTemp += r.TemperatureMax
		sumWind += r.WindSpeedMax
		stats.TotalPrecipitation += r.Precipitation

		if r.TemperatureMax > stats.MaxTemperature {
			stats.MaxTemperature = r.TemperatureMax
		}
		if r.TemperatureMin < stats.MinTemperature {
			stats.MinTemperature = r.TemperatureMin
		}
		if r.WindSpeedMax > stats.MaxWindSpeed {
			stats.MaxWindSpeed = r.WindSpeedMax
		}
		if r.UVIndexMax > stats.MaxUVIndex {
			stats.MaxUVIndex = r.UVIndexMax
		}
		if r.Precipitation > 0 {
			stats.RainyDays++
		}
	}

	n := float64(len(records))
	stats.MeanMaxTemperature = sumMaxTemp / n
	stats.MeanMaxWindSpeed = sumWind / n
	return stats, nil
}

// ComfortIndex computes the heat-index approximation for the given unit
// system, rounded to one decimal. The metric branch is a deliberately
// simplified approximation, not the Steadman/NWS heat-index equation; it is
// kept as-is for parity with the system this engine replaces. Inputs are not
// range-checked: out-of-domain values yield a deterministic out-of-domain
// result.
func ComfortIndex(temp, humidity float64, units Units) float64 {
	var hi float64
	if units == UnitsImperial {
		hi = 0.5 * (temp + 61.0 + (temp-68.0)*1.2 + humidity*0.094)
	} else {
		hi = temp + 0.05*temp + (humidity-50)*0.1
	}
	return round1(hi)
}

// WindChill computes the felt temperature under wind. The formula only
// engages inside the danger band (metric: temp <= 10 and wind >= 4.8;
// imperial: temp <= 50 and wind >= 3); outside it the input temperature is
// returned unchanged.
func WindChill(temp, windSpeed float64, units Units) float64 {
	w := math.Pow(windSpeed, 0.16)
	if units == UnitsImperial {
		if temp <= 50 && windSpeed >= 3 {
			return round1(35.74 + 0.6215*temp - 35.75*w + 0.4275*temp*w)
		}
		return temp
	}
	if temp <= 10 && windSpeed >= 4.8 {
		return round1(13.12 + 0.6215*temp - 11.37*w + 0.3965*temp*w)
	}
	return temp
}

// GlobalComfortScore scores overall comfort on a 0-100 scale from metric
// inputs. Each penalty is linear and unclamped on its own; only the final
// score is clamped. Temperature is ideal in [18,25], humidity in [40,60],
// wind below 20 km/h, AQI below 50.
func GlobalComfortScore(temp, humidity, windSpeed, aqi float64) float64 {
	score := 100.0

	if temp < 18 {
		score -= (18 - temp) * 2
	} else if temp > 25 {
		score -= (temp - 25) * 2.5
	}

	if humidity < 40 {
		score -= (40 - humidity) * 0.5
	} else if humidity > 60 {
		score -= (humidity - 60) * 0.5
	}

	if windSpeed > 20 {
		score -= (windSpeed - 20) * 0.5
	}
	if aqi > 50 {
		score -= (aqi - 50) * 0.5
	}

	return math.Max(0, math.Min(100, round1(score)))
}

// AQITier maps a European AQI value to its severity label. Band upper
// bounds are inclusive.
func AQITier(aqi float64) string {
	switch {
	case aqi <= 20:
		return "Excellent"
	case aqi <= 40:
		return "Good"
	case aqi <= 60:
		return "Moderate"
	case aqi <= 80:
		return "Poor"
	case aqi <= 100:
		return "Bad"
	default:
		return "Very Bad"
	}
}

// Recommendations produces ordered advisory lines: always one clothing line
// first, then at most one weather line (rain beats snow beats clear), then
// any temperature-extreme health lines. Temperature is converted to Celsius
// internally, so banding is independent of the requested unit system.
func Recommendations(temp float64, code int, units Units) []string {
	tempC := temp
	if units == UnitsImperial {
		tempC = (temp - 32) * 5 / 9
	}

	var advice []string

	switch {
	case tempC < 0:
		advice = append(advice, "Winter clothing essential: heavy coat, gloves and a hat.")
	case tempC < 10:
		advice = append(advice, "A warm coat and scarf are recommended.")
	case tempC < 20:
		advice = append(advice, "A jacket or a sweater will do.")
	case tempC < 30:
		advice = append(advice, "Light, comfortable clothing.")
	default:
		advice = append(advice, "Very light clothing recommended.")
	}

	switch {
	case rainCodes[code]:
		advice = append(advice, "Don't forget your umbrella.")
	case snowCodes[code]:
		advice = append(advice, "Snow expected: drive carefully.")
	case clearCodes[code]:
		advice = append(advice, "Sunglasses advised.")
	}

	if tempC > 30 {
		advice = append(advice, "Remember to stay well hydrated.")
	}
	if tempC < 0 {
		advice = append(advice, "Beware of the risk of frostbite.")
	}

	return advice
}

// TrendAnalysis derives coarse temperature and precipitation trends over the
// period. Temperature compares the last day's max against the first day's;
// precipitation compares the second half's total against the first half's.
// A single record reports both trends as stable, since the first half of a
// length-1 split is empty and last minus first is zero. Empty input returns
// ErrNoRecords.
func TrendAnalysis(records []DailyRecord) (Trends, error) {
	if len(records) == 0 {
		return Trends{}, ErrNoRecords
	}

	trends := Trends{Temperature: TrendStable, Precipitation: TrendStable}
	if len(records) == 1 {
		// Nothing to compare: the first half of the split is empty and
		// last minus first is zero.
		return trends, nil
	}

	diff := records[len(records)-1].TemperatureMax - records[0].TemperatureMax
	if diff > 3 {
		trends.Temperature = TrendWarming
	} else if diff < -3 {
		trends.Temperature = TrendCooling
	}

	mid := len(records) / 2
	var firstHalf, secondHalf float64
	for _, r := range records[:mid] {
		firstHalf += r.Precipitation
	}
	for _, r := range records[mid:] {
		secondHalf += r.Precipitation
	}

	if secondHalf > firstHalf*1.5 {
		trends.Precipitation = TrendIncreasing
	} else if secondHalf < firstHalf*0.5 {
		trends.Precipitation = TrendDecreasing
	}

	return trends, nil
}
