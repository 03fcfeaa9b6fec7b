package weather

import (
	"time"
)

// Units identifies the unit system a payload was requested in.
// Metric is degrees Celsius and km/h, imperial is Fahrenheit and mph.
type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
)

// Valid reports whether u is one of the supported unit systems.
func (u Units) Valid() bool {
	return u == UnitsMetric || u == UnitsImperial
}

// Location is a geocoded place as resolved by the provider.
type Location struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

// CurrentConditions is the point-in-time snapshot for a location.
// Field names follow the provider's current block.
type CurrentConditions struct {
	Temperature         float64 `json:"temperature_2m"`
	ApparentTemperature float64 `json:"apparent_temperature"`
	Humidity            float64 `json:"relative_humidity_2m"`
	Precipitation       float64 `json:"precipitation"`
	WeatherCode         int     `json:"weather_code"`
	WindSpeed           float64 `json:"wind_speed_10m"`
	Pressure            float64 `json:"pressure_msl"`
	CloudCover          float64 `json:"cloud_cover"`
	IsDay               int     `json:"is_day"`
}

// Daytime reports whether the snapshot was taken during daylight.
func (c CurrentConditions) Daytime() bool {
	return c.IsDay == 1
}

// AirQualitySnapshot is the point-in-time air quality reading.
// A zero value means "no data available" and is a valid, degraded input
// everywhere a snapshot is consumed.
type AirQualitySnapshot struct {
	EuropeanAQI    float64 `json:"european_aqi"`
	USAQI          float64 `json:"us_aqi"`
	UVIndex        float64 `json:"uv_index"`
	Dust           float64 `json:"dust"`
	CarbonMonoxide float64 `json:"carbon_monoxide"`
	PM10           float64 `json:"pm10"`
	PM25           float64 `json:"pm2_5"`
}

// DailyPayload holds the provider's parallel per-day arrays, one entry per
// forecast day. PrecipProbabilityMax and UVIndexMax are optional upstream
// and may be nil; every other array is mandatory.
type DailyPayload struct {
	Time                 []string  `json:"time"`
	TemperatureMax       []float64 `json:"temperature_2m_max"`
	TemperatureMin       []float64 `json:"temperature_2m_min"`
	PrecipitationSum     []float64 `json:"precipitation_sum"`
	PrecipProbabilityMax []float64 `json:"precipitation_probability_max"`
	WindSpeedMax         []float64 `json:"wind_speed_10m_max"`
	WeatherCode          []int     `json:"weather_code"`
	UVIndexMax           []float64 `json:"uv_index_max"`
	Sunrise              []string  `json:"sunrise"`
	Sunset               []string  `json:"sunset"`
}

// HourlyPayload holds the provider's parallel per-hour arrays. It is carried
// through to the presentation layer for charting and is not derived from.
type HourlyPayload struct {
	Time              []string  `json:"time"`
	Temperature       []float64 `json:"temperature_2m"`
	PrecipProbability []float64 `json:"precipitation_probability"`
	Precipitation     []float64 `json:"precipitation"`
	WeatherCode       []int     `json:"weather_code"`
	WindSpeed         []float64 `json:"wind_speed_10m"`
	Humidity          []float64 `json:"relative_humidity_2m"`
	CloudCover        []float64 `json:"cloud_cover"`
}

// ForecastPayload is the validated raw forecast handed over by the gateway.
type ForecastPayload struct {
	Latitude  float64           `json:"latitude"`
	Longitude float64           `json:"longitude"`
	Timezone  string            `json:"timezone"`
	Current   CurrentConditions `json:"current"`
	Daily     DailyPayload      `json:"daily"`
	Hourly    HourlyPayload     `json:"hourly"`
}

// DailyRecord is one normalized forecast day. Records are ordered by date
// ascending and never mutated after construction.
type DailyRecord struct {
	Date            time.Time `json:"date"`
	TemperatureMax  float64   `json:"temperature_max"`
	TemperatureMin  float64   `json:"temperature_min"`
	Precipitation   float64   `json:"precipitation"`
	RainProbability float64   `json:"rain_probability"`
	WindSpeedMax    float64   `json:"wind_speed_max"`
	WeatherCode     int       `json:"weather_code"`
	UVIndexMax      float64   `json:"uv_index_max"`
}

// PeriodStatistics aggregates a sequence of daily records.
type PeriodStatistics struct {
	MeanMaxTemperature float64 `json:"mean_max_temperature"`
	MaxTemperature     float64 `json:"max_temperature"`
	MinTemperature     float64 `json:"min_temperature"`
	TotalPrecipitation float64 `json:"total_precipitation"`
	RainyDays          int     `json:"rainy_days"`
	MeanMaxWindSpeed   float64 `json:"mean_max_wind_speed"`
	MaxWindSpeed       float64 `json:"max_wind_speed"`
	MaxUVIndex         float64 `json:"max_uv_index"`
}

// Trends describes the direction of temperature and precipitation over the
// forecast period.
type Trends struct {
	Temperature   Trend `json:"temperature"`
	Precipitation Trend `json:"precipitation"`
}

// Trend is a coarse direction label.
type Trend string

const (
	TrendWarming    Trend = "warming"
	TrendCooling    Trend = "cooling"
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// Report bundles everything derived for one city, ready for display or
// export. Built once per fetch and replaced wholesale on the next one.
type Report struct {
	Location    Location           `json:"location"`
	Units       Units              `json:"units"`
	GeneratedAt time.Time          `json:"generated_at"`
	Current     CurrentConditions  `json:"current"`
	AirQuality  AirQualitySnapshot `json:"air_quality"`
	Records     []DailyRecord      `json:"records"`
	Statistics  PeriodStatistics   `json:"statistics"`
	Trends      Trends             `json:"trends"`

	Description  string   `json:"description"`
	Category     Category `json:"category"`
	ComfortIndex float64  `json:"comfort_index"`
	WindChill    float64  `json:"wind_chill"`
	ComfortScore float64  `json:"comfort_score"`
	AQITier      string   `json:"aqi_tier"`
	Advice       []string `json:"advice"`

	Hourly HourlyPayload `json:"hourly"`
}

// LocationResult is one city's entry in a comparison run. Ephemeral: built
// during the run and discarded after ranking.
type LocationResult struct {
	Name        string   `json:"name"`
	Score       float64  `json:"score"`
	Temperature float64  `json:"temperature"`
	Humidity    float64  `json:"humidity"`
	WindSpeed   float64  `json:"wind_speed"`
	AQI         float64  `json:"aqi"`
	Category    Category `json:"category"`
	Description string   `json:"description"`
}
