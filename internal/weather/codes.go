package weather

// BaseCategory is the coarse classification of a weather code before the
// day/night qualifier is applied.
type BaseCategory string

const (
	CategorySunny  BaseCategory = "sunny"
	CategoryCloudy BaseCategory = "cloudy"
	CategoryMisty  BaseCategory = "misty"
	CategoryRainy  BaseCategory = "rainy"
	CategorySnowy  BaseCategory = "snowy"
	CategoryStormy BaseCategory = "stormy"
)

// Category is a base category qualified by day or night, e.g. "rainy_day".
// The one irregular combination is sunny at night, which collapses to
// "clear_night" since sunshine has no night analogue.
type Category string

// fallbackDescription is returned for codes outside the table.
const fallbackDescription = "Variable conditions"

type codeInfo struct {
	description string
	category    BaseCategory
}

// weatherCodes maps provider weather codes to a description and category.
// Built once at init, never mutated. Covers the WMO set the provider emits
// plus the legacy 29-43 rows some archive endpoints still return.
var weatherCodes = map[int]codeInfo{
	0:  {"Clear sky", CategorySunny},
	1:  {"Mainly clear", CategorySunny},
	2:  {"Partly cloudy", CategoryCloudy},
	3:  {"Overcast", CategoryCloudy},
	29: {"Fog", CategoryMisty},
	30: {"Freezing fog", CategoryMisty},
	31: {"Light drizzle", CategoryRainy},
	32: {"Moderate drizzle", CategoryRainy},
	33: {"Dense drizzle", CategoryRainy},
	34: {"Light rain", CategoryRainy},
	35: {"Moderate rain", CategoryRainy},
	36: {"Heavy rain", CategoryRainy},
	37: {"Light snow", CategorySnowy},
	38: {"Moderate snow", CategorySnowy},
	39: {"Heavy snow", CategorySnowy},
	40: {"Hail", CategorySnowy},
	41: {"Light showers", CategoryRainy},
	42: {"Moderate showers", CategoryRainy},
	43: {"Violent showers", CategoryRainy},
	45: {"Fog", CategoryMisty},
	48: {"Freezing fog", CategoryMisty},
	51: {"Light drizzle", CategoryRainy},
	53: {"Moderate drizzle", CategoryRainy},
	55: {"Dense drizzle", CategoryRainy},
	61: {"Light rain", CategoryRainy},
	63: {"Moderate rain", CategoryRainy},
	65: {"Heavy rain", CategoryRainy},
	71: {"Light snow", CategorySnowy},
	73: {"Moderate snow", CategorySnowy},
	75: {"Heavy snow", CategorySnowy},
	77: {"Hail", CategorySnowy},
	80: {"Light showers", CategoryRainy},
	81: {"Moderate showers", CategoryRainy},
	82: {"Violent showers", CategoryRainy},
	85: {"Light snow showers", CategorySnowy},
	86: {"Heavy snow showers", CategorySnowy},
	95: {"Thunderstorm", CategoryStormy},
	96: {"Thunderstorm with hail", CategoryStormy},
	99: {"Severe thunderstorm with hail", CategoryStormy},
}

// Describe returns the human-readable description for a weather code.
// Unknown codes fall back to a generic description.
func Describe(code int) string {
	if info, ok := weatherCodes[code]; ok {
		return info.description
	}
	return fallbackDescription
}

// CategoryOf returns the base category for a weather code, defaulting to
// cloudy for unknown codes.
func CategoryOf(code int) BaseCategory {
	if info, ok := weatherCodes[code]; ok {
		return info.category
	}
	return CategoryCloudy
}

// ClassifyCategory combines the base category of a code with the day/night
// qualifier. Sunny at night becomes "clear_night"; every other category
// simply gets the qualifier appended.
func ClassifyCategory(code int, isDay bool) Category {
	base := CategoryOf(code)

	if isDay {
		return Category(string(base) + "_day")
	}
	if base == CategorySunny {
		return "clear_night"
	}
	return Category(string(base) + "_night")
}
