package weather

import (
	"github.com/i474232898/japan-weather/internal/maybe"
)

const (
	HourlyForecastLength = 24
	DailyForecastLength  = 7

	// TomorrowIndex is the literal daily position used for tomorrow.
	// The upstream daily axis is assumed to start at today.
	TomorrowIndex = 1
)

// ConditionExceptional is reported for codes outside the lookup table.
const ConditionExceptional = "exceptional"

// conditionByCode maps WMO weather codes to coarse condition labels.
var conditionByCode = map[int]string{
	0:  "sunny",
	1:  "sunny",
	2:  "partlycloudy",
	3:  "cloudy",
	45: "fog",
	48: "fog",
	51: "rainy",
	53: "rainy",
	55: "rainy",
	56: "rainy",
	57: "rainy",
	61: "rainy",
	63: "rainy",
	65: "rainy",
	66: "rainy",
	67: "rainy",
	71: "snowy",
	73: "snowy",
	75: "snowy",
	77: "snowy",
	80: "rainy",
	81: "rainy",
	82: "pouring",
	85: "snowy",
	86: "snowy",
	95: "lightning-rainy",
	96: "lightning-rainy",
	99: "lightning-rainy",
}

// tomorrowByCode is the finer vocabulary used by the tomorrow sensor.
var tomorrowByCode = map[int]string{
	0:  "sunny",
	1:  "partly_cloudy",
	2:  "partly_cloudy",
	3:  "cloudy",
	45: "fog",
	48: "fog",
	51: "light_rain",
	53: "rain",
	55: "heavy_rain",
	61: "light_rain",
	63: "rain",
	65: "heavy_rain",
	71: "light_snow",
	73: "snow",
	75: "heavy_snow",
	95: "thunderstorm",
}

// ConditionForCode returns the condition label for a weather code.
func ConditionForCode(code maybe.Maybe[int]) string {
	c, ok := code.Get()
	if !ok {
		return ConditionExceptional
	}
	if cond, ok := conditionByCode[c]; ok {
		return cond
	}
	return ConditionExceptional
}

// TomorrowConditionForCode is like ConditionForCode with the tomorrow
// vocabulary; unmapped codes are "unknown".
func TomorrowConditionForCode(code maybe.Maybe[int]) string {
	c, ok := code.Get()
	if !ok {
		return "unknown"
	}
	if cond, ok := tomorrowByCode[c]; ok {
		return cond
	}
	return "unknown"
}

// ForecastPoint is one entry of a projected forecast list.
type ForecastPoint struct {
	Time                     string               `json:"datetime"`
	Temperature              maybe.Maybe[float64] `json:"temperature"`
	TemperatureLow           maybe.Maybe[float64] `json:"templow"`
	Condition                string               `json:"condition"`
	Precipitation            maybe.Maybe[float64] `json:"precipitation"`
	PrecipitationProbability maybe.Maybe[float64] `json:"precipitationProbability"`
}

// HourlyForecast projects up to n hourly points. Hours beyond the
// temperature column are dropped; other columns may be shorter and yield
// unavailable values.
func HourlyForecast(hourly Series, n int) []ForecastPoint {
	points := make([]ForecastPoint, 0, n)
	for i := 0; i < min(n, len(hourly.Time)); i++ {
		if i >= hourly.Len("temperature_2m") {
			continue
		}
		points = append(points, ForecastPoint{
			Time:                     hourly.Time[i],
			Temperature:              hourly.Float("temperature_2m", i),
			Condition:                ConditionForCode(hourly.Int("weather_code", i)),
			Precipitation:            hourly.Float("precipitation", i),
			PrecipitationProbability: hourly.Float("precipitation_probability", i),
		})
	}
	return points
}

// DailyForecast projects up to n daily points. Days need both the max and
// min temperature columns to reach that far.
func DailyForecast(daily Series, n int) []ForecastPoint {
	points := make([]ForecastPoint, 0, n)
	for i := 0; i < min(n, len(daily.Time)); i++ {
		if i >= daily.Len("temperature_2m_max") || i >= daily.Len("temperature_2m_min") {
			continue
		}
		points = append(points, ForecastPoint{
			Time:                     daily.Time[i],
			Temperature:              daily.Float("temperature_2m_max", i),
			TemperatureLow:           daily.Float("temperature_2m_min", i),
			Condition:                ConditionForCode(daily.Int("weather_code", i)),
			Precipitation:            daily.Float("precipitation_sum", i),
			PrecipitationProbability: daily.Float("precipitation_probability_max", i),
		})
	}
	return points
}
