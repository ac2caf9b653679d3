package entities

import (
	"fmt"
	"strings"

	"github.com/i474232898/japan-weather/internal/maybe"
	"github.com/i474232898/japan-weather/internal/trend"
	"github.com/i474232898/japan-weather/internal/weather"
)

type trendKind struct {
	key       string
	name      string
	quantity  string
	threshold float64
	value     func(weather.Current) maybe.Maybe[float64]
	history   func(*Board) *trend.History
}

var (
	temperatureTrend = trendKind{
		key:       "temperature_trend",
		name:      "Temperature Trend",
		quantity:  "temperature",
		threshold: trend.TemperatureThreshold,
		value:     func(c weather.Current) maybe.Maybe[float64] { return c.Temperature },
		history:   func(b *Board) *trend.History { return b.temperature },
	}
	pressureTrend = trendKind{
		key:       "pressure_trend",
		name:      "Pressure Trend",
		quantity:  "pressure",
		threshold: trend.PressureThreshold,
		value:     func(c weather.Current) maybe.Maybe[float64] { return c.Pressure },
		history:   func(b *Board) *trend.History { return b.pressure },
	}
)

const (
	tomorrowKey = "tomorrow_weather"
	summaryKey  = "weather_summary"
)

func (b *Board) trendReading(snap *weather.Snapshot, kind trendKind) Reading {
	h := kind.history(b)
	current := kind.value(snap.Current)

	state := trend.Unknown
	if current.IsValid() {
		state = trend.Classify(h.Values(), kind.threshold)
	}

	attrs := map[string]any{
		"trend_type":    kind.key,
		"current_value": current,
		"data_points":   h.Len(),
		"last_update":   snap.LastUpdate,
	}
	if change, ok := h.Change(); ok {
		attrs["change_1h"] = change
	}

	return Reading{
		Key:        kind.key,
		Name:       kind.name,
		State:      string(state),
		Icon:       "mdi:chart-line",
		Attributes: attrs,
	}
}

func tomorrowReading(snap *weather.Snapshot) Reading {
	daily := snap.Daily
	idx := weather.TomorrowIndex

	state := Unknown
	attrs := map[string]any{
		"forecast_day": "tomorrow",
		"last_update":  snap.LastUpdate,
	}

	if daily.Has("time") {
		state = weather.TomorrowConditionForCode(daily.Int("weather_code", idx))

		for attr, column := range map[string]string{
			"max_temperature":           "temperature_2m_max",
			"min_temperature":           "temperature_2m_min",
			"precipitation_sum":         "precipitation_sum",
			"precipitation_probability": "precipitation_probability_max",
		} {
			if idx < daily.Len(column) {
				attrs[attr] = daily.Float(column, idx)
			}
		}
	}

	return Reading{
		Key:        tomorrowKey,
		Name:       "Tomorrow's Weather",
		State:      state,
		Icon:       "mdi:calendar-today",
		Attributes: attrs,
	}
}

func summaryReading(snap *weather.Snapshot) Reading {
	c := snap.Current
	return Reading{
		Key:   summaryKey,
		Name:  "Weather Summary",
		State: Summary(c, len(snap.Alerts)),
		Icon:  "mdi:weather-partly-cloudy",
		Attributes: map[string]any{
			"current_temperature":          c.Temperature,
			"comfort_level":                c.ComfortLevel,
			"active_alerts":                len(snap.Alerts),
			"recommendations":              Recommendations(c),
			"weather_quality":              WeatherQuality(c),
			"outdoor_activity_suitability": OutdoorSuitability(c),
			"last_update":                  snap.LastUpdate,
		},
	}
}

// Summary is a short phrase built from the temperature band, the comfort
// level and the number of active alerts.
func Summary(c weather.Current, alerts int) string {
	var parts []string

	if temp, ok := c.Temperature.Get(); ok {
		switch {
		case temp >= 30:
			parts = append(parts, "Hot weather")
		case temp >= 25:
			parts = append(parts, "Warm weather")
		case temp >= 15:
			parts = append(parts, "Mild weather")
		case temp >= 5:
			parts = append(parts, "Cool weather")
		default:
			parts = append(parts, "Cold weather")
		}
	}

	if c.ComfortLevel != "" && c.ComfortLevel != weather.ComfortUnknown {
		parts = append(parts, fmt.Sprintf("comfort level: %s", c.ComfortLevel))
	}

	if alerts > 0 {
		parts = append(parts, fmt.Sprintf("%d active alert(s)", alerts))
	}

	if len(parts) == 0 {
		return "Weather data unavailable"
	}
	return strings.Join(parts, ", ")
}

func Recommendations(c weather.Current) []string {
	recs := make([]string, 0)

	if temp, ok := c.Temperature.Get(); ok {
		switch {
		case temp >= 35:
			recs = append(recs, "Stay hydrated and avoid prolonged sun exposure")
		case temp <= 0:
			recs = append(recs, "Dress warmly and protect against frostbite")
		}
	}
	if c.UVIndex.ValueOrDefault(0) >= 6 {
		recs = append(recs, "Use sunscreen and protective clothing")
	}
	if c.PrecipitationProbability.ValueOrDefault(0) >= 70 {
		recs = append(recs, "Carry an umbrella or raincoat")
	}
	if c.WindSpeed.ValueOrDefault(0) >= 30 {
		recs = append(recs, "Secure loose objects and avoid high-rise areas")
	}
	return recs
}

// WeatherQuality scores the conditions on a 0-100 scale and returns its band.
func WeatherQuality(c weather.Current) string {
	temp := c.Temperature.ValueOrDefault(20)
	humidity := c.Humidity.ValueOrDefault(50)
	precip := c.Precipitation.ValueOrDefault(0)
	wind := c.WindSpeed.ValueOrDefault(10)

	score := 0

	switch {
	case temp >= 18 && temp <= 26:
		score += 25
	case temp >= 15 && temp <= 30:
		score += 15
	case temp >= 10 && temp <= 35:
		score += 5
	}

	switch {
	case humidity >= 40 && humidity <= 60:
		score += 25
	case humidity >= 30 && humidity <= 70:
		score += 15
	case humidity >= 20 && humidity <= 80:
		score += 5
	}

	switch {
	case precip == 0:
		score += 25
	case precip <= 2:
		score += 10
	}

	switch {
	case wind >= 5 && wind <= 20:
		score += 25
	case wind <= 30:
		score += 15
	case wind <= 40:
		score += 5
	}

	switch {
	case score >= 80:
		return "excellent"
	case score >= 60:
		return "good"
	case score >= 40:
		return "fair"
	default:
		return "poor"
	}
}

func OutdoorSuitability(c weather.Current) string {
	temp := c.Temperature.ValueOrDefault(20)
	precip := c.Precipitation.ValueOrDefault(0)
	wind := c.WindSpeed.ValueOrDefault(10)
	uv := c.UVIndex.ValueOrDefault(3)

	switch {
	case precip > 5, wind > 40:
		return "not_suitable"
	case temp < -5 || temp > 40:
		return "caution_required"
	case precip > 0 || wind > 25 || uv > 9:
		return "moderate"
	default:
		return "suitable"
	}
}
