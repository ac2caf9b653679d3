package entities

import (
	"fmt"

	"github.com/i474232898/japan-weather/internal/maybe"
	"github.com/i474232898/japan-weather/internal/weather"
)

const attribution = "Enhanced Japan Weather - Multiple Sources"

// WeatherView is the primary weather entity.
type WeatherView struct {
	Name          string               `json:"name"`
	Condition     maybe.Maybe[string]  `json:"condition"`
	Temperature   maybe.Maybe[float64] `json:"temperature"`
	Humidity      maybe.Maybe[int]     `json:"humidity"`
	Pressure      maybe.Maybe[float64] `json:"pressure"`
	WindSpeed     maybe.Maybe[float64] `json:"windSpeed"`
	WindBearing   maybe.Maybe[float64] `json:"windBearing"`
	WindGustSpeed maybe.Maybe[float64] `json:"windGustSpeed"`
	Visibility    maybe.Maybe[float64] `json:"visibility"`
	UVIndex       maybe.Maybe[float64] `json:"uvIndex"`
	Attribution   string               `json:"attribution"`
	Attributes    map[string]any       `json:"attributes"`
}

// DetailedView reports the apparent temperature as its state.
type DetailedView struct {
	Name        string               `json:"name"`
	Temperature maybe.Maybe[float64] `json:"temperature"`
	Attributes  map[string]any       `json:"attributes"`
}

// AlertsView reports the number of active alerts as its state.
type AlertsView struct {
	Name       string         `json:"name"`
	Count      int            `json:"count"`
	Attributes map[string]any `json:"attributes"`
}

func (b *Board) WeatherView() (WeatherView, error) {
	snap, err := b.reader.Latest()
	if err != nil {
		return WeatherView{}, err
	}
	c := snap.Current

	condition := maybe.None[string]()
	if c.WeatherCode.IsValid() {
		condition = maybe.Some(weather.ConditionForCode(c.WeatherCode))
	}

	humidity := maybe.None[int]()
	if h, ok := c.Humidity.Get(); ok {
		humidity = maybe.Some(int(h))
	}

	return WeatherView{
		Name:          "Enhanced Japan Weather - Primary",
		Condition:     condition,
		Temperature:   c.Temperature,
		Humidity:      humidity,
		Pressure:      c.Pressure,
		WindSpeed:     c.WindSpeed,
		WindBearing:   c.WindDirection,
		WindGustSpeed: c.WindGusts,
		Visibility:    visibilityKm(c),
		UVIndex:       c.UVIndex,
		Attribution:   attribution,
		Attributes: compact(map[string]any{
			"apparent_temperature":      c.ApparentTemperature,
			"heat_index":                c.HeatIndex,
			"comfort_level":             c.ComfortLevel,
			"cloud_cover":               c.CloudCover,
			"precipitation":             c.Precipitation,
			"precipitation_probability": c.PrecipitationProbability,
			"data_sources":              snap.Sources,
			"last_update":               snap.LastUpdate,
			"alerts_count":              len(snap.Alerts),
		}),
	}, nil
}

func (b *Board) DetailedView() (DetailedView, error) {
	snap, err := b.reader.Latest()
	if err != nil {
		return DetailedView{}, err
	}
	c := snap.Current

	uvRisk := Unknown
	if uv, ok := c.UVIndex.Get(); ok {
		uvRisk = UVRisk(uv)
	}

	attrs := map[string]any{
		"real_temperature":          c.Temperature,
		"apparent_temperature":      c.ApparentTemperature,
		"heat_index":                c.HeatIndex,
		"comfort_level":             c.ComfortLevel,
		"humidity":                  c.Humidity,
		"pressure":                  c.Pressure,
		"cloud_cover":               c.CloudCover,
		"visibility_km":             visibilityKm(c),
		"wind_speed_kmh":            c.WindSpeed,
		"wind_direction":            c.WindDirection,
		"wind_gusts_kmh":            c.WindGusts,
		"current_precipitation_mm":  c.Precipitation,
		"precipitation_probability": c.PrecipitationProbability,
		"uv_index":                  c.UVIndex,
		"uv_risk":                   uvRisk,
		"data_sources":              snap.Sources,
		"last_update":               snap.LastUpdate,
	}

	if today := todayIndex(snap.Daily, b.now()); today >= 0 {
		attrs["sunrise"] = snap.Daily.Text("sunrise", today)
		attrs["sunset"] = snap.Daily.Text("sunset", today)
		attrs["max_uv_index"] = snap.Daily.Float("uv_index_max", today)
		attrs["total_precipitation"] = snap.Daily.Float("precipitation_sum", today)
	}

	return DetailedView{
		Name:        "Detailed Weather Metrics",
		Temperature: c.ApparentTemperature,
		Attributes:  compact(attrs),
	}, nil
}

// maxListedAlerts bounds the per-alert attributes of the alerts view.
const maxListedAlerts = 5

func (b *Board) AlertsView() (AlertsView, error) {
	snap, err := b.reader.Latest()
	if err != nil {
		return AlertsView{}, err
	}

	counts := map[weather.Severity]int{}
	for _, a := range snap.Alerts {
		counts[a.Severity]++
	}

	attrs := map[string]any{
		"total_alerts":          len(snap.Alerts),
		"active_alerts":         snap.Alerts,
		"high_severity_count":   counts[weather.SeverityHigh],
		"medium_severity_count": counts[weather.SeverityMedium],
		"low_severity_count":    counts[weather.SeverityLow],
		"alert_types":           alertTypes(snap.Alerts),
		"last_update":           snap.LastUpdate,
	}

	for i, a := range snap.Alerts {
		if i == maxListedAlerts {
			break
		}
		prefix := fmt.Sprintf("alert_%d_", i+1)
		attrs[prefix+"type"] = a.Type
		attrs[prefix+"severity"] = a.Severity
		attrs[prefix+"title"] = a.Title
		attrs[prefix+"description"] = a.Description
		attrs[prefix+"time"] = a.Timestamp
	}

	return AlertsView{
		Name:       "Weather Alerts",
		Count:      len(snap.Alerts),
		Attributes: attrs,
	}, nil
}

type validity interface {
	IsValid() bool
}

// compact drops unavailable values.
func compact(attrs map[string]any) map[string]any {
	for k, v := range attrs {
		if m, ok := v.(validity); ok && !m.IsValid() {
			delete(attrs, k)
		}
	}
	return attrs
}
