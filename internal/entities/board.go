// Package entities renders the published weather snapshot as named sensors
// and weather views.
package entities

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/i474232898/japan-weather/internal/trend"
	"github.com/i474232898/japan-weather/internal/weather"
)

var ErrUnknownSensor = errors.New("unknown sensor")

// Unknown is the state of a sensor whose value is unavailable.
const Unknown = "unknown"

// Tokyo is the zone of the upstream daily axis.
var Tokyo = time.FixedZone("Asia/Tokyo", 9*60*60)

type Reader interface {
	Latest() (*weather.Snapshot, error)
}

// Reading is a sensor state with its attributes.
type Reading struct {
	Key         string         `json:"key"`
	Name        string         `json:"name"`
	State       any            `json:"state"`
	Unit        string         `json:"unit,omitempty"`
	DeviceClass string         `json:"deviceClass,omitempty"`
	Icon        string         `json:"icon"`
	Attributes  map[string]any `json:"attributes"`
}

// Board reads sensors off the latest snapshot. Trend histories belong to the
// board and are fed through Observe once per published snapshot.
type Board struct {
	reader Reader
	now    func() time.Time

	temperature *trend.History
	pressure    *trend.History
}

type Option func(*Board)

func WithClock(now func() time.Time) Option {
	return func(b *Board) {
		b.now = now
	}
}

func NewBoard(reader Reader, historySize int, opts ...Option) *Board {
	b := &Board{
		reader:      reader,
		now:         time.Now,
		temperature: trend.NewHistory(historySize),
		pressure:    trend.NewHistory(historySize),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Observe records the trend inputs of a newly published snapshot.
func (b *Board) Observe(snap *weather.Snapshot) {
	if snap == nil {
		return
	}
	if v, ok := snap.Current.Temperature.Get(); ok {
		b.temperature.Add(v)
	}
	if v, ok := snap.Current.Pressure.Get(); ok {
		b.pressure.Add(v)
	}
}

// Sensors returns every sensor in display order.
func (b *Board) Sensors() ([]Reading, error) {
	snap, err := b.reader.Latest()
	if err != nil {
		return nil, err
	}

	r := b.context(snap)
	readings := make([]Reading, 0, len(catalog)+4)
	for _, d := range catalog {
		readings = append(readings, d.reading(r))
	}
	readings = append(readings,
		b.trendReading(snap, temperatureTrend),
		b.trendReading(snap, pressureTrend),
		tomorrowReading(snap),
		summaryReading(snap),
	)
	return readings, nil
}

// Sensor returns one sensor by key.
func (b *Board) Sensor(key string) (Reading, error) {
	snap, err := b.reader.Latest()
	if err != nil {
		return Reading{}, err
	}

	switch key {
	case temperatureTrend.key:
		return b.trendReading(snap, temperatureTrend), nil
	case pressureTrend.key:
		return b.trendReading(snap, pressureTrend), nil
	case tomorrowKey:
		return tomorrowReading(snap), nil
	case summaryKey:
		return summaryReading(snap), nil
	}

	for _, d := range catalog {
		if d.Key == key {
			return d.reading(b.context(snap)), nil
		}
	}
	return Reading{}, fmt.Errorf("%w: %s", ErrUnknownSensor, key)
}

func (b *Board) context(snap *weather.Snapshot) readContext {
	return readContext{snap: snap, today: todayIndex(snap.Daily, b.now())}
}

func todayIndex(daily weather.Series, now time.Time) int {
	return daily.IndexOf(now.In(Tokyo).Format("2006-01-02"))
}

func (d Description) reading(r readContext) Reading {
	attrs := map[string]any{
		"last_update":  r.snap.LastUpdate,
		"data_sources": r.snap.Sources,
	}

	out := Reading{
		Key:         d.Key,
		Name:        d.Name,
		Unit:        d.Unit,
		DeviceClass: d.DeviceClass,
		Icon:        d.Icon,
		Attributes:  attrs,
	}

	switch {
	case dailyKeys[d.Key] && !r.snap.Daily.Has("time"):
		out.State = Unknown
		attrs["error"] = "Today's data unavailable"
	case dailyKeys[d.Key] && r.today < 0:
		out.State = Unknown
		if d.Key == "sunrise" || d.Key == "sunset" {
			attrs["error"] = "Sunrise/sunset data unavailable"
		} else {
			attrs["error"] = "Today's data unavailable"
		}
	default:
		value, ok := d.read(r)
		if ok {
			out.State = value
		} else {
			out.State = Unknown
			attrs["error"] = d.missing
		}
	}

	extraAttributes(d.Key, r.snap, attrs)
	return out
}

func extraAttributes(key string, snap *weather.Snapshot, attrs map[string]any) {
	c := snap.Current
	switch key {
	case "wind_direction":
		if deg, ok := c.WindDirection.Get(); ok {
			attrs["cardinal_direction"] = CardinalDirection(deg)
		}
	case "uv_index":
		if uv, ok := c.UVIndex.Get(); ok {
			attrs["uv_risk_level"] = UVRiskLabel(uv)
			attrs["protection_needed"] = uv >= 3
		}
	case "comfort_level":
		attrs["comfort_factors"] = map[string]any{
			"temperature":   c.Temperature,
			"humidity":      c.Humidity,
			"wind_speed":    c.WindSpeed,
			"precipitation": c.Precipitation.ValueOrDefault(0),
		}
	case "weather_alerts_count":
		if len(snap.Alerts) > 0 {
			attrs["alert_types"] = alertTypes(snap.Alerts)
			attrs["highest_severity"] = weather.HighestSeverity(snap.Alerts)
		}
	}
}

var cardinals = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// CardinalDirection maps degrees to the 16-point compass.
func CardinalDirection(degrees float64) string {
	idx := int(math.RoundToEven(degrees/22.5)) % 16
	if idx < 0 {
		idx += 16
	}
	return cardinals[idx]
}

// uvBands are the upper bounds of each UV risk band.
var uvBands = []struct {
	max   float64
	label string
	key   string
}{
	{2, "Low", "low"},
	{5, "Moderate", "moderate"},
	{7, "High", "high"},
	{10, "Very High", "very_high"},
}

// UVRiskLabel is the display form used by the UV sensor.
func UVRiskLabel(uv float64) string {
	for _, b := range uvBands {
		if uv <= b.max {
			return b.label
		}
	}
	return "Extreme"
}

// UVRisk is the snake_case form used by the detailed view.
func UVRisk(uv float64) string {
	for _, b := range uvBands {
		if uv <= b.max {
			return b.key
		}
	}
	return "extreme"
}

// alertTypes returns the distinct alert types, sorted.
func alertTypes(alerts []weather.Alert) []string {
	seen := make(map[string]bool, len(alerts))
	types := make([]string, 0, len(alerts))
	for _, a := range alerts {
		t := string(a.Type)
		if t == "" {
			t = Unknown
		}
		if !seen[t] {
			seen[t] = true
			types = append(types, t)
		}
	}
	sort.Strings(types)
	return types
}
