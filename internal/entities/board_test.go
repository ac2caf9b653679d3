package entities

import (
	"errors"
	"testing"
	"time"

	"github.com/i474232898/japan-weather/internal/maybe"
	"github.com/i474232898/japan-weather/internal/trend"
	"github.com/i474232898/japan-weather/internal/weather"
)

var errEmpty = errors.New("nothing published")

type staticReader struct {
	snap *weather.Snapshot
}

func (r *staticReader) Latest() (*weather.Snapshot, error) {
	if r.snap == nil {
		return nil, errEmpty
	}
	return r.snap, nil
}

// 2025-06-01 23:30 UTC is already 2025-06-02 in Tokyo.
var boardClock = time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC)

func testSnapshot() *weather.Snapshot {
	return &weather.Snapshot{
		Current: weather.Current{
			Temperature:   maybe.Some(36.0),
			Humidity:      maybe.Some(40.0),
			Pressure:      maybe.Some(1008.0),
			WindSpeed:     maybe.Some(12.0),
			WindDirection: maybe.Some(200.0),
			Visibility:    maybe.Some(24140.0),
			UVIndex:       maybe.Some(9.0),
			WeatherCode:   maybe.Some(2),
			ComfortLevel:  weather.ComfortFair,
			Satellite:     weather.UnavailableSatelliteProducts(),
		},
		Daily: weather.NewSeries(map[string][]any{
			"time":                          {"2025-06-01", "2025-06-02", "2025-06-03"},
			"weather_code":                  {0.0, 61.0},
			"temperature_2m_max":            {30.0, 31.5, 29.0},
			"temperature_2m_min":            {21.0, 22.0},
			"sunrise":                       {"2025-06-01T04:25", "2025-06-02T04:25"},
			"precipitation_probability_max": {5.0},
		}),
		Alerts: []weather.Alert{
			{Type: weather.AlertHeat, Severity: weather.SeverityHigh, Title: "Extreme Heat Warning"},
			{Type: weather.AlertUV, Severity: weather.SeverityMedium, Title: "High UV Index"},
		},
		Sources:    []string{weather.SourceJMAOpenMeteo},
		LastUpdate: boardClock,
	}
}

func newTestBoard(snap *weather.Snapshot) *Board {
	return NewBoard(&staticReader{snap: snap}, trend.DefaultCapacity,
		WithClock(func() time.Time { return boardClock }))
}

func TestSensorStates(t *testing.T) {
	b := newTestBoard(testSnapshot())

	tests := []struct {
		key   string
		state any
		err   string
	}{
		{key: "temperature", state: 36.0},
		{key: "visibility", state: 24.14},
		{key: "comfort_level", state: "fair"},
		{key: "weather_condition_code", state: 2},
		{key: "weather_alerts_count", state: 2},
		{key: "apparent_temperature", state: Unknown, err: "Apparent temperature data unavailable"},
		{key: "sea_surface_temperature", state: Unknown, err: "Sea surface temperature data unavailable"},
		{key: "satellite_imagery_status", state: weather.ImageryUnavailable},
		{key: "today_max_temp", state: 31.5},
		{key: "today_min_temp", state: 22.0},
		{key: "today_precipitation_sum", state: Unknown, err: "Today's precipitation sum data unavailable"},
		{key: "sunrise", state: "2025-06-02T04:25"},
		{key: "sunset", state: Unknown, err: "Sunset data unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			r, err := b.Sensor(tt.key)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.State != tt.state {
				t.Errorf("state = %v (%T), want %v (%T)", r.State, r.State, tt.state, tt.state)
			}
			got, _ := r.Attributes["error"].(string)
			if got != tt.err {
				t.Errorf("error attribute = %q, want %q", got, tt.err)
			}
		})
	}
}

func TestTodayMissingFromDailyAxis(t *testing.T) {
	snap := testSnapshot()
	snap.Daily = weather.NewSeries(map[string][]any{
		"time":    {"2024-01-01"},
		"sunrise": {"2024-01-01T06:50"},
	})
	b := newTestBoard(snap)

	r, _ := b.Sensor("sunrise")
	if r.State != Unknown || r.Attributes["error"] != "Sunrise/sunset data unavailable" {
		t.Fatalf("unexpected sunrise reading: %+v", r)
	}
	r, _ = b.Sensor("today_max_temp")
	if r.State != Unknown || r.Attributes["error"] != "Today's data unavailable" {
		t.Fatalf("unexpected max temperature reading: %+v", r)
	}
}

func TestSensorAttributes(t *testing.T) {
	b := newTestBoard(testSnapshot())

	wind, _ := b.Sensor("wind_direction")
	if wind.Attributes["cardinal_direction"] != "SSW" {
		t.Errorf("expected SSW, got %v", wind.Attributes["cardinal_direction"])
	}

	uv, _ := b.Sensor("uv_index")
	if uv.Attributes["uv_risk_level"] != "Very High" || uv.Attributes["protection_needed"] != true {
		t.Errorf("unexpected uv attributes: %v", uv.Attributes)
	}

	alerts, _ := b.Sensor("weather_alerts_count")
	if alerts.Attributes["highest_severity"] != "high" {
		t.Errorf("unexpected highest severity %v", alerts.Attributes["highest_severity"])
	}
	types, _ := alerts.Attributes["alert_types"].([]string)
	if len(types) != 2 || types[0] != "heat_warning" || types[1] != "uv_warning" {
		t.Errorf("unexpected alert types %v", types)
	}
}

func TestUnknownSensor(t *testing.T) {
	b := newTestBoard(testSnapshot())
	if _, err := b.Sensor("camera"); !errors.Is(err, ErrUnknownSensor) {
		t.Fatalf("expected ErrUnknownSensor, got %v", err)
	}
}

func TestSensorsBeforeFirstSnapshot(t *testing.T) {
	b := newTestBoard(nil)
	if _, err := b.Sensors(); !errors.Is(err, errEmpty) {
		t.Fatalf("expected reader error, got %v", err)
	}
	if _, err := b.WeatherView(); !errors.Is(err, errEmpty) {
		t.Fatalf("expected reader error, got %v", err)
	}
}

func TestSensorsListsCatalogAndSpecialSensors(t *testing.T) {
	b := newTestBoard(testSnapshot())
	readings, err := b.Sensors()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(readings) != len(Catalog())+4 {
		t.Fatalf("expected %d sensors, got %d", len(Catalog())+4, len(readings))
	}
	if readings[len(readings)-1].Key != "weather_summary" {
		t.Fatalf("expected summary last, got %q", readings[len(readings)-1].Key)
	}
}

func TestTrendSensorFedByObserve(t *testing.T) {
	snap := testSnapshot()
	b := newTestBoard(snap)

	r, _ := b.Sensor("temperature_trend")
	if r.State != string(trend.InsufficientData) {
		t.Fatalf("expected insufficient_data, got %v", r.State)
	}

	// Reading must not feed the history.
	for i := 0; i < 5; i++ {
		_, _ = b.Sensor("temperature_trend")
	}
	if r, _ = b.Sensor("temperature_trend"); r.Attributes["data_points"] != 0 {
		t.Fatalf("expected no data points, got %v", r.Attributes["data_points"])
	}

	for _, v := range []float64{10, 10, 10, 15, 15, 15} {
		s := testSnapshot()
		s.Current.Temperature = maybe.Some(v)
		b.Observe(s)
	}

	r, _ = b.Sensor("temperature_trend")
	if r.State != string(trend.Rising) {
		t.Fatalf("expected rising, got %v", r.State)
	}
	if r.Attributes["data_points"] != 6 || r.Attributes["change_1h"] != 5.0 {
		t.Fatalf("unexpected trend attributes: %v", r.Attributes)
	}

	p, _ := b.Sensor("pressure_trend")
	if p.State != string(trend.Steady) {
		t.Fatalf("expected steady pressure, got %v", p.State)
	}

	snap.Current.Temperature = maybe.None[float64]()
	if r, _ = b.Sensor("temperature_trend"); r.State != string(trend.Unknown) {
		t.Fatalf("expected unknown without a current value, got %v", r.State)
	}
}

func TestTomorrowSensor(t *testing.T) {
	b := newTestBoard(testSnapshot())
	r, _ := b.Sensor("tomorrow_weather")

	if r.State != "light_rain" {
		t.Fatalf("expected light_rain, got %v", r.State)
	}
	if got := r.Attributes["max_temperature"].(maybe.Maybe[float64]); got.Value() != 31.5 {
		t.Errorf("unexpected max temperature %v", got)
	}
	if _, ok := r.Attributes["precipitation_probability"]; ok {
		t.Errorf("expected precipitation probability to be omitted for a short column")
	}
	if _, ok := r.Attributes["precipitation_sum"]; ok {
		t.Errorf("expected precipitation sum to be omitted for a missing column")
	}

	empty := testSnapshot()
	empty.Daily = weather.Series{}
	if r, _ := newTestBoard(empty).Sensor("tomorrow_weather"); r.State != Unknown {
		t.Fatalf("expected unknown without a daily axis, got %v", r.State)
	}
}

func TestCardinalDirection(t *testing.T) {
	tests := []struct {
		deg  float64
		want string
	}{
		{0, "N"},
		{11.25, "N"},
		{33.75, "NE"},
		{90, "E"},
		{200, "SSW"},
		{348.75, "N"},
		{359, "N"},
	}
	for _, tt := range tests {
		if got := CardinalDirection(tt.deg); got != tt.want {
			t.Errorf("CardinalDirection(%v) = %q, want %q", tt.deg, got, tt.want)
		}
	}
}
