package weather

import (
	"testing"

	"github.com/i474232898/japan-weather/internal/maybe"
)

func TestHourlyForecastToleratesShortSeries(t *testing.T) {
	times := make([]any, 30)
	temps := make([]any, 30)
	for i := range times {
		times[i] = "2025-06-01T00:00"
		temps[i] = float64(i)
	}
	hourly := NewSeries(map[string][]any{
		"time":           times,
		"temperature_2m": temps,
		"weather_code":   {0.0, 3.0, 1000.0},
		"precipitation":  {0.5},
	})

	points := HourlyForecast(hourly, HourlyForecastLength)
	if len(points) != HourlyForecastLength {
		t.Fatalf("expected %d points, got %d", HourlyForecastLength, len(points))
	}
	if points[0].Condition != "sunny" || points[1].Condition != "cloudy" {
		t.Fatalf("unexpected conditions %q/%q", points[0].Condition, points[1].Condition)
	}
	if points[2].Condition != ConditionExceptional {
		t.Fatalf("expected unmapped code to be exceptional, got %q", points[2].Condition)
	}
	if points[3].Condition != ConditionExceptional {
		t.Fatalf("expected missing code to be exceptional, got %q", points[3].Condition)
	}
	if !points[0].Precipitation.IsValid() || points[1].Precipitation.IsValid() {
		t.Fatalf("expected precipitation only for the first hour")
	}
}

func TestHourlyForecastStopsAtTemperatureColumn(t *testing.T) {
	hourly := NewSeries(map[string][]any{
		"time":           {"a", "b", "c"},
		"temperature_2m": {1.0},
	})
	if got := len(HourlyForecast(hourly, 24)); got != 1 {
		t.Fatalf("expected 1 point, got %d", got)
	}
}

func TestDailyForecast(t *testing.T) {
	daily := NewSeries(map[string][]any{
		"time":                          {"2025-06-01", "2025-06-02", "2025-06-03"},
		"temperature_2m_max":            {26.0, 27.0, 28.0},
		"temperature_2m_min":            {18.0, 19.0},
		"weather_code":                  {61.0, 95.0, 2.0},
		"precipitation_probability_max": {80.0, 20.0, 10.0},
	})

	points := DailyForecast(daily, DailyForecastLength)
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[1].Condition != "lightning-rainy" {
		t.Fatalf("unexpected condition %q", points[1].Condition)
	}
	if points[1].TemperatureLow.Value() != 19 {
		t.Fatalf("expected low 19, got %v", points[1].TemperatureLow.Value())
	}
	if points[0].Precipitation.IsValid() {
		t.Fatalf("expected missing precipitation_sum to be unavailable")
	}
}

func TestEmptySeriesProjection(t *testing.T) {
	if got := HourlyForecast(Series{}, 24); len(got) != 0 {
		t.Fatalf("expected no points, got %d", len(got))
	}
	if got := DailyForecast(Series{}, 7); len(got) != 0 {
		t.Fatalf("expected no points, got %d", len(got))
	}
}

func TestTomorrowCondition(t *testing.T) {
	if got := TomorrowConditionForCode(maybe.Some(1)); got != "partly_cloudy" {
		t.Fatalf("expected partly_cloudy, got %q", got)
	}
	if got := TomorrowConditionForCode(maybe.Some(82)); got != "unknown" {
		t.Fatalf("expected unknown, got %q", got)
	}
	if got := TomorrowConditionForCode(maybe.None[int]()); got != "unknown" {
		t.Fatalf("expected unknown, got %q", got)
	}
}
