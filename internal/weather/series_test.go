package weather

import (
	"testing"
	"time"
)

func TestSeriesBoundsChecked(t *testing.T) {
	s := NewSeries(map[string][]any{
		"time":           {"2025-06-01T00:00", "2025-06-01T01:00", "2025-06-01T02:00"},
		"temperature_2m": {20.5, 21.0},
		"visibility":     {"24140", "n/a", nil},
	})

	if s.Len("time") != 3 || s.Len("temperature_2m") != 2 {
		t.Fatalf("unexpected lengths %d/%d", s.Len("time"), s.Len("temperature_2m"))
	}
	if s.Float("temperature_2m", 2).IsValid() {
		t.Fatalf("expected out-of-range index to be unavailable")
	}
	if s.Float("temperature_2m", -1).IsValid() {
		t.Fatalf("expected negative index to be unavailable")
	}
	if v := s.Float("visibility", 0); v.Value() != 24140 {
		t.Fatalf("expected numeric string to convert, got %v", v.Value())
	}
	if s.Float("visibility", 1).IsValid() {
		t.Fatalf("expected non-numeric string to be unavailable")
	}
	if s.Float("visibility", 2).IsValid() {
		t.Fatalf("expected null to be unavailable")
	}
	if s.Float("missing", 0).IsValid() {
		t.Fatalf("expected missing column to be unavailable")
	}
	if s.IndexOf("2025-06-01T01:00") != 1 || s.IndexOf("2025-06-02T00:00") != -1 {
		t.Fatalf("unexpected IndexOf results")
	}
}

func TestCurrentHourIndex(t *testing.T) {
	times := []string{"2025-06-01T00:00", "2025-06-01T01:00", "2025-06-01T02:00"}

	now := time.Date(2025, 6, 1, 1, 42, 0, 0, time.UTC)
	if got := CurrentHourIndex(times, now); got != 1 {
		t.Fatalf("expected index 1, got %d", got)
	}

	// Matching is on the UTC hour even when the clock carries another zone.
	jst := time.FixedZone("JST", 9*60*60)
	if got := CurrentHourIndex(times, time.Date(2025, 6, 1, 11, 5, 0, 0, jst)); got != 2 {
		t.Fatalf("expected index 2, got %d", got)
	}

	if got := CurrentHourIndex(times, now.Add(48*time.Hour)); got != 0 {
		t.Fatalf("expected fallback index 0, got %d", got)
	}
	if got := CurrentHourIndex(nil, now); got != 0 {
		t.Fatalf("expected fallback index 0 for empty series, got %d", got)
	}
}
