package trend

import (
	"reflect"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		values    []float64
		threshold float64
		want      Direction
	}{
		{"rising temperature", []float64{10, 10, 10, 15, 15, 15}, TemperatureThreshold, Rising},
		{"falling pressure", []float64{1015, 1015, 1015, 1012, 1012, 1012}, PressureThreshold, Falling},
		{"steady within threshold", []float64{20, 20, 20, 20.4, 20.4, 20.4}, TemperatureThreshold, Steady},
		{"three points compare against zero", []float64{1013, 1013, 1013.8}, PressureThreshold, Rising},
		{"four points", []float64{10, 12, 12, 12}, TemperatureThreshold, Rising},
		{"two points", []float64{10, 20}, TemperatureThreshold, InsufficientData},
		{"empty", nil, TemperatureThreshold, InsufficientData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.values, tt.threshold); got != tt.want {
				t.Errorf("Classify(%v) = %q, want %q", tt.values, got, tt.want)
			}
		})
	}
}

func TestHistoryKeepsMostRecent(t *testing.T) {
	h := NewHistory(DefaultCapacity)
	for i := 1; i <= 8; i++ {
		h.Add(float64(i))
	}

	want := []float64{3, 4, 5, 6, 7, 8}
	if got := h.Values(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, wanted %v", got, want)
	}
	if h.Len() != DefaultCapacity {
		t.Errorf("got len %d, wanted %d", h.Len(), DefaultCapacity)
	}

	change, ok := h.Change()
	if !ok || change != 5 {
		t.Errorf("got change %v (%v), wanted 5", change, ok)
	}
}

func TestHistoryPartial(t *testing.T) {
	h := NewHistory(0)
	h.Add(21.5)

	if got := h.Values(); !reflect.DeepEqual(got, []float64{21.5}) {
		t.Errorf("got %v", got)
	}
	if _, ok := h.Change(); ok {
		t.Errorf("expected no change with a single reading")
	}

	h.Reset()
	if h.Len() != 0 {
		t.Errorf("expected empty history after reset")
	}
}
