package trend

import (
	"sync"

	"gonum.org/v1/gonum/stat"
)

type Direction string

const (
	Rising           Direction = "rising"
	Falling          Direction = "falling"
	Steady           Direction = "steady"
	InsufficientData Direction = "insufficient_data"
	Unknown          Direction = "unknown"
)

const (
	TemperatureThreshold = 0.5 // °C
	PressureThreshold    = 1.0 // hPa

	DefaultCapacity = 6
	recentWindow    = 3
)

// Classify compares the mean of the last three values with the mean of the
// older ones.
func Classify(values []float64, threshold float64) Direction {
	if len(values) < recentWindow {
		return InsufficientData
	}

	split := len(values) - recentWindow
	recent := stat.Mean(values[split:], nil)

	// With exactly three values there is no older part and the difference
	// is taken against zero.
	older := 0.0
	if split > 0 {
		older = stat.Mean(values[:split], nil)
	}

	switch diff := recent - older; {
	case diff > threshold:
		return Rising
	case diff < -threshold:
		return Falling
	default:
		return Steady
	}
}

// History is a bounded ring of the most recent readings of one quantity.
type History struct {
	mu     sync.Mutex
	window []float64
	size   int
	index  int
	full   bool
}

func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultCapacity
	}
	return &History{
		window: make([]float64, size),
		size:   size,
	}
}

func (h *History) Add(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.window[h.index] = value
	h.index = (h.index + 1) % h.size
	if h.index == 0 {
		h.full = true
	}
}

// Values returns the readings oldest first.
func (h *History) Values() []float64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.full {
		return append([]float64(nil), h.window[:h.index]...)
	}
	out := make([]float64, 0, h.size)
	out = append(out, h.window[h.index:]...)
	return append(out, h.window[:h.index]...)
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.full {
		return h.size
	}
	return h.index
}

// Change is newest minus oldest; ok is false with fewer than two readings.
func (h *History) Change() (float64, bool) {
	values := h.Values()
	if len(values) < 2 {
		return 0, false
	}
	return values[len(values)-1] - values[0], true
}

func (h *History) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.index = 0
	h.full = false
	for i := range h.window {
		h.window[i] = 0
	}
}
