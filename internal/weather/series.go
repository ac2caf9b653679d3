package weather

import (
	"math"

	"github.com/spf13/cast"

	"github.com/i474232898/japan-weather/internal/maybe"
)

// Series is a set of parallel upstream arrays aligned by Time. Columns may be
// shorter than Time when the upstream response truncates a field, so every
// accessor checks bounds per column.
type Series struct {
	Time    []string         `json:"time"`
	Columns map[string][]any `json:"columns"`
}

// NewSeries splits a raw upstream block into the time axis and value columns.
func NewSeries(raw map[string][]any) Series {
	s := Series{Columns: make(map[string][]any, len(raw))}
	for name, values := range raw {
		if name == "time" {
			s.Time = make([]string, 0, len(values))
			for _, v := range values {
				s.Time = append(s.Time, cast.ToString(v))
			}
			continue
		}
		s.Columns[name] = values
	}
	return s
}

// Len returns the length of a column, or of the time axis for "time".
func (s Series) Len(name string) int {
	if name == "time" {
		return len(s.Time)
	}
	return len(s.Columns[name])
}

// Has reports whether the block carried the named column at all.
func (s Series) Has(name string) bool {
	if name == "time" {
		return s.Time != nil
	}
	_, ok := s.Columns[name]
	return ok
}

// IndexOf returns the position of t on the time axis, or -1.
func (s Series) IndexOf(t string) int {
	for i, ts := range s.Time {
		if ts == t {
			return i
		}
	}
	return -1
}

// Raw returns the untouched upstream value at index i.
func (s Series) Raw(name string, i int) (any, bool) {
	col := s.Columns[name]
	if i < 0 || i >= len(col) || col[i] == nil {
		return nil, false
	}
	return col[i], true
}

// Float returns the value at index i as a float, unavailable when out of
// range, null, or not numeric.
func (s Series) Float(name string, i int) maybe.Maybe[float64] {
	v, ok := s.Raw(name, i)
	if !ok {
		return maybe.None[float64]()
	}
	return toFloat(v)
}

// Int is Float truncated toward zero, used for weather codes.
func (s Series) Int(name string, i int) maybe.Maybe[int] {
	f, ok := s.Float(name, i).Get()
	if !ok {
		return maybe.None[int]()
	}
	return maybe.Some(int(f))
}

// Text returns the value at index i as a string.
func (s Series) Text(name string, i int) maybe.Maybe[string] {
	v, _ := s.Raw(name, i)
	return toText(v)
}

func toFloat(v any) maybe.Maybe[float64] {
	if v == nil {
		return maybe.None[float64]()
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return maybe.None[float64]()
	}
	return maybe.Some(f)
}

func toInt(v any) maybe.Maybe[int] {
	f, ok := toFloat(v).Get()
	if !ok {
		return maybe.None[int]()
	}
	return maybe.Some(int(f))
}

func toText(v any) maybe.Maybe[string] {
	if v == nil {
		return maybe.None[string]()
	}
	str, err := cast.ToStringE(v)
	if err != nil {
		return maybe.None[string]()
	}
	return maybe.Some(str)
}
