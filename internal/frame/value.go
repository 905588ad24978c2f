// Package frame holds the tabular types shared by the normalizer, the
// combiner and the presenters: nullable values, normalized series and
// time-indexed tables.
package frame

import (
	"math"
	"time"
)

// Value is a float that may be missing.
type Value struct {
	Float float64
	Valid bool
}

// Missing is the absent Value.
var Missing = Value{}

// Some wraps v as a present Value. NaN and infinities are treated as missing.
func Some(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Missing
	}
	return Value{Float: v, Valid: true}
}

// Values wraps every element of vs.
func Values(vs ...float64) []Value {
	out := make([]Value, len(vs))
	for i, v := range vs {
		out[i] = Some(v)
	}
	return out
}

// Granularity is the resolution of a time index.
type Granularity int

const (
	// Yearly keys are January 1st of the year, UTC.
	Yearly Granularity = iota
	// Daily keys are calendar dates at midnight UTC.
	Daily
)

// Format renders a key at this granularity.
func (g Granularity) Format(t time.Time) string {
	if g == Yearly {
		return t.Format("2006")
	}
	return t.Format(time.DateOnly)
}

// Year returns the yearly key for y.
func Year(y int) time.Time {
	return time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
}

// Date returns the daily key for the given calendar date.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Series is a normalized single-metric time series: keys strictly
// increasing, every value present.
type Series struct {
	Name   string
	Keys   []time.Time
	Values []float64
}

// Len returns the number of points.
func (s Series) Len() int { return len(s.Keys) }

// Nullable returns the values as []Value.
func (s Series) Nullable() []Value {
	return Values(s.Values...)
}
