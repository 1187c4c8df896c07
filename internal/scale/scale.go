// Package scale maps numeric domains onto pixel ranges.
//
// Every chart in the dashboard derives its scales at render time from the
// data it is given; nothing here is stored between renders.
package scale

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Map linearly interpolates value from [domainMin, domainMax] into
// [rangeMin, rangeMax]. A zero-width domain is treated as a span of 1 so the
// result is always finite for finite inputs.
func Map(domainMin, domainMax, rangeMin, rangeMax, value float64) float64 {
	span := domainMax - domainMin
	if span == 0 {
		span = 1
	}
	return rangeMin + (value-domainMin)/span*(rangeMax-rangeMin)
}

// Linear is a domain -> range mapping. RangeMin may be greater than RangeMax,
// which is how y axes that grow downwards in screen space are expressed.
type Linear struct {
	DomainMin float64
	DomainMax float64
	RangeMin  float64
	RangeMax  float64
}

// NewLinear returns a Linear scale for the given domain and range.
func NewLinear(domainMin, domainMax, rangeMin, rangeMax float64) Linear {
	return Linear{DomainMin: domainMin, DomainMax: domainMax, RangeMin: rangeMin, RangeMax: rangeMax}
}

// Map returns the range position of v.
func (l Linear) Map(v float64) float64 {
	return Map(l.DomainMin, l.DomainMax, l.RangeMin, l.RangeMax, v)
}

// Invert returns the domain value at range position px.
func (l Linear) Invert(px float64) float64 {
	return Map(l.RangeMin, l.RangeMax, l.DomainMin, l.DomainMax, px)
}

// Span is the guarded domain width (never zero).
func (l Linear) Span() float64 {
	if s := l.DomainMax - l.DomainMin; s != 0 {
		return s
	}
	return 1
}

// Bounds returns the smallest and largest finite values across all series.
// ok is false when no finite value exists.
func Bounds(series ...[]float64) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range series {
		finite := make([]float64, 0, len(s))
		for _, v := range s {
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				finite = append(finite, v)
			}
		}
		if len(finite) == 0 {
			continue
		}
		lo = math.Min(lo, floats.Min(finite))
		hi = math.Max(hi, floats.Max(finite))
	}
	if math.IsInf(lo, 1) {
		return 0, 0, false
	}
	return lo, hi, true
}

// Ticks returns n+1 evenly spaced values from min to max inclusive.
// n < 1 yields just the two end points.
func Ticks(min, max float64, n int) []float64 {
	if n < 1 {
		n = 1
	}
	out := make([]float64, n+1)
	floats.Span(out, min, max)
	return out
}
