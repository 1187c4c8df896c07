package live

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarises the current buffer window. It is re-derived from the
// buffer contents on every tick.
type Stats struct {
	Current float64 `json:"current"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Avg     float64 `json:"avg"`
	Count   int     `json:"count"`
}

// Summarize computes Stats over values in arrival order. An empty window
// yields the zero Stats.
func Summarize(values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}
	return Stats{
		Current: values[len(values)-1],
		Min:     floats.Min(values),
		Max:     floats.Max(values),
		Avg:     stat.Mean(values, nil),
		Count:   len(values),
	}
}

// SummarizeSamples computes Stats over the values of samples.
func SummarizeSamples(samples []Sample) Stats {
	values := make([]float64, len(samples))
	for i, s := range samples {
		values[i] = s.Value
	}
	return Summarize(values)
}

// Stats summarises the buffer's current contents.
func (b *Buffer) Stats() Stats {
	return Summarize(b.Values())
}
