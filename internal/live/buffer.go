// Package live holds the rolling sample windows behind the dashboard's
// real-time charts and the timer-driven feeds that fill them.
package live

import (
	"fmt"
	"sync"
	"time"
)

// Sample is one timestamped reading.
type Sample struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// Buffer is a fixed-capacity FIFO window of the most recent samples. Once
// full, each Push evicts the oldest sample. It is safe for concurrent use:
// a feed goroutine writes while HTTP handlers read.
type Buffer struct {
	mu       sync.RWMutex
	capacity int
	// ring storage; head is the index of the oldest sample.
	samples []Sample
	head    int
}

// NewBuffer returns an empty buffer holding at most capacity samples.
func NewBuffer(capacity int) (*Buffer, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("buffer capacity must be at least 1, got %d", capacity)
	}
	return &Buffer{
		capacity: capacity,
		samples:  make([]Sample, 0, capacity),
	}, nil
}

// Push appends s, evicting the oldest sample when the buffer is full.
func (b *Buffer) Push(s Sample) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.samples) < b.capacity {
		b.samples = append(b.samples, s)
		return
	}
	b.samples[b.head] = s
	b.head = (b.head + 1) % b.capacity
}

// Samples returns a copy of the buffer contents in arrival order.
func (b *Buffer) Samples() []Sample {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Sample, len(b.samples))
	n := copy(out, b.samples[b.head:])
	copy(out[n:], b.samples[:b.head])
	return out
}

// Values returns the sample values in arrival order.
func (b *Buffer) Values() []float64 {
	samples := b.Samples()
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Value
	}
	return out
}

// Latest returns the most recent sample.
func (b *Buffer) Latest() (Sample, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if len(b.samples) == 0 {
		return Sample{}, false
	}
	idx := len(b.samples) - 1
	if len(b.samples) == b.capacity {
		idx = (b.head + b.capacity - 1) % b.capacity
	}
	return b.samples[idx], true
}

// Len returns the number of samples held.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.samples)
}

// Cap returns the fixed capacity.
func (b *Buffer) Cap() int { return b.capacity }

// Reset drops every sample.
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.samples = b.samples[:0]
	b.head = 0
}
