package live

import (
	"math/rand"
	"sync"
	"time"
)

// Source produces the next reading for a feed.
type Source interface {
	Next(now time.Time) float64
}

// SourceFunc adapts a function to Source.
type SourceFunc func(now time.Time) float64

// Next calls f.
func (f SourceFunc) Next(now time.Time) float64 { return f(now) }

// UniformSource draws values uniformly from [Min, Max), standing in for a
// device metric such as CPU load or response time.
type UniformSource struct {
	Min float64
	Max float64

	mu  sync.Mutex
	rng *rand.Rand
}

// NewUniformSource returns a UniformSource seeded with seed.
func NewUniformSource(min, max float64, seed int64) *UniformSource {
	return &UniformSource{Min: min, Max: max, rng: rand.New(rand.NewSource(seed))}
}

// Next returns Min + r*(Max-Min) for a uniform r in [0,1).
func (u *UniformSource) Next(time.Time) float64 {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.rng == nil {
		u.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return u.Min + u.rng.Float64()*(u.Max-u.Min)
}
