package live

import (
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 25, 14, 32, 15, 0, time.UTC)

func sampleAt(i int, v float64) Sample {
	return Sample{Timestamp: epoch.Add(time.Duration(i) * time.Second), Value: v}
}

func TestBuffer_KeepsMostRecent(t *testing.T) {
	b, err := NewBuffer(3)
	require.NoError(t, err)

	for i, v := range []float64{1, 2, 3, 4} {
		b.Push(sampleAt(i, v))
	}

	if diff := cmp.Diff([]float64{2, 3, 4}, b.Values()); diff != "" {
		t.Errorf("Values() mismatch (-want +got):\n%s", diff)
	}
	latest, ok := b.Latest()
	require.True(t, ok)
	assert.Equal(t, 4.0, latest.Value)
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, 3, b.Cap())
}

func TestBuffer_LengthNeverExceedsCapacity(t *testing.T) {
	for _, capacity := range []int{1, 2, 5, 20, 30} {
		b, err := NewBuffer(capacity)
		require.NoError(t, err)

		for i := 0; i < 3*capacity+7; i++ {
			b.Push(sampleAt(i, float64(i)))
			require.LessOrEqual(t, b.Len(), capacity)

			got := b.Samples()
			first := i - len(got) + 1
			if first < 0 {
				first = 0
			}
			for k, s := range got {
				if s.Value != float64(first+k) {
					t.Fatalf("cap=%d after %d pushes: sample %d = %v, want %d", capacity, i+1, k, s.Value, first+k)
				}
			}
		}
	}
}

func TestBuffer_Empty(t *testing.T) {
	b, err := NewBuffer(20)
	require.NoError(t, err)

	_, ok := b.Latest()
	assert.False(t, ok)
	assert.Empty(t, b.Samples())
	assert.Equal(t, Stats{}, b.Stats())
}

func TestBuffer_Reset(t *testing.T) {
	b, _ := NewBuffer(2)
	b.Push(sampleAt(0, 1))
	b.Push(sampleAt(1, 2))
	b.Push(sampleAt(2, 3))
	b.Reset()

	assert.Equal(t, 0, b.Len())
	b.Push(sampleAt(3, 9))
	assert.Equal(t, []float64{9}, b.Values())
}

func TestNewBuffer_InvalidCapacity(t *testing.T) {
	_, err := NewBuffer(0)
	assert.Error(t, err)
	_, err = NewBuffer(-3)
	assert.Error(t, err)
}

func TestBuffer_ConcurrentReaders(t *testing.T) {
	b, _ := NewBuffer(30)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			b.Push(sampleAt(i, float64(i)))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			if n := len(b.Samples()); n > 30 {
				t.Errorf("read %d samples from capacity-30 buffer", n)
				return
			}
		}
	}()
	wg.Wait()
	assert.Equal(t, 30, b.Len())
}

func TestSummarize(t *testing.T) {
	got := Summarize([]float64{50, 150, 100})
	assert.Equal(t, Stats{Current: 100, Min: 50, Max: 150, Avg: 100, Count: 3}, got)
}

func TestSummarizeSamples(t *testing.T) {
	got := SummarizeSamples([]Sample{sampleAt(0, 4), sampleAt(1, 8), sampleAt(2, 6)})
	assert.Equal(t, Stats{Current: 6, Min: 4, Max: 8, Avg: 6, Count: 3}, got)
	assert.Equal(t, Stats{}, SummarizeSamples(nil))
}
