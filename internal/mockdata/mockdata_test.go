package mockdata

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLearningCurves(t *testing.T) {
	c := NewLearningCurves(DefaultEpochs, 7)
	require.Len(t, c.Epochs, 50)
	assert.Equal(t, 1, c.Epochs[0])
	assert.Equal(t, 50, c.Epochs[49])

	for i := range c.Epochs {
		assert.GreaterOrEqual(t, c.TrainLoss[i], 0.05)
		assert.GreaterOrEqual(t, c.ValLoss[i], 0.08)
		assert.GreaterOrEqual(t, c.TrainAcc[i], 30.0)
		assert.LessOrEqual(t, c.TrainAcc[i], 98.0)
		assert.GreaterOrEqual(t, c.ValAcc[i], 25.0)
		assert.LessOrEqual(t, c.ValAcc[i], 95.0)
	}
	// loss falls and accuracy rises over the run
	assert.Greater(t, c.TrainLoss[0], c.TrainLoss[49])
	assert.Greater(t, c.ValLoss[0], c.ValLoss[49])
	assert.Less(t, c.TrainAcc[0], c.TrainAcc[49])
	assert.Less(t, c.ValAcc[0], c.ValAcc[49])
}

func TestNewLearningCurves_Deterministic(t *testing.T) {
	a := NewLearningCurves(20, 42)
	b := NewLearningCurves(20, 42)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed produced different curves (-a +b):\n%s", diff)
	}
	c := NewLearningCurves(20, 43)
	assert.NotEqual(t, a.TrainLoss, c.TrainLoss)
}

func TestDatasets(t *testing.T) {
	m, labels := BinaryConfusion()
	require.NoError(t, m.Validate())
	assert.Len(t, labels, len(m))
	assert.InDelta(t, 0.97, m.Accuracy(), 1e-9)

	for _, d := range ClassificationMetrics() {
		require.NotNil(t, d.Target, d.Label)
		assert.LessOrEqual(t, d.Value, 100.0)
	}
	assert.Equal(t, []float64{45.3, 12.8, 67.2, 8.5}, Values(ResponseLatency()))
	assert.Len(t, InferenceThroughput(), 4)
	assert.Len(t, DeviceStatus(), 3)
	assert.Len(t, DatasetTypes(), 2)
}

func TestStreams(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range Streams() {
		assert.False(t, seen[s.Name], "duplicate stream %s", s.Name)
		seen[s.Name] = true
		assert.Less(t, s.Min, s.Max, s.Name)
	}
	assert.True(t, seen["cpu"])
}
