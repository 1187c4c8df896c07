package dashboard

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/modelboard/internal/chart"
	"github.com/banshee-data/modelboard/internal/config"
	"github.com/banshee-data/modelboard/internal/store"
	"github.com/banshee-data/modelboard/internal/timeutil"
)

var epoch = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func tickAll(t *testing.T, l *Live, n int) {
	t.Helper()
	for _, name := range l.Names() {
		_, f, ok := l.Stream(name)
		require.True(t, ok)
		for i := range n {
			f.Tick(context.Background(), epoch.Add(time.Duration(i)*time.Second))
		}
	}
}

func TestNewLive_Capacities(t *testing.T) {
	l, err := NewLive(config.Empty(), timeutil.NewMockClock(epoch), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"cpu", "memory", "network", "power", "throughput"}, l.Names())

	_, cpu, _ := l.Stream("cpu")
	assert.Equal(t, 30, cpu.Buffer().Cap())
	_, tp, _ := l.Stream("throughput")
	assert.Equal(t, 20, tp.Buffer().Cap())
}

func TestLive_ChartPlaceholdersUntilTwoSamples(t *testing.T) {
	l, err := NewLive(config.Empty(), timeutil.NewMockClock(epoch), nil)
	require.NoError(t, err)

	c, err := l.Chart("cpu")
	require.NoError(t, err)
	assert.True(t, c.Empty)
	assert.Equal(t, "Initializing...", c.Message)

	c, err = l.Chart("throughput")
	require.NoError(t, err)
	assert.True(t, c.Empty)
	assert.Equal(t, "Loading...", c.Message)

	tickAll(t, l, 2)

	c, err = l.Chart("cpu")
	require.NoError(t, err)
	assert.False(t, c.Empty)
	assert.Equal(t, chart.KindMonitor, c.Kind)

	c, err = l.Chart("throughput")
	require.NoError(t, err)
	assert.False(t, c.Empty)
	assert.Equal(t, chart.KindRealTime, c.Kind)

	_, err = l.Chart("nope")
	assert.Error(t, err)
}

func TestLive_SnapshotKeepsNewestWindow(t *testing.T) {
	cfg := config.Empty()
	cfg.MonitorCapacity = intPtr(3)
	l, err := NewLive(cfg, timeutil.NewMockClock(epoch), nil)
	require.NoError(t, err)

	tickAll(t, l, 5)

	snap, ok := l.Snapshot("power")
	require.True(t, ok)
	assert.Equal(t, 3, snap.Capacity)
	require.Len(t, snap.Samples, 3)
	assert.Equal(t, epoch.Add(2*time.Second), snap.Samples[0].Timestamp)
	assert.Equal(t, epoch.Add(4*time.Second), snap.Samples[2].Timestamp)
	assert.Equal(t, 3, snap.Stats.Count)
	for _, s := range snap.Samples {
		assert.GreaterOrEqual(t, s.Value, 0.0)
		assert.Less(t, s.Value, 100.0)
	}

	_, ok = l.Snapshot("nope")
	assert.False(t, ok)
}

func TestLive_SnapshotStatsMatchSamplesUnderTicks(t *testing.T) {
	cfg := config.Empty()
	cfg.MonitorCapacity = intPtr(5)
	l, err := NewLive(cfg, timeutil.NewMockClock(epoch), nil)
	require.NoError(t, err)
	_, f, ok := l.Stream("cpu")
	require.True(t, ok)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := range 500 {
			f.Tick(context.Background(), epoch.Add(time.Duration(i)*time.Second))
		}
	}()

	for {
		snap, ok := l.Snapshot("cpu")
		require.True(t, ok)
		require.Equal(t, len(snap.Samples), snap.Stats.Count)
		if len(snap.Samples) > 0 {
			require.Equal(t, snap.Samples[len(snap.Samples)-1].Value, snap.Stats.Current)
		}
		select {
		case <-done:
			return
		default:
		}
	}
}

func TestLive_StartTicksOnClock(t *testing.T) {
	clock := timeutil.NewMockClock(epoch)
	l, err := NewLive(config.Empty(), clock, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, l.Start(ctx))
	defer l.Stop()
	require.Equal(t, 5, clock.Tickers())

	_, f, _ := l.Stream("memory")
	require.Eventually(t, func() bool {
		clock.Advance(time.Second)
		return f.Buffer().Len() >= 2
	}, 2*time.Second, 10*time.Millisecond)

	l.Stop()
	assert.False(t, f.Running())
}

func TestLive_RecordsToStore(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "samples.db"))
	require.NoError(t, err)
	defer st.Close()

	l, err := NewLive(config.Empty(), timeutil.NewMockClock(epoch), st)
	require.NoError(t, err)
	tickAll(t, l, 4)

	samples, err := st.Samples(context.Background(), "network", 10)
	require.NoError(t, err)
	require.Len(t, samples, 4)

	snap, _ := l.Snapshot("network")
	assert.Equal(t, snap.Samples[3].Value, samples[3].Value)
}

func TestLive_MonitorLabelsUseDisplayZone(t *testing.T) {
	cfg := config.Empty()
	cfg.Timezone = strPtr("Asia/Kolkata")
	l, err := NewLive(cfg, timeutil.NewMockClock(epoch), nil)
	require.NoError(t, err)
	tickAll(t, l, 3)

	c, err := l.Chart("cpu")
	require.NoError(t, err)
	svg, err := c.Drawing.SVG()
	require.NoError(t, err)
	assert.Contains(t, string(svg), ">14:30<")
	assert.NotContains(t, string(svg), ">09:00<")
}

func TestNewLive_BadTimezone(t *testing.T) {
	cfg := config.Empty()
	cfg.Timezone = strPtr("Not/AZone")
	_, err := NewLive(cfg, timeutil.NewMockClock(epoch), nil)
	assert.Error(t, err)
}
