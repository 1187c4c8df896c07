package dashboard

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/modelboard/internal/chart"
	"github.com/banshee-data/modelboard/internal/config"
)

func TestCatalog_EveryEntryRenders(t *testing.T) {
	c := NewCatalog(config.Empty())
	entries := c.Entries()
	require.Len(t, entries, 8)

	for _, e := range entries {
		t.Run(e.Name, func(t *testing.T) {
			built, err := e.Build()
			require.NoError(t, err)
			assert.False(t, built.Empty, "mock datasets are never empty")
			assert.Equal(t, e.Kind, built.Kind)
			assert.NotNil(t, built.Geometry)

			svg, err := built.Drawing.SVG()
			require.NoError(t, err)
			assert.True(t, bytes.Contains(svg, []byte("<svg")))

			html, err := e.HTML(chart.HTMLRenderer{})
			require.NoError(t, err)
			assert.Contains(t, string(html), chart.DefaultAssetsHost)
		})
	}
}

func TestCatalog_Get(t *testing.T) {
	c := NewCatalog(config.Empty())

	e, ok := c.Get("confusion")
	require.True(t, ok)
	assert.Equal(t, chart.KindMatrix, e.Kind)

	_, ok = c.Get("nope")
	assert.False(t, ok)
}

func TestCatalog_Plots(t *testing.T) {
	c := NewCatalog(config.Empty())

	for _, name := range []string{"metrics", "throughput", "latency", "loss", "accuracy"} {
		e, _ := c.Get(name)
		require.True(t, e.HasPlot(), name)
		p, err := e.Plot()
		require.NoError(t, err, name)
		var buf bytes.Buffer
		require.NoError(t, chart.WritePlot(&buf, p, "png"), name)
		assert.Positive(t, buf.Len(), name)
	}

	for _, name := range []string{"confusion", "devices", "datasets"} {
		e, _ := c.Get(name)
		assert.False(t, e.HasPlot(), name)
		_, err := e.Plot()
		assert.ErrorIs(t, err, ErrNoPlot, name)
	}
}

func TestCatalog_SizesFromConfig(t *testing.T) {
	cfg := config.Empty()
	cfg.BarHeight = intPtr(300)
	cfg.DonutSize = intPtr(260)
	c := NewCatalog(cfg)

	bar, _ := c.Get("throughput")
	built, err := bar.Build()
	require.NoError(t, err)
	assert.Equal(t, 340, built.Drawing.Height)

	donut, _ := c.Get("devices")
	built, err = donut.Build()
	require.NoError(t, err)
	assert.Equal(t, 400, built.Drawing.Width)
}

func TestCatalog_SeededCurvesAreStable(t *testing.T) {
	a, _ := NewCatalog(config.Empty()).Get("loss")
	b, _ := NewCatalog(config.Empty()).Get("loss")

	ca, err := a.Build()
	require.NoError(t, err)
	cb, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, ca.Geometry, cb.Geometry)
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool    { return &v }
