package chart

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/modelboard/internal/draw"
	"github.com/banshee-data/modelboard/internal/geom"
	"github.com/banshee-data/modelboard/internal/live"
)

func svgOf(t *testing.T, c *Chart) string {
	t.Helper()
	require.NotNil(t, c)
	require.NotNil(t, c.Drawing)
	out, err := c.Drawing.SVG()
	require.NoError(t, err)
	return string(out)
}

func texts(d *draw.Drawing) []string {
	var out []string
	var walk func([]draw.Shape)
	walk = func(shapes []draw.Shape) {
		for _, s := range shapes {
			switch v := s.(type) {
			case draw.Text:
				out = append(out, v.Content)
			case draw.Group:
				walk(v.Shapes)
			}
		}
	}
	walk(d.Shapes)
	return out
}

func TestBar(t *testing.T) {
	c, err := Bar([]geom.Datum{{Label: "A", Value: 0}, {Label: "B", Value: 10}}, BarOptions{Title: "Throughput"})
	require.NoError(t, err)
	assert.False(t, c.Empty)
	assert.Equal(t, 300, c.Drawing.Width)
	assert.Equal(t, 240, c.Drawing.Height)

	bars := c.Geometry.([]geom.Bar)
	require.Len(t, bars, 2)
	assert.Equal(t, 0.0, bars[0].Rect.Height)
	assert.Equal(t, 160.0, bars[1].Rect.Height)
	assert.Equal(t, 200.0, bars[1].Rect.Y+bars[1].Rect.Height)
	assert.Equal(t, 5.0, bars[0].Rect.X)
	assert.Equal(t, 140.0, bars[0].Rect.Width)

	assert.Subset(t, texts(c.Drawing), []string{"A", "B", "0", "10"})
	s := svgOf(t, c)
	assert.Contains(t, s, `fill="#06b6d4"`)
}

func TestBar_EmptyIsPlaceholder(t *testing.T) {
	c, err := Bar(nil, BarOptions{Title: "Nothing"})
	require.NoError(t, err)
	assert.True(t, c.Empty)
	assert.Nil(t, c.Geometry)
	assert.Contains(t, svgOf(t, c), "No data")
}

func TestBar_NonFiniteFails(t *testing.T) {
	_, err := Bar([]geom.Datum{{Label: "x", Value: math.NaN()}}, BarOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bar chart")
}

func TestLine_SinglePoint(t *testing.T) {
	c, err := Line([]float64{42}, LineOptions{Title: "one"})
	require.NoError(t, err)
	path := c.Geometry.(*geom.Path)
	require.Len(t, path.Points, 1)
	assert.Equal(t, 0.0, path.Points[0].X)
	assert.Contains(t, texts(c.Drawing), "42.0")
	assert.Len(t, c.Drawing.Gradients, 1)
}

func TestLine_LabelsMinMax(t *testing.T) {
	c, err := Line([]float64{45.3, 12.8, 67.2, 8.5}, LineOptions{Title: "Latency"})
	require.NoError(t, err)
	assert.Subset(t, texts(c.Drawing), []string{"67.2", "8.5"})
	svg := svgOf(t, c)
	assert.Contains(t, svg, "linearGradient")
	assert.Contains(t, svg, `stroke-linejoin="round"`)
}

func TestDonut(t *testing.T) {
	c, err := Donut([]geom.Datum{
		{Label: "Online", Value: 25, Color: "#10b981"},
		{Label: "Offline", Value: 75, Color: "#ef4444"},
	}, DonutOptions{Title: "Devices"})
	require.NoError(t, err)
	g := c.Geometry.(DonutGeometry)
	assert.Equal(t, 100.0, g.Total)
	assert.Equal(t, 80.0, g.Radius)
	assert.InDelta(t, 48.0, g.InnerRadius, 1e-9)
	require.Len(t, g.Wedges, 2)
	assert.InDelta(t, 90.0, g.Wedges[0].EndAngle, 1e-9)
	assert.Equal(t, 360.0, g.Wedges[1].EndAngle)
	assert.Subset(t, texts(c.Drawing), []string{"100", "Total", "Online", "Offline", "25", "75"})
}

func TestDonut_ZeroTotalIsPlaceholder(t *testing.T) {
	c, err := Donut([]geom.Datum{{Label: "a"}, {Label: "b"}}, DonutOptions{})
	require.NoError(t, err)
	assert.True(t, c.Empty)
}

func TestDonut_NegativeFails(t *testing.T) {
	_, err := Donut([]geom.Datum{{Label: "a", Value: -1}}, DonutOptions{})
	assert.True(t, errors.Is(err, geom.ErrNegativeValue))
}

func TestMetrics(t *testing.T) {
	data := []geom.Datum{
		{Label: "Precision", Value: 94.5, Target: geom.Target(90), Color: "#06b6d4"},
		{Label: "Recall", Value: 93.8, Color: "#10b981"},
	}
	c, err := Metrics(data, MetricsOptions{Title: "Model Metrics"})
	require.NoError(t, err)
	bars := c.Geometry.([]geom.Bar)
	require.Len(t, bars, 2)

	// plot area is 260 x 180 from (80, 40)
	assert.InDelta(t, 90.0, bars[0].Rect.X, 1e-9)
	assert.InDelta(t, 110.0, bars[0].Rect.Width, 1e-9)
	assert.InDelta(t, 0.945*180, bars[0].Rect.Height, 1e-9)
	require.NotNil(t, bars[0].Target)
	assert.InDelta(t, 85.0, bars[0].Target.X1, 1e-9)
	assert.InDelta(t, 205.0, bars[0].Target.X2, 1e-9)
	assert.InDelta(t, 220-0.9*180, bars[0].Target.Y, 1e-9)
	assert.Nil(t, bars[1].Target)

	got := texts(c.Drawing)
	assert.Subset(t, got, []string{"0%", "20%", "100%", "94.5%", "Precision", "Performance (%)"})
	svg := svgOf(t, c)
	assert.Contains(t, svg, `stroke-dasharray="4,2"`)
	assert.Contains(t, svg, "rotate(-45, 145, 240)")
}

func TestTraining(t *testing.T) {
	data := TrainingData{
		Epochs: []int{1, 2, 3, 4, 5, 6},
		Train:  []float64{2.0, 1.5, 1.0, 0.6, 0.4, 0.3},
		Val:    []float64{2.2, 1.8, 1.2, 0.9, 0.7, 0.5},
	}
	c, err := Training(data, TrainingOptions{Title: "Loss", YLabel: "Loss"})
	require.NoError(t, err)
	g := c.Geometry.(TrainingGeometry)
	assert.Equal(t, 0.3, g.Min)
	assert.Equal(t, 2.2, g.Max)

	// shared bounds: the global max sits at the top of the plot area
	assert.InDelta(t, 20.0, g.Val.Points[0].Y, 1e-9)
	assert.InDelta(t, 190.0, g.Train.Points[5].Y, 1e-9)

	got := texts(c.Drawing)
	assert.Subset(t, got, []string{"0.300", "2.200", "1", "6", "Epoch", "Train", "Val", "Current", "0.500"})
	assert.Len(t, c.Drawing.Gradients, 2)
}

func TestTraining_EmptyIsPlaceholder(t *testing.T) {
	c, err := Training(TrainingData{Train: []float64{1}}, TrainingOptions{Title: "Loss"})
	require.NoError(t, err)
	assert.True(t, c.Empty)
}

func TestConfusionMatrix(t *testing.T) {
	m := geom.Matrix{{847, 23}, {31, 899}}
	c, err := ConfusionMatrix(m, []string{"Negative", "Positive"}, MatrixOptions{Title: "Confusion"})
	require.NoError(t, err)
	assert.Equal(t, 320, c.Drawing.Width)
	assert.Equal(t, 240, c.Drawing.Height)

	grid := c.Geometry.(*geom.MatrixGrid)
	assert.Equal(t, 1800, grid.Total)
	got := texts(c.Drawing)
	assert.Subset(t, got, []string{
		"Confusion Matrix", "Predicted", "Actual", "Negative", "Positive",
		"847", "(47.1%)", "Total: 1800", "Accuracy: 97.0%", "Correct", "Incorrect",
	})
	assert.Contains(t, svgOf(t, c), `stroke="#059669"`)
}

func TestConfusionMatrix_Errors(t *testing.T) {
	_, err := ConfusionMatrix(geom.Matrix{{1, 2}}, []string{"a"}, MatrixOptions{})
	assert.ErrorIs(t, err, geom.ErrNotSquare)

	_, err = ConfusionMatrix(geom.Matrix{{1}}, []string{"a", "b"}, MatrixOptions{})
	assert.ErrorIs(t, err, geom.ErrLabelMismatch)

	c, err := ConfusionMatrix(nil, nil, MatrixOptions{})
	require.NoError(t, err)
	assert.True(t, c.Empty)
}

func TestConfusionMatrix_AllZero(t *testing.T) {
	c, err := ConfusionMatrix(geom.Matrix{{0, 0}, {0, 0}}, []string{"a", "b"}, MatrixOptions{})
	require.NoError(t, err)
	assert.False(t, c.Empty)
	assert.Subset(t, texts(c.Drawing), []string{"(0.0%)", "Accuracy: 0.0%"})
}

func TestRealTime(t *testing.T) {
	c, err := RealTime([]float64{50}, RealTimeOptions{Title: "Throughput"})
	require.NoError(t, err)
	assert.True(t, c.Empty)
	assert.Equal(t, "Loading...", c.Message)

	c, err = RealTime([]float64{50, 150, 100}, RealTimeOptions{Title: "Throughput"})
	require.NoError(t, err)
	g := c.Geometry.(LiveGeometry)
	assert.Equal(t, geom.Point{X: 300, Y: 95}, g.Current)
	assert.Equal(t, 100.0, g.Stats.Avg)
	assert.Contains(t, texts(c.Drawing), "100.0")
}

func TestMonitor(t *testing.T) {
	base := time.Date(2024, 5, 1, 10, 20, 0, 0, time.UTC)
	c, err := Monitor(nil, MonitorOptions{Title: "CPU"})
	require.NoError(t, err)
	assert.Equal(t, "Initializing...", c.Message)

	samples := make([]live.Sample, 21)
	for i := range samples {
		samples[i] = live.Sample{Timestamp: base.Add(time.Duration(i) * time.Minute), Value: float64(i * 5)}
	}
	c, err = Monitor(samples, MonitorOptions{Title: "CPU", Unit: "%", Color: "#ef4444", Min: 0, Max: 100})
	require.NoError(t, err)
	g := c.Geometry.(LiveGeometry)
	assert.Equal(t, 0.0, g.Path.Min)
	assert.Equal(t, 100.0, g.Path.Max)
	assert.InDelta(t, 20.0, g.Current.Y, 1e-9)
	assert.Equal(t, 320.0, g.Current.X)
	assert.Equal(t, 50.0, g.Stats.Avg)

	got := texts(c.Drawing)
	assert.Subset(t, got, []string{"10:20", "10:30", "10:40", "0", "25", "100", "Statistics", "Current:", "100.0 %", "100.0", "50.0"})
	assert.NotContains(t, got, "10:21")
	assert.NotContains(t, got, "50.0 %", "only the current value carries the unit")
	svg := svgOf(t, c)
	assert.Contains(t, svg, "feGaussianBlur")
	assert.True(t, strings.Count(svg, `filter="url(#`) >= 2)

	c, err = Monitor(samples, MonitorOptions{Title: "Load", Min: 0, Max: 100})
	require.NoError(t, err)
	assert.NotContains(t, texts(c.Drawing), "100.0 ")
}
