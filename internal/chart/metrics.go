package chart

import (
	"fmt"

	"github.com/banshee-data/modelboard/internal/draw"
	"github.com/banshee-data/modelboard/internal/geom"
	"github.com/banshee-data/modelboard/internal/scale"
)

// MetricsOptions configures Metrics.
type MetricsOptions struct {
	Title string
	// YLabel defaults to "Performance (%)".
	YLabel string
}

const (
	metricsWidth    = 400
	metricsHeight   = 300
	metricsGap      = 20
	metricsOverhang = 5
	metricsCeiling  = 100
	targetColor     = "#ef4444"
)

var metricsPadding = geom.Padding{Top: 40, Right: 60, Bottom: 80, Left: 80}

// Metrics draws percentage scores against a fixed 0..100 axis. Each bar
// gets a drop shadow and a gloss overlay; datums with a target get a dashed
// guide line.
func Metrics(data []geom.Datum, o MetricsOptions) (*Chart, error) {
	area := geom.Inset(metricsWidth, metricsHeight, metricsPadding)
	bars, err := geom.Bars(data, geom.BarLayout{
		Area:           area,
		Gap:            metricsGap,
		MaxValue:       metricsCeiling,
		TargetOverhang: metricsOverhang,
	})
	if err != nil {
		return placeholderOr(KindMetrics, metricsWidth, metricsHeight, o.Title, err)
	}

	d := draw.New(metricsWidth, metricsHeight, o.Title)
	d.Add(draw.Rect{X: area.X, Y: area.Y, W: area.W, H: area.H, Style: draw.Style{Fill: plotFill}})

	y := scale.NewLinear(0, metricsCeiling, area.Bottom(), area.Y)
	for _, v := range scale.Ticks(0, metricsCeiling, 5) {
		py := y.Map(v)
		d.Add(
			hline(area.X, area.Right(), py, gridStyle(v != 0)),
			text(area.X-10, py+4, fmt.Sprintf("%.0f%%", v), 10, mutedColor, draw.AnchorEnd),
		)
	}

	gloss := d.VerticalGradient("gloss", "white", 0.3, 0)
	base := area.Bottom() + 20
	for _, b := range bars {
		r := b.Rect
		cx := r.X + r.Width/2
		color := orDefault(b.Datum.Color, DefaultColor)
		d.Add(
			draw.Rect{X: r.X + 2, Y: r.Y + 2, W: r.Width, H: r.Height, Radius: 4,
				Style: draw.Style{Fill: "black", FillOpacity: draw.Opacity(0.1)}},
			draw.Rect{X: r.X, Y: r.Y, W: r.Width, H: r.Height, Radius: 4,
				Style: draw.Style{Fill: color, Stroke: "white", StrokeWidth: 2}},
			draw.Rect{X: r.X, Y: r.Y, W: r.Width, H: r.Height, Radius: 4, Style: draw.Style{Fill: gloss}},
		)
		if t := b.Target; t != nil {
			d.Add(hline(t.X1, t.X2, t.Y, draw.Style{Stroke: targetColor, StrokeWidth: 2, Dash: "4,2"}))
		}
		value := text(cx, r.Y-8, fixed(b.Datum.Value, 1)+"%", 11, axisColor, draw.AnchorMiddle)
		value.Style.Weight = "600"
		label := text(cx, base, b.Datum.Label, 10, mutedColor, draw.AnchorMiddle)
		label.Style.Transform = fmt.Sprintf("rotate(-45, %s, %s)", geom.FormatCoord(cx), geom.FormatCoord(base))
		d.Add(value, label)
	}

	d.Add(axes(area, 2)...)
	d.Add(axisTitle(20, area.Y+area.H/2, orDefault(o.YLabel, "Performance (%)")))
	return &Chart{Kind: KindMetrics, Title: o.Title, Geometry: bars, Drawing: d}, nil
}
