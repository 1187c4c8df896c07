package chart

import (
	"time"

	"github.com/banshee-data/modelboard/internal/draw"
	"github.com/banshee-data/modelboard/internal/geom"
	"github.com/banshee-data/modelboard/internal/live"
	"github.com/banshee-data/modelboard/internal/scale"
)

// RealTimeOptions configures RealTime. The drawing is 300 x Height.
type RealTimeOptions struct {
	Title  string
	Color  string
	Height int
}

// LiveGeometry is the laid out window of a live chart.
type LiveGeometry struct {
	Path    *geom.Path `json:"path"`
	Current geom.Point `json:"current"`
	Stats   live.Stats `json:"stats"`
}

const (
	realTimeWidth         = 300
	realTimeDefaultHeight = 150
	realTimeGridLines     = 4
	// MinLiveSamples is how many samples a live chart needs before it draws
	// a line instead of a placeholder.
	MinLiveSamples = 2
)

// RealTime draws a sliding window of samples scaled to the window's own
// bounds, marking the newest value at the right edge.
func RealTime(values []float64, o RealTimeOptions) (*Chart, error) {
	height := orDefaultInt(o.Height, realTimeDefaultHeight)
	h := float64(height)
	color := orDefault(o.Color, LiveColor)
	if len(values) < MinLiveSamples {
		return Placeholder(KindRealTime, realTimeWidth, height, o.Title, "Loading..."), nil
	}

	area := geom.Inset(realTimeWidth, h, geom.Padding{Top: 40})
	path, err := geom.Line(values, geom.LineLayout{Area: area})
	if err != nil {
		return placeholderOr(KindRealTime, realTimeWidth, height, o.Title, err)
	}
	current := path.Points[len(path.Points)-1]

	d := draw.New(realTimeWidth, height, o.Title)
	fill := d.VerticalGradient("area", color, 0.3, 0.1)
	for i := 0; i < realTimeGridLines; i++ {
		y := 20 + float64(i)*area.H/float64(realTimeGridLines-1)
		d.Add(hline(0, realTimeWidth, y, gridStyle(false)))
	}
	latest := text(280, 15, fixed(values[len(values)-1], 1), 12, color, draw.AnchorStart)
	latest.Style.Weight = "bold"
	d.Add(
		draw.Polygon{Points: path.Area, Style: draw.Style{Fill: fill}},
		draw.Polyline{Points: path.Points, Style: draw.Style{Stroke: color, StrokeWidth: 2, Round: true}},
		dot(current, 4, color),
		latest,
	)
	g := LiveGeometry{Path: path, Current: current, Stats: live.Summarize(values)}
	return &Chart{Kind: KindRealTime, Title: o.Title, Geometry: g, Drawing: d}, nil
}

// MonitorOptions configures Monitor. Min and Max fix the vertical scale.
type MonitorOptions struct {
	Title    string
	Unit     string
	Color    string
	Min      float64
	Max      float64
	// Location sets the zone of the time labels; nil keeps each sample's own.
	Location *time.Location
}

const (
	monitorWidth      = 400
	monitorHeight     = 200
	monitorLabelEvery = 10
	monitorTimeFormat = "15:04"
)

var monitorPadding = geom.Padding{Top: 20, Right: 80, Bottom: 40, Left: 60}

// Monitor draws a live gauge over fixed bounds with time labels every ten
// samples and a statistics panel for the current window.
func Monitor(samples []live.Sample, o MonitorOptions) (*Chart, error) {
	color := orDefault(o.Color, LiveColor)
	if len(samples) < MinLiveSamples {
		return Placeholder(KindMonitor, monitorWidth, monitorHeight, o.Title, "Initializing..."), nil
	}

	values := make([]float64, len(samples))
	for i, s := range samples {
		values[i] = s.Value
	}
	area := geom.Inset(monitorWidth, monitorHeight, monitorPadding)
	lo, hi := o.Min, o.Max
	path, err := geom.Line(values, geom.LineLayout{Area: area, Min: &lo, Max: &hi})
	if err != nil {
		return placeholderOr(KindMonitor, monitorWidth, monitorHeight, o.Title, err)
	}
	y := scale.NewLinear(lo, hi, area.Bottom(), area.Y)
	stats := live.Summarize(values)
	current := geom.Point{X: area.Right(), Y: y.Map(stats.Current)}

	d := draw.New(monitorWidth, monitorHeight, o.Title)
	fill := d.VerticalGradient("area", color, 0.3, 0.05)
	glow := d.AddGlow(3)
	d.Add(draw.Rect{X: area.X, Y: area.Y, W: area.W, H: area.H, Style: draw.Style{Fill: plotFill}})

	for _, frac := range scale.Ticks(0, 1, 4) {
		py := area.Bottom() - frac*area.H
		d.Add(
			hline(area.X, area.Right(), py, gridStyle(true)),
			text(area.X-10, py+4, fixed(lo+(hi-lo)*frac, 0), 9, mutedColor, draw.AnchorEnd),
		)
	}
	last := float64(len(samples) - 1)
	for i := 0; i < len(samples); i += monitorLabelEvery {
		x := area.X + float64(i)/last*area.W
		ts := samples[i].Timestamp
		if o.Location != nil {
			ts = ts.In(o.Location)
		}
		d.Add(
			vline(x, area.Y, area.Bottom(), gridStyle(true)),
			text(x, area.Bottom()+15, ts.Format(monitorTimeFormat), 9, mutedColor, draw.AnchorMiddle),
		)
	}

	d.Add(
		draw.Polygon{Points: path.Area, Style: draw.Style{Fill: fill}},
		draw.Polyline{Points: path.Points, Style: draw.Style{Stroke: color, StrokeWidth: 2, Round: true, Filter: glow}},
		draw.Circle{CX: current.X, CY: current.Y, R: 4,
			Style: draw.Style{Fill: color, Stroke: "white", StrokeWidth: 2, Filter: glow}},
	)
	d.Add(axes(area, 1)...)
	d.Add(statsPanel(area.Right()+10, area.Y, stats, color, o.Unit))

	g := LiveGeometry{Path: path, Current: current, Stats: stats}
	return &Chart{Kind: KindMonitor, Title: o.Title, Geometry: g, Drawing: d}, nil
}

func statsPanel(x, y float64, s live.Stats, color, unit string) draw.Group {
	heading := text(32, 12, "Statistics", 8, mutedColor, draw.AnchorMiddle)
	heading.Style.Weight = "500"
	shapes := []draw.Shape{
		draw.Rect{W: 65, H: 80, Radius: 4, Style: draw.Style{Fill: "white", Stroke: gridColor}},
		heading,
	}
	rows := []struct {
		label  string
		value  float64
		color  string
		weight string
	}{
		{"Current:", s.Current, color, "600"},
		{"Avg:", s.Avg, axisColor, "500"},
		{"Max:", s.Max, ValColor, "500"},
		{"Min:", s.Min, LiveColor, "500"},
	}
	for i, r := range rows {
		ry := 25 + float64(i)*13
		label := fixed(r.value, 1)
		if i == 0 && unit != "" {
			label += " " + unit
		}
		v := text(60, ry, label, 8, r.color, draw.AnchorEnd)
		v.Style.Weight = r.weight
		shapes = append(shapes, text(5, ry, r.label, 8, mutedColor, draw.AnchorStart), v)
	}
	return draw.Group{Transform: translate(x, y), Shapes: shapes}
}
