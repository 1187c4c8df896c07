package chart

import (
	"github.com/banshee-data/modelboard/internal/draw"
	"github.com/banshee-data/modelboard/internal/geom"
)

// LineOptions configures Line. The drawing is 300 x Height.
type LineOptions struct {
	Title  string
	Color  string
	Height int
}

const (
	lineWidth         = 300
	lineDefaultHeight = 200
	lineGridLines     = 5
)

// Line draws a series as a stroked polyline over a gradient-filled area,
// scaled to the series' own min and max, with a dot per value.
func Line(values []float64, o LineOptions) (*Chart, error) {
	height := orDefaultInt(o.Height, lineDefaultHeight)
	h := float64(height)
	color := orDefault(o.Color, DefaultColor)
	area := geom.Inset(lineWidth, h, geom.Padding{Top: 40})

	path, err := geom.Line(values, geom.LineLayout{Area: area})
	if err != nil {
		return placeholderOr(KindLine, lineWidth, height, o.Title, err)
	}

	d := draw.New(lineWidth, height, o.Title)
	fill := d.VerticalGradient("area", color, 0.3, 0.1)
	for i := 0; i < lineGridLines; i++ {
		y := 20 + float64(i)*area.H/float64(lineGridLines-1)
		d.Add(hline(0, lineWidth, y, gridStyle(false)))
	}
	d.Add(
		draw.Polygon{Points: path.Area, Style: draw.Style{Fill: fill}},
		draw.Polyline{Points: path.Points, Style: draw.Style{Stroke: color, StrokeWidth: 2, Round: true}},
	)
	for _, p := range path.Points {
		d.Add(dot(p, 3, color))
	}
	d.Add(
		text(5, 25, fixed(path.Max, 1), 10, mutedColor, draw.AnchorStart),
		text(5, h-5, fixed(path.Min, 1), 10, mutedColor, draw.AnchorStart),
	)
	return &Chart{Kind: KindLine, Title: o.Title, Geometry: path, Drawing: d}, nil
}
