package chart

import (
	"github.com/banshee-data/modelboard/internal/draw"
	"github.com/banshee-data/modelboard/internal/geom"
)

// DonutOptions configures Donut. Size is the side of the square ring area;
// the legend sits to its right.
type DonutOptions struct {
	Title string
	Size  int
}

const (
	donutDefaultSize = 200
	donutMargin      = 20
	donutHole        = 0.6
	donutLegendWidth = 140
	donutLegendRow   = 20
)

// DonutGeometry is the laid out ring.
type DonutGeometry struct {
	Center      geom.Point   `json:"center"`
	Radius      float64      `json:"radius"`
	InnerRadius float64      `json:"inner_radius"`
	Total       float64      `json:"total"`
	Wedges      []geom.Wedge `json:"wedges"`
}

// Donut draws proportional wedges with a hollow centre showing the total.
func Donut(data []geom.Datum, o DonutOptions) (*Chart, error) {
	size := orDefaultInt(o.Size, donutDefaultSize)
	s := float64(size)
	width := size + donutLegendWidth
	c := geom.Point{X: s / 2, Y: s / 2}
	radius := max(0, s/2-donutMargin)

	wedges, err := geom.Wedges(data, c, radius)
	if err != nil {
		return placeholderOr(KindDonut, width, size, o.Title, err)
	}
	g := DonutGeometry{Center: c, Radius: radius, InnerRadius: radius * donutHole, Wedges: wedges}
	for _, w := range wedges {
		g.Total += w.Datum.Value
	}

	d := draw.New(width, size, o.Title)
	bounds := geom.Rect{X: c.X - radius, Y: c.Y - radius, Width: 2 * radius, Height: 2 * radius}
	for _, w := range wedges {
		d.Add(draw.Path{D: w.Path, Box: bounds,
			Style: draw.Style{Fill: orDefault(w.Datum.Color, DefaultColor), Stroke: "white", StrokeWidth: 2}})
	}
	total := text(c.X, c.Y-5, number(g.Total), 16, axisColor, draw.AnchorMiddle)
	total.Style.Weight = "bold"
	d.Add(
		draw.Circle{CX: c.X, CY: c.Y, R: g.InnerRadius, Style: draw.Style{Fill: "white"}},
		total,
		text(c.X, c.Y+10, "Total", 10, mutedColor, draw.AnchorMiddle),
	)

	top := c.Y - float64(len(wedges)-1)*donutLegendRow/2
	for i, w := range wedges {
		y := top + float64(i)*donutLegendRow
		value := text(float64(width)-10, y+4, number(w.Datum.Value), 12, axisColor, draw.AnchorEnd)
		value.Style.Weight = "500"
		d.Add(
			draw.Circle{CX: s + 6, CY: y, R: 6, Style: draw.Style{Fill: orDefault(w.Datum.Color, DefaultColor)}},
			text(s+18, y+4, w.Datum.Label, 12, mutedColor, draw.AnchorStart),
			value,
		)
	}
	return &Chart{Kind: KindDonut, Title: o.Title, Geometry: g, Drawing: d}, nil
}
