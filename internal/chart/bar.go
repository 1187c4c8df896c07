package chart

import (
	"github.com/banshee-data/modelboard/internal/draw"
	"github.com/banshee-data/modelboard/internal/geom"
)

// BarOptions configures Bar. The drawing is 300 wide and Height+40 tall.
type BarOptions struct {
	Title  string
	Height int
}

const (
	barWidth         = 300
	barDefaultHeight = 200
	barGap           = 10
	barTopInset      = 40
	barGridLines     = 5
)

// Bar draws a simple categorical bar chart scaled to the largest value,
// with value labels above and category labels below each bar.
func Bar(data []geom.Datum, o BarOptions) (*Chart, error) {
	height := orDefaultInt(o.Height, barDefaultHeight)
	h := float64(height)
	area := geom.Inset(barWidth, h, geom.Padding{Top: barTopInset})

	bars, err := geom.Bars(data, geom.BarLayout{Area: area, Gap: barGap})
	if err != nil {
		return placeholderOr(KindBar, barWidth, height+40, o.Title, err)
	}

	d := draw.New(barWidth, height+40, o.Title)
	for i := 0; i < barGridLines; i++ {
		y := 20 + float64(i)*area.H/float64(barGridLines-1)
		d.Add(hline(0, barWidth, y, gridStyle(false)))
	}
	for _, b := range bars {
		cx := b.Rect.X + b.Rect.Width/2
		d.Add(
			draw.Rect{X: b.Rect.X, Y: b.Rect.Y, W: b.Rect.Width, H: b.Rect.Height, Radius: 2,
				Style: draw.Style{Fill: orDefault(b.Datum.Color, DefaultColor)}},
			text(cx, h+15, b.Datum.Label, 10, mutedColor, draw.AnchorMiddle),
			text(cx, b.Rect.Y-5, number(b.Datum.Value), 10, axisColor, draw.AnchorMiddle),
		)
	}
	return &Chart{Kind: KindBar, Title: o.Title, Geometry: bars, Drawing: d}, nil
}
