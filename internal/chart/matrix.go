package chart

import (
	"fmt"
	"strconv"

	"github.com/banshee-data/modelboard/internal/draw"
	"github.com/banshee-data/modelboard/internal/geom"
)

// MatrixOptions configures ConfusionMatrix.
type MatrixOptions struct {
	Title string
}

const (
	matrixCell    = 60
	matrixOrigin  = 80
	matrixMargin  = 120
	matrixLegendW = 80
)

// ConfusionMatrix draws a heat-shaded grid of classification counts. Cells
// on the diagonal are green with an accent border, the rest red; each cell
// shows its count and share of all predictions.
func ConfusionMatrix(m geom.Matrix, labels []string, o MatrixOptions) (*Chart, error) {
	n := len(m)
	width, height := n*matrixCell+matrixMargin+matrixLegendW, n*matrixCell+matrixMargin
	grid, err := geom.Confusion(m, labels, geom.MatrixLayout{
		Origin:   geom.Point{X: matrixOrigin, Y: matrixOrigin},
		CellSize: matrixCell,
	})
	if err != nil {
		return placeholderOr(KindMatrix, max(width, 200), max(height, 120), o.Title, err)
	}

	d := draw.New(width, height, o.Title)
	gridW := float64(n*matrixCell + matrixMargin)
	h := float64(height)

	title := text(gridW/2, 20, "Confusion Matrix", 14, axisColor, draw.AnchorMiddle)
	title.Style.Weight = "600"
	predicted := text(gridW/2, 40, "Predicted", 12, mutedColor, draw.AnchorMiddle)
	predicted.Style.Weight = "500"
	actual := axisTitle(20, h/2, "Actual")
	actual.Style.Fill = mutedColor
	d.Add(title, predicted, actual)

	for i, label := range grid.Labels {
		col := text(matrixOrigin+float64(i)*matrixCell+matrixCell/2, 65, label, 10, axisColor, draw.AnchorMiddle)
		col.Style.Weight = "500"
		row := text(70, 85+float64(i)*matrixCell+matrixCell/2+4, label, 10, axisColor, draw.AnchorEnd)
		row.Style.Weight = "500"
		d.Add(col, row)
	}

	for _, c := range grid.Cells {
		r := c.Rect
		d.Add(draw.Rect{X: r.X, Y: r.Y, W: r.Width, H: r.Height,
			Style: draw.Style{Fill: c.Color, FillOpacity: draw.Opacity(c.Opacity), Stroke: "white", StrokeWidth: 2}})
		if c.Accent {
			d.Add(draw.Rect{X: r.X, Y: r.Y, W: r.Width, H: r.Height,
				Style: draw.Style{Fill: "none", Stroke: geom.AccentColor, StrokeWidth: 3}})
		}
		cx, cy := r.X+r.Width/2, r.Y+r.Height/2
		value := text(cx, cy-5, strconv.Itoa(c.Value), 14, c.TextColor, draw.AnchorMiddle)
		value.Style.Weight = "bold"
		pct := text(cx, cy+10, "("+fixed(c.Percent, 1)+"%)", 9, c.TextColor, draw.AnchorMiddle)
		pct.Style.Opacity = draw.Opacity(0.8)
		d.Add(value, pct)
	}

	legendTitle := text(40, 15, "Legend", 10, axisColor, draw.AnchorMiddle)
	legendTitle.Style.Weight = "600"
	d.Add(draw.Group{
		Transform: translate(matrixOrigin+float64(n*matrixCell)+20, matrixOrigin),
		Shapes: []draw.Shape{
			draw.Rect{W: 80, H: 100, Radius: 4, Style: draw.Style{Fill: "white", Stroke: gridColor}},
			legendTitle,
			draw.Rect{X: 10, Y: 25, W: 15, H: 15, Style: draw.Style{Fill: geom.CorrectColor, FillOpacity: draw.Opacity(0.8)}},
			text(30, 37, "Correct", 9, axisColor, draw.AnchorStart),
			draw.Rect{X: 10, Y: 45, W: 15, H: 15, Style: draw.Style{Fill: geom.IncorrectColor, FillOpacity: draw.Opacity(0.8)}},
			text(30, 57, "Incorrect", 9, axisColor, draw.AnchorStart),
			text(5, 75, fmt.Sprintf("Total: %d", grid.Total), 8, mutedColor, draw.AnchorStart),
			text(5, 88, "Accuracy: "+fixed(grid.Accuracy*100, 1)+"%", 8, mutedColor, draw.AnchorStart),
		},
	})
	return &Chart{Kind: KindMatrix, Title: o.Title, Geometry: grid, Drawing: d}, nil
}
