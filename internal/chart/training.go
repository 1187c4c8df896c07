package chart

import (
	"math"
	"strconv"

	"github.com/banshee-data/modelboard/internal/draw"
	"github.com/banshee-data/modelboard/internal/geom"
	"github.com/banshee-data/modelboard/internal/scale"
)

// TrainingData is a pair of learning curves sampled per epoch.
type TrainingData struct {
	Epochs []int     `json:"epochs"`
	Train  []float64 `json:"train"`
	Val    []float64 `json:"val"`
}

// TrainingOptions configures Training.
type TrainingOptions struct {
	Title      string
	YLabel     string
	TrainColor string
	ValColor   string
}

// TrainingGeometry holds both curves laid out on the shared scale.
type TrainingGeometry struct {
	Train  *geom.Path `json:"train"`
	Val    *geom.Path `json:"val"`
	Min    float64    `json:"min"`
	Max    float64    `json:"max"`
	Epochs []int      `json:"epochs"`
}

const (
	trainingWidth  = 400
	trainingHeight = 250
	trainingDivs   = 5
)

var trainingPadding = geom.Padding{Top: 20, Right: 80, Bottom: 60, Left: 60}

// Training draws training and validation curves on one scale derived from
// both series, with epoch gridlines, a legend and the latest values.
func Training(data TrainingData, o TrainingOptions) (*Chart, error) {
	trainColor := orDefault(o.TrainColor, DefaultColor)
	valColor := orDefault(o.ValColor, ValColor)
	area := geom.Inset(trainingWidth, trainingHeight, trainingPadding)

	if len(data.Train) == 0 || len(data.Val) == 0 {
		return placeholderOr(KindTraining, trainingWidth, trainingHeight, o.Title, geom.ErrEmptyDataset)
	}
	lo, hi, _ := scale.Bounds(data.Train, data.Val)
	layout := geom.LineLayout{Area: area, Min: &lo, Max: &hi}
	train, err := geom.Line(data.Train, layout)
	if err != nil {
		return placeholderOr(KindTraining, trainingWidth, trainingHeight, o.Title, err)
	}
	val, err := geom.Line(data.Val, layout)
	if err != nil {
		return placeholderOr(KindTraining, trainingWidth, trainingHeight, o.Title, err)
	}
	epochs := data.Epochs
	if len(epochs) == 0 {
		epochs = make([]int, len(data.Train))
		for i := range epochs {
			epochs[i] = i + 1
		}
	}

	d := draw.New(trainingWidth, trainingHeight, o.Title)
	trainFill := d.VerticalGradient("train", trainColor, 0.2, 0.05)
	valFill := d.VerticalGradient("val", valColor, 0.2, 0.05)
	d.Add(draw.Rect{X: area.X, Y: area.Y, W: area.W, H: area.H, Style: draw.Style{Fill: plotFill}})

	span := scale.NewLinear(lo, hi, 0, 1).Span()
	for i := 0; i <= trainingDivs; i++ {
		frac := float64(i) / trainingDivs
		y := area.Bottom() - frac*area.H
		d.Add(
			hline(area.X, area.Right(), y, gridStyle(i != 0)),
			text(area.X-10, y+4, fixed(lo+span*frac, 3), 10, mutedColor, draw.AnchorEnd),
		)
	}
	for i := 0; i <= trainingDivs; i++ {
		x := area.X + float64(i)/trainingDivs*area.W
		idx := int(math.Floor(float64((len(epochs)-1)*i) / trainingDivs))
		d.Add(
			vline(x, area.Y, area.Bottom(), gridStyle(true)),
			text(x, area.Bottom()+15, strconv.Itoa(epochs[idx]), 10, mutedColor, draw.AnchorMiddle),
		)
	}

	d.Add(
		draw.Polygon{Points: train.Area, Style: draw.Style{Fill: trainFill}},
		draw.Polygon{Points: val.Area, Style: draw.Style{Fill: valFill}},
		draw.Polyline{Points: train.Points, Style: draw.Style{Stroke: trainColor, StrokeWidth: 2, Round: true}},
		draw.Polyline{Points: val.Points, Style: draw.Style{Stroke: valColor, StrokeWidth: 2, Round: true, Dash: "5,5"}},
	)
	for _, p := range train.Points {
		d.Add(dot(p, 3, trainColor))
	}
	for _, p := range val.Points {
		d.Add(dot(p, 3, valColor))
	}

	d.Add(axes(area, 2)...)
	epochLabel := text(area.X+area.W/2, trainingHeight-20, "Epoch", 12, axisColor, draw.AnchorMiddle)
	epochLabel.Style.Weight = "500"
	d.Add(epochLabel, axisTitle(20, area.Y+area.H/2, o.YLabel))

	panelX := area.Right() + 10
	d.Add(draw.Group{
		Transform: translate(panelX, area.Y+20),
		Shapes: []draw.Shape{
			draw.Rect{W: 60, H: 40, Radius: 4, Style: draw.Style{Fill: "white", Stroke: gridColor}},
			draw.Line{X1: 5, Y1: 12, X2: 15, Y2: 12, Style: draw.Style{Stroke: trainColor, StrokeWidth: 2}},
			draw.Circle{CX: 10, CY: 12, R: 2, Style: draw.Style{Fill: trainColor}},
			text(20, 16, "Train", 9, axisColor, draw.AnchorStart),
			draw.Line{X1: 5, Y1: 28, X2: 15, Y2: 28, Style: draw.Style{Stroke: valColor, StrokeWidth: 2, Dash: "3,3"}},
			draw.Circle{CX: 10, CY: 28, R: 2, Style: draw.Style{Fill: valColor}},
			text(20, 32, "Val", 9, axisColor, draw.AnchorStart),
		},
	})
	trainNow := text(30, 25, fixed(data.Train[len(data.Train)-1], 3), 11, trainColor, draw.AnchorMiddle)
	trainNow.Style.Weight = "600"
	valNow := text(30, 38, fixed(data.Val[len(data.Val)-1], 3), 11, valColor, draw.AnchorMiddle)
	valNow.Style.Weight = "600"
	d.Add(draw.Group{
		Transform: translate(panelX, area.Y+70),
		Shapes: []draw.Shape{
			draw.Rect{W: 60, H: 50, Radius: 4, Style: draw.Style{Fill: panelFill, Stroke: gridColor}},
			text(30, 12, "Current", 8, mutedColor, draw.AnchorMiddle),
			trainNow,
			valNow,
		},
	})

	g := TrainingGeometry{Train: train, Val: val, Min: lo, Max: hi, Epochs: epochs}
	return &Chart{Kind: KindTraining, Title: o.Title, Geometry: g, Drawing: d}, nil
}

func translate(x, y float64) string {
	return "translate(" + geom.FormatCoord(x) + ", " + geom.FormatCoord(y) + ")"
}
