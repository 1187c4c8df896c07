// Package geom turns small numeric datasets into chart geometry: bar
// rectangles, polyline and area point lists, donut wedges and confusion
// matrix cells. Everything here is a pure function of its inputs.
package geom

import (
	"errors"
	"math"
	"strconv"
)

var (
	// ErrEmptyDataset is returned when there is nothing to lay out.
	ErrEmptyDataset = errors.New("empty dataset")
	// ErrZeroTotal is returned when proportional geometry has a zero total.
	ErrZeroTotal = errors.New("dataset total is zero")
	// ErrNegativeValue is returned when a value must be non-negative.
	ErrNegativeValue = errors.New("negative value")
	// ErrNotSquare is returned for ragged or non-square matrices.
	ErrNotSquare = errors.New("matrix is not square")
	// ErrLabelMismatch is returned when labels do not match the matrix size.
	ErrLabelMismatch = errors.New("label count does not match matrix dimension")
)

// Recoverable reports whether err is a data condition a chart should render
// as an empty placeholder rather than fail on.
func Recoverable(err error) bool {
	return errors.Is(err, ErrEmptyDataset) || errors.Is(err, ErrZeroTotal)
}

// Point is a position in drawing coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle; Y grows downwards.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Padding insets a plot area from the edges of the drawing.
type Padding struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Box is the plot area a geometry generator draws into.
type Box struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Inset returns the plot area left inside a width x height drawing after
// removing the padding. Negative sizes collapse to zero.
func Inset(width, height float64, p Padding) Box {
	return Box{
		X: p.Left,
		Y: p.Top,
		W: math.Max(0, width-p.Left-p.Right),
		H: math.Max(0, height-p.Top-p.Bottom),
	}
}

// Bottom is the y coordinate of the box baseline.
func (b Box) Bottom() float64 { return b.Y + b.H }

// Right is the x coordinate of the right edge.
func (b Box) Right() float64 { return b.X + b.W }

// SeriesPoint is one value of an ordered series. Index positions the value
// along the x axis.
type SeriesPoint struct {
	Index int     `json:"index"`
	Value float64 `json:"value"`
}

// Datum is one categorical value. Color is optional (empty means the chart
// default) and Target, when set, draws a guide line.
type Datum struct {
	Label  string   `json:"label"`
	Value  float64  `json:"value"`
	Color  string   `json:"color,omitempty"`
	Target *float64 `json:"target,omitempty"`
}

// Target is a convenience for building Datum.Target literals.
func Target(v float64) *float64 { return &v }

// FormatCoord renders a coordinate for path data, rounded to 1/1000 of a
// unit so floating point noise does not leak into the output.
func FormatCoord(v float64) string {
	r := math.Round(v*1000) / 1000
	if r == 0 {
		r = 0 // normalise -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
