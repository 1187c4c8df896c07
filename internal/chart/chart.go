// Package chart composes the drawings shown on the model dashboard. Each
// builder takes its dataset and an options struct, runs the matching geom
// generator and paints the result with grid lines, labels and legends.
package chart

import (
	"fmt"
	"strconv"

	"github.com/banshee-data/modelboard/internal/draw"
	"github.com/banshee-data/modelboard/internal/geom"
)

// Chart kinds.
const (
	KindBar      = "bar"
	KindLine     = "line"
	KindDonut    = "donut"
	KindMetrics  = "metrics"
	KindTraining = "training"
	KindMatrix   = "confusion_matrix"
	KindRealTime = "realtime"
	KindMonitor  = "monitor"
)

// Palette shared by the chart builders.
const (
	DefaultColor  = "#06b6d4"
	LiveColor     = "#10b981"
	ValColor      = "#ef4444"
	gridColor     = "#e5e7eb"
	axisColor     = "#374151"
	mutedColor    = "#6b7280"
	plotFill      = "#fafafa"
	panelFill     = "#f8fafc"
	dash          = "2,2"
	noDataMessage = "No data"
)

// Chart is a composed drawing plus the geometry it was built from. Geometry
// is nil when the chart is a placeholder.
type Chart struct {
	Kind     string        `json:"kind"`
	Title    string        `json:"title"`
	Empty    bool          `json:"empty"`
	Message  string        `json:"message,omitempty"`
	Geometry any           `json:"geometry,omitempty"`
	Drawing  *draw.Drawing `json:"-"`
}

// Placeholder returns a bordered drawing with a centred message, used while
// a dataset is empty or a live window is still filling.
func Placeholder(kind string, width, height int, title, message string) *Chart {
	d := draw.New(width, height, title)
	d.Add(
		draw.Rect{X: 0.5, Y: 0.5, W: float64(width) - 1, H: float64(height) - 1, Radius: 4,
			Style: draw.Style{Fill: "white", Stroke: gridColor}},
		text(float64(width)/2, float64(height)/2+4, message, 12, mutedColor, draw.AnchorMiddle),
	)
	return &Chart{Kind: kind, Title: title, Empty: true, Message: message, Drawing: d}
}

// placeholderOr turns a recoverable data condition into a placeholder and wraps
// anything else.
func placeholderOr(kind string, width, height int, title string, err error) (*Chart, error) {
	if geom.Recoverable(err) {
		return Placeholder(kind, width, height, title, noDataMessage), nil
	}
	return nil, fmt.Errorf("%s chart %q: %w", kind, title, err)
}

func text(x, y float64, content string, size float64, fill, anchor string) draw.Text {
	return draw.Text{X: x, Y: y, Content: content, Style: draw.TextStyle{Size: size, Fill: fill, Anchor: anchor}}
}

func hline(x1, x2, y float64, style draw.Style) draw.Line {
	return draw.Line{X1: x1, Y1: y, X2: x2, Y2: y, Style: style}
}

func vline(x, y1, y2 float64, style draw.Style) draw.Line {
	return draw.Line{X1: x, Y1: y1, X2: x, Y2: y2, Style: style}
}

func gridStyle(dashed bool) draw.Style {
	s := draw.Style{Stroke: gridColor, StrokeWidth: 1}
	if dashed {
		s.Dash = dash
	}
	return s
}

// axes draws the x baseline and y axis of a plot area.
func axes(area geom.Box, width float64) []draw.Shape {
	s := draw.Style{Stroke: axisColor, StrokeWidth: width}
	return []draw.Shape{
		hline(area.X, area.Right(), area.Bottom(), s),
		vline(area.X, area.Y, area.Bottom(), s),
	}
}

// axisTitle is a label rotated to run up the left edge.
func axisTitle(x, y float64, content string) draw.Text {
	t := text(x, y, content, 12, axisColor, draw.AnchorMiddle)
	t.Style.Weight = "500"
	t.Style.Transform = fmt.Sprintf("rotate(-90, %s, %s)", geom.FormatCoord(x), geom.FormatCoord(y))
	return t
}

// dot is a data point marker with a white ring.
func dot(p geom.Point, r float64, color string) draw.Circle {
	return draw.Circle{CX: p.X, CY: p.Y, R: r, Style: draw.Style{Fill: color, Stroke: "white", StrokeWidth: 2}}
}

func fixed(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// number formats a value with the fewest digits that round-trip.
func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func orDefaultInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
