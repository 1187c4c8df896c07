// Package draw describes a chart as resolution-independent vector shapes in
// a fixed virtual coordinate space (the viewBox) and encodes it as SVG.
package draw

import (
	"strings"

	"github.com/banshee-data/modelboard/internal/geom"
	"github.com/google/uuid"
)

// Drawing is a renderable chart: a viewBox, gradient definitions and an
// ordered list of shapes painted back to front.
type Drawing struct {
	// ID namespaces gradient ids so several drawings can share a page.
	ID        string
	Title     string
	Width     int
	Height    int
	Gradients []Gradient
	Glows     []Glow
	Shapes    []Shape
}

// New returns an empty drawing with a width x height viewBox.
func New(width, height int, title string) *Drawing {
	return &Drawing{
		ID:     strings.SplitN(uuid.NewString(), "-", 2)[0],
		Title:  title,
		Width:  width,
		Height: height,
	}
}

// Add appends shapes to the drawing.
func (d *Drawing) Add(shapes ...Shape) {
	d.Shapes = append(d.Shapes, shapes...)
}

// VerticalGradient registers a top-to-bottom fade of color and returns the
// fill reference to use on shapes.
func (d *Drawing) VerticalGradient(name, color string, topOpacity, bottomOpacity float64) string {
	id := d.ID + "-" + name
	d.Gradients = append(d.Gradients, Gradient{
		ID: id,
		Stops: []Stop{
			{Offset: 0, Color: color, Opacity: topOpacity},
			{Offset: 100, Color: color, Opacity: bottomOpacity},
		},
	})
	return "url(#" + id + ")"
}

// AddGlow registers a blur-and-merge glow filter and returns the filter
// reference to use on shapes. Repeated calls return the same filter.
func (d *Drawing) AddGlow(stdDev float64) string {
	id := d.ID + "-glow"
	if len(d.Glows) == 0 {
		d.Glows = append(d.Glows, Glow{ID: id, StdDev: stdDev})
	}
	return "url(#" + id + ")"
}

// Glow is a gaussian blur merged under the source graphic.
type Glow struct {
	ID     string
	StdDev float64
}

// Gradient is a vertical linear gradient.
type Gradient struct {
	ID    string
	Stops []Stop
}

// Stop is one gradient colour stop; Offset is a percentage.
type Stop struct {
	Offset  uint8
	Color   string
	Opacity float64
}

// Shape is anything that can be painted into a drawing.
type Shape interface {
	Bounds() geom.Rect
}

// Rect is a rectangle with optional rounded corners.
type Rect struct {
	X, Y, W, H float64
	Radius     float64
	Style      Style
}

// Line is a straight segment.
type Line struct {
	X1, Y1, X2, Y2 float64
	Style          Style
}

// Polyline is an open sequence of straight segments.
type Polyline struct {
	Points []geom.Point
	Style  Style
}

// Polygon is a closed sequence of straight segments.
type Polygon struct {
	Points []geom.Point
	Style  Style
}

// Path is raw SVG path data, used for arcs and wedges.
type Path struct {
	D     string
	Style Style
	// Box is the region the path covers, used for Bounds.
	Box geom.Rect
}

// Circle is a filled or stroked circle.
type Circle struct {
	CX, CY, R float64
	Style     Style
}

// Text is a single line label.
type Text struct {
	X, Y    float64
	Content string
	Style   TextStyle
}

// Group paints its children with a shared transform.
type Group struct {
	// Transform is an SVG transform list such as "translate(10,20)".
	Transform string
	Shapes    []Shape
}

// Bounds implementations report the untransformed extent of each shape.

func (r Rect) Bounds() geom.Rect { return geom.Rect{X: r.X, Y: r.Y, Width: r.W, Height: r.H} }

func (l Line) Bounds() geom.Rect {
	return pointsBounds([]geom.Point{{X: l.X1, Y: l.Y1}, {X: l.X2, Y: l.Y2}})
}

func (p Polyline) Bounds() geom.Rect { return pointsBounds(p.Points) }

func (p Polygon) Bounds() geom.Rect { return pointsBounds(p.Points) }

func (p Path) Bounds() geom.Rect { return p.Box }

func (c Circle) Bounds() geom.Rect {
	return geom.Rect{X: c.CX - c.R, Y: c.CY - c.R, Width: 2 * c.R, Height: 2 * c.R}
}

func (t Text) Bounds() geom.Rect { return geom.Rect{X: t.X, Y: t.Y} }

func (g Group) Bounds() geom.Rect {
	var pts []geom.Point
	for _, s := range g.Shapes {
		b := s.Bounds()
		pts = append(pts, geom.Point{X: b.X, Y: b.Y}, geom.Point{X: b.X + b.Width, Y: b.Y + b.Height})
	}
	return pointsBounds(pts)
}

func pointsBounds(pts []geom.Point) geom.Rect {
	if len(pts) == 0 {
		return geom.Rect{}
	}
	minX, minY, maxX, maxY := pts[0].X, pts[0].Y, pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	return geom.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
