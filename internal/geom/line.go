package geom

import (
	"fmt"

	"github.com/banshee-data/modelboard/internal/scale"
)

// LineLayout configures Line and Series. Min and Max pin the vertical scale
// (live gauges with fixed bounds); when nil the series' own min/max is used.
type LineLayout struct {
	Area Box
	Min  *float64
	Max  *float64
}

// Path is the geometry of one line series.
type Path struct {
	// Points is the polyline for the stroke, in input order.
	Points []Point `json:"points"`
	// Area is Points closed against the baseline for the filled region.
	Area []Point `json:"area"`
	// Min and Max are the value bounds the y scale was built from.
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Line lays out an ordered series. x = index/(n-1) across the area; a single
// value sits on the left edge. Segments are straight, no resampling.
func Line(values []float64, layout LineLayout) (*Path, error) {
	pts := make([]SeriesPoint, len(values))
	for i, v := range values {
		pts[i] = SeriesPoint{Index: i, Value: v}
	}
	return lineFrom(pts, 0, len(values)-1, layout)
}

// Series lays out explicitly indexed points. The x scale spans the smallest
// to the largest index, so gaps in the indices leave gaps along the axis.
func Series(points []SeriesPoint, layout LineLayout) (*Path, error) {
	if len(points) == 0 {
		return nil, ErrEmptyDataset
	}
	first, last := points[0].Index, points[0].Index
	for _, p := range points[1:] {
		first = min(first, p.Index)
		last = max(last, p.Index)
	}
	return lineFrom(points, first, last, layout)
}

func lineFrom(points []SeriesPoint, firstIndex, lastIndex int, layout LineLayout) (*Path, error) {
	if len(points) == 0 {
		return nil, ErrEmptyDataset
	}
	values := make([]float64, len(points))
	for i, p := range points {
		if !finite(p.Value) {
			return nil, fmt.Errorf("point %d: value %v is not finite", p.Index, p.Value)
		}
		values[i] = p.Value
	}

	lo, hi, _ := scale.Bounds(values)
	if layout.Min != nil {
		lo = *layout.Min
	}
	if layout.Max != nil {
		hi = *layout.Max
	}

	area := layout.Area
	y := scale.NewLinear(lo, hi, area.Bottom(), area.Y)

	path := &Path{
		Points: make([]Point, len(points)),
		Area:   make([]Point, 0, len(points)+2),
		Min:    lo,
		Max:    hi,
	}
	path.Area = append(path.Area, Point{X: area.X, Y: area.Bottom()})
	for i, p := range points {
		x := area.X
		if span := lastIndex - firstIndex; span > 0 {
			x = area.X + float64(p.Index-firstIndex)/float64(span)*area.W
		}
		path.Points[i] = Point{X: x, Y: y.Map(p.Value)}
	}
	path.Area = append(path.Area, path.Points...)
	path.Area = append(path.Area, Point{X: area.Right(), Y: area.Bottom()})
	return path, nil
}
