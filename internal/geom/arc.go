package geom

import (
	"fmt"
	"math"
	"strings"
)

// fullCircleEpsilon absorbs rounding when a single wedge covers the circle.
const fullCircleEpsilon = 1e-9

// Wedge is one slice of a pie or donut chart. Angles are in degrees,
// measured clockwise in screen space from the positive x axis.
type Wedge struct {
	Datum      Datum   `json:"datum"`
	Fraction   float64 `json:"fraction"`
	StartAngle float64 `json:"start_angle"`
	EndAngle   float64 `json:"end_angle"`
	Sweep      float64 `json:"sweep"`
	Start      Point   `json:"start"`
	End        Point   `json:"end"`
	LargeArc   bool    `json:"large_arc"`
	// Path is SVG path data for the filled sector.
	Path string `json:"path"`
}

// Wedges lays out one sector per datum in input order. The running angle
// starts at 0 and each datum spans value/total*360 degrees.
func Wedges(data []Datum, center Point, radius float64) ([]Wedge, error) {
	if len(data) == 0 {
		return nil, ErrEmptyDataset
	}
	total := 0.0
	for _, d := range data {
		if !finite(d.Value) {
			return nil, fmt.Errorf("wedge %q: value %v is not finite", d.Label, d.Value)
		}
		if d.Value < 0 {
			return nil, fmt.Errorf("wedge %q: %w", d.Label, ErrNegativeValue)
		}
		total += d.Value
	}
	if total == 0 {
		return nil, ErrZeroTotal
	}

	wedges := make([]Wedge, len(data))
	current := 0.0
	for i, d := range data {
		frac := d.Value / total
		sweep := frac * 360
		start, end := current, current+sweep
		if i == len(data)-1 {
			end = 360
			sweep = end - start
		}
		w := Wedge{
			Datum:      d,
			Fraction:   frac,
			StartAngle: start,
			EndAngle:   end,
			Sweep:      sweep,
			Start:      Polar(center, radius, start),
			End:        Polar(center, radius, end),
			LargeArc:   sweep > 180,
		}
		w.Path = sectorPath(center, radius, w)
		wedges[i] = w
		current = end
	}
	return wedges, nil
}

// Polar returns the point at angle degrees on a circle around c.
func Polar(c Point, r, degrees float64) Point {
	rad := degrees * math.Pi / 180
	return Point{X: c.X + r*math.Cos(rad), Y: c.Y + r*math.Sin(rad)}
}

func sectorPath(c Point, r float64, w Wedge) string {
	var b strings.Builder
	rs := FormatCoord(r)
	fmt.Fprintf(&b, "M %s %s L %s %s ", FormatCoord(c.X), FormatCoord(c.Y), FormatCoord(w.Start.X), FormatCoord(w.Start.Y))
	if w.Sweep >= 360-fullCircleEpsilon {
		// An arc whose end points coincide draws nothing, so go round in two halves.
		mid := Polar(c, r, w.StartAngle+180)
		fmt.Fprintf(&b, "A %s %s 0 0 1 %s %s ", rs, rs, FormatCoord(mid.X), FormatCoord(mid.Y))
		fmt.Fprintf(&b, "A %s %s 0 0 1 %s %s Z", rs, rs, FormatCoord(w.Start.X), FormatCoord(w.Start.Y))
		return b.String()
	}
	flag := 0
	if w.LargeArc {
		flag = 1
	}
	fmt.Fprintf(&b, "A %s %s 0 %d 1 %s %s Z", rs, rs, flag, FormatCoord(w.End.X), FormatCoord(w.End.Y))
	return b.String()
}
