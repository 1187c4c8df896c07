package geom

import (
	"fmt"
	"math"

	"github.com/banshee-data/modelboard/internal/scale"
)

// BarLayout configures Bars.
type BarLayout struct {
	Area Box
	// Gap is the horizontal space between neighbouring bars, split evenly
	// on both sides of each slot.
	Gap float64
	// MaxValue is the value drawn at full height. Zero means use the largest
	// value in the data; percentage charts pass a fixed ceiling of 100.
	MaxValue float64
	// TargetOverhang extends target guides past both bar edges.
	TargetOverhang float64
}

// Bar is the laid out geometry for one Datum.
type Bar struct {
	Datum  Datum       `json:"datum"`
	Rect   Rect        `json:"rect"`
	Target *TargetLine `json:"target,omitempty"`
}

// TargetLine is a horizontal guide at a datum's target value.
type TargetLine struct {
	X1 float64 `json:"x1"`
	X2 float64 `json:"x2"`
	Y  float64 `json:"y"`
}

// Bars lays out one rectangle per datum, in input order, evenly spaced across
// the area. Heights are proportional to value/max and clamped to the area,
// so negative values draw flat; when every value is zero all bars have zero
// height.
func Bars(data []Datum, layout BarLayout) ([]Bar, error) {
	if len(data) == 0 {
		return nil, ErrEmptyDataset
	}

	maxValue := layout.MaxValue
	if maxValue <= 0 {
		for _, d := range data {
			if !finite(d.Value) {
				return nil, fmt.Errorf("bar %q: value %v is not finite", d.Label, d.Value)
			}
			maxValue = math.Max(maxValue, d.Value)
		}
	}

	area := layout.Area
	slot := area.W / float64(len(data))
	width := math.Max(0, slot-layout.Gap)
	y := scale.NewLinear(0, maxValue, area.Bottom(), area.Y)

	bars := make([]Bar, len(data))
	for i, d := range data {
		h := 0.0
		if maxValue > 0 && finite(d.Value) {
			h = clamp(d.Value/maxValue*area.H, 0, area.H)
		}
		x := area.X + float64(i)*slot + layout.Gap/2
		bars[i] = Bar{
			Datum: d,
			Rect:  Rect{X: x, Y: area.Bottom() - h, Width: width, Height: h},
		}
		if d.Target != nil && maxValue > 0 && finite(*d.Target) {
			bars[i].Target = &TargetLine{
				X1: x - layout.TargetOverhang,
				X2: x + width + layout.TargetOverhang,
				Y:  clamp(y.Map(*d.Target), area.Y, area.Bottom()),
			}
		}
	}
	return bars, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
