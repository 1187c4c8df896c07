package geom

import (
	"fmt"
)

// Matrix is a square grid of classification counts: row = actual class,
// column = predicted class. The diagonal holds correct predictions.
type Matrix [][]int

// Colours used for confusion matrix cells.
const (
	CorrectColor   = "#10b981"
	IncorrectColor = "#ef4444"
	AccentColor    = "#059669"
)

// shades maps intensity buckets to neutral fills, darkest first.
var shades = []struct {
	above float64
	color string
}{
	{0.8, "#1f2937"},
	{0.6, "#374151"},
	{0.4, "#6b7280"},
	{0.2, "#9ca3af"},
}

const lightestShade = "#e5e7eb"

// MatrixLayout positions the grid. Origin is the top-left corner of cell (0,0).
type MatrixLayout struct {
	Origin   Point
	CellSize float64
}

// Cell is the geometry and shading for one matrix entry.
type Cell struct {
	Row     int     `json:"row"`
	Col     int     `json:"col"`
	Value   int     `json:"value"`
	Rect    Rect    `json:"rect"`
	Correct bool    `json:"correct"`
	Color   string  `json:"color"`
	Opacity float64 `json:"opacity"`
	// Percent is the share of all predictions, 0..100.
	Percent   float64 `json:"percent"`
	Shade     string  `json:"shade"`
	TextColor string  `json:"text_color"`
	// Accent marks diagonal cells, which get an extra border.
	Accent bool `json:"accent"`
}

// MatrixGrid is a laid out confusion matrix.
type MatrixGrid struct {
	Labels   []string `json:"labels"`
	Cells    []Cell   `json:"cells"`
	Total    int      `json:"total"`
	Max      int      `json:"max"`
	Correct  int      `json:"correct"`
	Accuracy float64  `json:"accuracy"`
	Size     int      `json:"size"`
	Bounds   Rect     `json:"bounds"`
}

// Validate checks the matrix is non-empty, square and non-negative.
func (m Matrix) Validate() error {
	if len(m) == 0 {
		return ErrEmptyDataset
	}
	for i, row := range m {
		if len(row) != len(m) {
			return fmt.Errorf("row %d has %d columns, want %d: %w", i, len(row), len(m), ErrNotSquare)
		}
		for j, v := range row {
			if v < 0 {
				return fmt.Errorf("cell (%d,%d) = %d: %w", i, j, v, ErrNegativeValue)
			}
		}
	}
	return nil
}

// Totals returns the sum of all cells, the largest cell and the diagonal sum.
func (m Matrix) Totals() (total, peak, diagonal int) {
	for i, row := range m {
		for j, v := range row {
			total += v
			if v > peak {
				peak = v
			}
			if i == j {
				diagonal += v
			}
		}
	}
	return total, peak, diagonal
}

// Accuracy is sum(diagonal)/total, or 0 when the matrix is empty of counts.
func (m Matrix) Accuracy() float64 {
	total, _, diag := m.Totals()
	if total == 0 {
		return 0
	}
	return float64(diag) / float64(total)
}

// Confusion lays out every cell of m. Opacity is value/max, percentages are
// value/total*100; both fall back to 0 when their denominator is zero.
func Confusion(m Matrix, labels []string, layout MatrixLayout) (*MatrixGrid, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if len(labels) != len(m) {
		return nil, fmt.Errorf("%d labels for %dx%d matrix: %w", len(labels), len(m), len(m), ErrLabelMismatch)
	}

	total, peak, diag := m.Totals()
	n := len(m)
	size := layout.CellSize
	grid := &MatrixGrid{
		Labels:   labels,
		Cells:    make([]Cell, 0, n*n),
		Total:    total,
		Max:      peak,
		Correct:  diag,
		Accuracy: m.Accuracy(),
		Size:     n,
		Bounds:   Rect{X: layout.Origin.X, Y: layout.Origin.Y, Width: float64(n) * size, Height: float64(n) * size},
	}

	for i, row := range m {
		for j, v := range row {
			intensity := 0.0
			if peak > 0 {
				intensity = float64(v) / float64(peak)
			}
			percent := 0.0
			if total > 0 {
				percent = float64(v) / float64(total) * 100
			}
			c := Cell{
				Row:       i,
				Col:       j,
				Value:     v,
				Rect:      Rect{X: layout.Origin.X + float64(j)*size, Y: layout.Origin.Y + float64(i)*size, Width: size, Height: size},
				Correct:   i == j,
				Color:     IncorrectColor,
				Opacity:   intensity,
				Percent:   percent,
				Shade:     Shade(intensity),
				TextColor: "#374151",
				Accent:    i == j,
			}
			if c.Correct {
				c.Color = CorrectColor
			}
			if intensity > 0.5 {
				c.TextColor = "white"
			}
			grid.Cells = append(grid.Cells, c)
		}
	}
	return grid, nil
}

// Shade returns the neutral fill for an intensity in [0,1].
func Shade(intensity float64) string {
	for _, s := range shades {
		if intensity > s.above {
			return s.color
		}
	}
	return lightestShade
}
