package geom

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfusion_Binary(t *testing.T) {
	m := Matrix{{847, 23}, {31, 899}}
	grid, err := Confusion(m, []string{"Negative", "Positive"}, MatrixLayout{Origin: Point{X: 80, Y: 80}, CellSize: 60})
	require.NoError(t, err)

	assert.Equal(t, 1800, grid.Total)
	assert.Equal(t, 899, grid.Max)
	assert.Equal(t, 1746, grid.Correct)
	assert.InDelta(t, 1746.0/1800.0, grid.Accuracy, 1e-12)
	require.Len(t, grid.Cells, 4)

	tp := grid.Cells[3]
	assert.Equal(t, Rect{X: 140, Y: 140, Width: 60, Height: 60}, tp.Rect)
	assert.True(t, tp.Correct)
	assert.True(t, tp.Accent)
	assert.Equal(t, CorrectColor, tp.Color)
	assert.Equal(t, 1.0, tp.Opacity)
	assert.Equal(t, "white", tp.TextColor)
	assert.InDelta(t, 899.0/1800*100, tp.Percent, 1e-9)

	fp := grid.Cells[1]
	assert.False(t, fp.Correct)
	assert.Equal(t, IncorrectColor, fp.Color)
	assert.Equal(t, "#374151", fp.TextColor)
	assert.Equal(t, lightestShade, fp.Shade)
}

func TestConfusion_AccuracyMatchesDiagonal(t *testing.T) {
	matrices := []Matrix{
		{{5}},
		{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}},
		{{0, 10}, {10, 0}},
		{{100, 0, 0, 0}, {0, 50, 1, 0}, {2, 0, 30, 0}, {0, 0, 0, 7}},
	}
	for _, m := range matrices {
		labels := make([]string, len(m))
		grid, err := Confusion(m, labels, MatrixLayout{CellSize: 10})
		require.NoError(t, err)

		diag, total := 0, 0
		for i, row := range m {
			for j, v := range row {
				total += v
				if i == j {
					diag += v
				}
			}
		}
		assert.InDelta(t, float64(diag)/float64(total), grid.Accuracy, 1e-12)

		pct := 0.0
		for _, c := range grid.Cells {
			pct += c.Percent
		}
		assert.InDelta(t, 100, pct, 1e-9)
	}
}

func TestConfusion_ZeroTotal(t *testing.T) {
	grid, err := Confusion(Matrix{{0, 0}, {0, 0}}, []string{"a", "b"}, MatrixLayout{CellSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 0.0, grid.Accuracy)
	for _, c := range grid.Cells {
		assert.Equal(t, 0.0, c.Percent)
		assert.Equal(t, 0.0, c.Opacity)
	}
}

func TestConfusion_Errors(t *testing.T) {
	tests := []struct {
		name   string
		m      Matrix
		labels []string
		want   error
	}{
		{"empty", Matrix{}, nil, ErrEmptyDataset},
		{"ragged", Matrix{{1, 2}, {3}}, []string{"a", "b"}, ErrNotSquare},
		{"wide", Matrix{{1, 2, 3}, {3, 4, 5}}, []string{"a", "b"}, ErrNotSquare},
		{"negative", Matrix{{1, -2}, {3, 4}}, []string{"a", "b"}, ErrNegativeValue},
		{"labels", Matrix{{1, 2}, {3, 4}}, []string{"a"}, ErrLabelMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Confusion(tt.m, tt.labels, MatrixLayout{CellSize: 1})
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestShade(t *testing.T) {
	got := []string{Shade(1), Shade(0.7), Shade(0.5), Shade(0.3), Shade(0.2), Shade(0)}
	want := []string{"#1f2937", "#374151", "#6b7280", "#9ca3af", "#e5e7eb", "#e5e7eb"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Shade mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatCoord(t *testing.T) {
	assert.Equal(t, "0", FormatCoord(-1e-12))
	assert.Equal(t, "100", FormatCoord(100.0000000001))
	assert.Equal(t, "12.346", FormatCoord(12.34567))
}

func TestInset(t *testing.T) {
	b := Inset(400, 300, Padding{Top: 40, Right: 60, Bottom: 80, Left: 80})
	assert.Equal(t, Box{X: 80, Y: 40, W: 260, H: 180}, b)
	assert.Equal(t, 220.0, b.Bottom())
	assert.Equal(t, 340.0, b.Right())
	assert.Equal(t, Box{X: 10, Y: 10}, Inset(5, 5, Padding{Top: 10, Left: 10}))
}
