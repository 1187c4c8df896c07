package chart

import (
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/modelboard/internal/geom"
)

// Static export sizes for gonum plots.
const (
	PlotWidth  = 8 * vg.Inch
	PlotHeight = 4 * vg.Inch
)

// LinePlot builds a static plot of one ordered series indexed from 1.
func LinePlot(title, yLabel, hex string, values []float64) (*plot.Plot, error) {
	if len(values) == 0 {
		return nil, geom.ErrEmptyDataset
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Index"
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	if err := addLine(p, title, hex, indexedXYs(values, nil), false); err != nil {
		return nil, err
	}
	return p, nil
}

// TrainingPlot builds a static plot of the training and validation curves.
func TrainingPlot(title, yLabel string, data TrainingData) (*plot.Plot, error) {
	if len(data.Train) == 0 || len(data.Val) == 0 {
		return nil, geom.ErrEmptyDataset
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Epoch"
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	if err := addLine(p, "Train", DefaultColor, indexedXYs(data.Train, data.Epochs), false); err != nil {
		return nil, err
	}
	if err := addLine(p, "Val", ValColor, indexedXYs(data.Val, data.Epochs), true); err != nil {
		return nil, err
	}
	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p, nil
}

// BarPlot builds a static bar chart, one coloured bar per datum.
func BarPlot(title, yLabel string, data []geom.Datum) (*plot.Plot, error) {
	if len(data) == 0 {
		return nil, geom.ErrEmptyDataset
	}
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	labels := make([]string, len(data))
	for i, d := range data {
		labels[i] = d.Label
		bc, err := plotter.NewBarChart(plotter.Values{d.Value}, vg.Points(28))
		if err != nil {
			return nil, fmt.Errorf("bar %q: %w", d.Label, err)
		}
		c, err := ParseHexColor(orDefault(d.Color, DefaultColor))
		if err != nil {
			return nil, err
		}
		bc.XMin = float64(i)
		bc.Color = c
		bc.LineStyle.Width = 0
		p.Add(bc)
	}
	p.NominalX(labels...)
	return p, nil
}

// WritePlot encodes p in the given format ("png", "svg", "pdf").
func WritePlot(w io.Writer, p *plot.Plot, format string) error {
	wt, err := p.WriterTo(PlotWidth, PlotHeight, format)
	if err != nil {
		return fmt.Errorf("plot writer for %s: %w", format, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write %s plot: %w", format, err)
	}
	return nil
}

func addLine(p *plot.Plot, name, hex string, xys plotter.XYs, dashed bool) error {
	line, err := plotter.NewLine(xys)
	if err != nil {
		return fmt.Errorf("line %q: %w", name, err)
	}
	c, err := ParseHexColor(hex)
	if err != nil {
		return err
	}
	line.Color = c
	line.Width = vg.Points(1.5)
	if dashed {
		line.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
	}
	p.Add(line)
	p.Legend.Add(name, line)
	return nil
}

// indexedXYs pairs values with their epochs, or 1-based indices when the
// epochs are missing or short.
func indexedXYs(values []float64, epochs []int) plotter.XYs {
	xys := make(plotter.XYs, len(values))
	for i, v := range values {
		x := float64(i + 1)
		if i < len(epochs) {
			x = float64(epochs[i])
		}
		xys[i] = plotter.XY{X: x, Y: v}
	}
	return xys
}

// ParseHexColor parses "#rgb" or "#rrggbb" into an opaque colour.
func ParseHexColor(s string) (color.Color, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return nil, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
