package chart

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/modelboard/internal/geom"
	"github.com/banshee-data/modelboard/internal/live"
)

// DefaultAssetsHost serves the echarts javascript when no local mirror is
// configured.
const DefaultAssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

// HTMLRenderer renders interactive echarts pages for the same datasets the
// SVG builders draw. Zero values fall back to full width, 480px, the
// public assets host and each sample's own time zone.
type HTMLRenderer struct {
	AssetsHost string
	Width      string
	Height     string
	Location   *time.Location
}

func (r HTMLRenderer) assetsHost() string { return orDefault(r.AssetsHost, DefaultAssetsHost) }

func (r HTMLRenderer) init(title string) charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		PageTitle:  title,
		Width:      orDefault(r.Width, "100%"),
		Height:     orDefault(r.Height, "480px"),
		AssetsHost: r.assetsHost(),
	})
}

func render(c interface{ Render(io.Writer) error }) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return buf.Bytes(), nil
}

// Bar renders categorical values as a bar chart.
func (r HTMLRenderer) Bar(title string, data []geom.Datum) ([]byte, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		r.init(title),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(datumLabels(data)).
		AddSeries(title, barData(data, false),
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)

	page := components.NewPage()
	page.SetAssetsHost(r.assetsHost())
	page.AddCharts(bar)
	return render(page)
}

// Metrics renders percentage scores next to their targets on a 0..100 axis.
func (r HTMLRenderer) Metrics(title string, data []geom.Datum) ([]byte, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		r.init(title),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Performance (%)", Min: 0, Max: metricsCeiling}),
	)
	bar.SetXAxis(datumLabels(data)).
		AddSeries("Score", barData(data, false),
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		).
		AddSeries("Target", barData(data, true),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: targetColor}),
		)
	return render(bar)
}

// Line renders an ordered series indexed from 1.
func (r HTMLRenderer) Line(title, color string, values []float64) ([]byte, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(
		r.init(title),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	line.SetXAxis(indexLabels(len(values))).
		AddSeries(title, lineData(values),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: orDefault(color, DefaultColor)}),
		)
	return render(line)
}

// Training renders the training and validation curves against epochs.
func (r HTMLRenderer) Training(title, yLabel string, data TrainingData) ([]byte, error) {
	epochs := make([]string, len(data.Epochs))
	for i, e := range data.Epochs {
		epochs[i] = strconv.Itoa(e)
	}
	if len(epochs) == 0 {
		epochs = indexLabels(max(len(data.Train), len(data.Val)))
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		r.init(title),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Epoch", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: yLabel}),
	)
	line.SetXAxis(epochs).
		AddSeries("Train", lineData(data.Train), charts.WithItemStyleOpts(opts.ItemStyle{Color: DefaultColor})).
		AddSeries("Val", lineData(data.Val), charts.WithItemStyleOpts(opts.ItemStyle{Color: ValColor}))
	return render(line)
}

// Donut renders proportions as a ring.
func (r HTMLRenderer) Donut(title string, data []geom.Datum) ([]byte, error) {
	items := make([]opts.PieData, len(data))
	for i, d := range data {
		items[i] = opts.PieData{Name: d.Label, Value: d.Value}
		if d.Color != "" {
			items[i].ItemStyle = &opts.ItemStyle{Color: d.Color}
		}
	}
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		r.init(title),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Orient: "vertical", Right: "10"}),
	)
	pie.AddSeries(title, items,
		charts.WithPieChartOpts(opts.PieChart{Radius: []string{"36%", "60%"}}),
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {c}"}),
	)
	return render(pie)
}

// Matrix renders a confusion matrix as a heatmap; x is the predicted class
// and y the actual class.
func (r HTMLRenderer) Matrix(title string, m geom.Matrix, labels []string) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if len(labels) != len(m) {
		return nil, geom.ErrLabelMismatch
	}
	_, peak, _ := m.Totals()
	cells := make([]opts.HeatMapData, 0, len(m)*len(m))
	for i, row := range m {
		for j, v := range row {
			cells = append(cells, opts.HeatMapData{Value: [3]interface{}{j, i, v}})
		}
	}
	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		r.init(title),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: "Accuracy " + fixed(m.Accuracy()*100, 1) + "%"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Predicted", Type: "category", Data: labels}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Actual", Type: "category", Data: labels}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(max(peak, 1)),
			InRange:    &opts.VisualMapInRange{Color: []string{geom.Shade(0), geom.Shade(1)}},
		}),
	)
	hm.SetXAxis(labels).AddSeries("count", cells,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true)}),
	)
	return render(hm)
}

// Live renders a sample window against fixed bounds, labelled by time.
func (r HTMLRenderer) Live(title, unit, color string, lo, hi float64, samples []live.Sample) ([]byte, error) {
	times := make([]string, len(samples))
	values := make([]float64, len(samples))
	for i, s := range samples {
		ts := s.Timestamp
		if r.Location != nil {
			ts = ts.In(r.Location)
		}
		times[i] = ts.Format("15:04:05")
		values[i] = s.Value
	}
	line := charts.NewLine()
	line.SetGlobalOptions(
		r.init(title),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: unit}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{Name: unit, Min: lo, Max: hi}),
	)
	line.SetXAxis(times).
		AddSeries(title, lineData(values), charts.WithItemStyleOpts(opts.ItemStyle{Color: orDefault(color, LiveColor)}))
	return render(line)
}

func datumLabels(data []geom.Datum) []string {
	labels := make([]string, len(data))
	for i, d := range data {
		labels[i] = d.Label
	}
	return labels
}

// barData converts values, or targets when targets is set. Datums without
// a target contribute an empty bar.
func barData(data []geom.Datum, targets bool) []opts.BarData {
	out := make([]opts.BarData, len(data))
	for i, d := range data {
		switch {
		case targets && d.Target != nil:
			out[i] = opts.BarData{Value: *d.Target}
		case targets:
			out[i] = opts.BarData{Value: 0}
		default:
			out[i] = opts.BarData{Value: d.Value}
			if d.Color != "" {
				out[i].ItemStyle = &opts.ItemStyle{Color: d.Color}
			}
		}
	}
	return out
}

func lineData(values []float64) []opts.LineData {
	out := make([]opts.LineData, len(values))
	for i, v := range values {
		out[i] = opts.LineData{Value: v}
	}
	return out
}

func indexLabels(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = strconv.Itoa(i + 1)
	}
	return out
}
