// Package dashboard serves the model dashboard's charts over HTTP: static
// charts built from the mock datasets, live monitors fed on a timer, and the
// debug pages of the sample store.
package dashboard

import (
	"errors"

	"gonum.org/v1/plot"

	"github.com/banshee-data/modelboard/internal/chart"
	"github.com/banshee-data/modelboard/internal/config"
	"github.com/banshee-data/modelboard/internal/mockdata"
)

// ErrNoPlot is returned by Entry.Plot for charts without a static export.
var ErrNoPlot = errors.New("chart has no static plot export")

// Entry is one named chart in the catalog.
type Entry struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Kind  string `json:"kind"`

	build func() (*chart.Chart, error)
	html  func(chart.HTMLRenderer) ([]byte, error)
	plot  func() (*plot.Plot, error)
}

// Build composes the SVG drawing and its geometry.
func (e Entry) Build() (*chart.Chart, error) { return e.build() }

// HTML renders the interactive echarts page.
func (e Entry) HTML(r chart.HTMLRenderer) ([]byte, error) { return e.html(r) }

// HasPlot reports whether the chart can be exported with gonum/plot.
func (e Entry) HasPlot() bool { return e.plot != nil }

// Plot builds the static gonum plot, or returns ErrNoPlot.
func (e Entry) Plot() (*plot.Plot, error) {
	if e.plot == nil {
		return nil, ErrNoPlot
	}
	return e.plot()
}

// Catalog lists the dashboard's static charts in display order.
type Catalog struct {
	entries []Entry
	index   map[string]int
}

// NewCatalog builds the chart catalog over the mock datasets, sized from
// cfg. Learning curves are generated once from cfg's seed.
func NewCatalog(cfg *config.Config) *Catalog {
	curves := mockdata.NewLearningCurves(cfg.GetEpochs(), cfg.GetSeed())
	loss := chart.TrainingData{Epochs: curves.Epochs, Train: curves.TrainLoss, Val: curves.ValLoss}
	accuracy := chart.TrainingData{Epochs: curves.Epochs, Train: curves.TrainAcc, Val: curves.ValAcc}
	matrix, labels := mockdata.BinaryConfusion()
	metrics := mockdata.ClassificationMetrics()
	throughput := mockdata.InferenceThroughput()
	latency := mockdata.Values(mockdata.ResponseLatency())
	devices := mockdata.DeviceStatus()
	datasets := mockdata.DatasetTypes()

	c := &Catalog{index: make(map[string]int)}
	c.add(Entry{
		Name: "metrics", Title: "Model Performance Metrics", Kind: chart.KindMetrics,
		build: func() (*chart.Chart, error) {
			return chart.Metrics(metrics, chart.MetricsOptions{Title: "Model Performance Metrics"})
		},
		html: func(r chart.HTMLRenderer) ([]byte, error) {
			return r.Metrics("Model Performance Metrics", metrics)
		},
		plot: func() (*plot.Plot, error) {
			return chart.BarPlot("Model Performance Metrics", "Performance (%)", metrics)
		},
	})
	c.add(Entry{
		Name: "throughput", Title: "Inference Throughput", Kind: chart.KindBar,
		build: func() (*chart.Chart, error) {
			return chart.Bar(throughput, chart.BarOptions{Title: "Inference Throughput", Height: cfg.GetBarHeight()})
		},
		html: func(r chart.HTMLRenderer) ([]byte, error) {
			return r.Bar("Inference Throughput", throughput)
		},
		plot: func() (*plot.Plot, error) {
			return chart.BarPlot("Inference Throughput", "req/s", throughput)
		},
	})
	c.add(Entry{
		Name: "latency", Title: "Response Latency", Kind: chart.KindLine,
		build: func() (*chart.Chart, error) {
			return chart.Line(latency, chart.LineOptions{Title: "Response Latency", Color: mockdata.Amber, Height: cfg.GetLineHeight()})
		},
		html: func(r chart.HTMLRenderer) ([]byte, error) {
			return r.Line("Response Latency", mockdata.Amber, latency)
		},
		plot: func() (*plot.Plot, error) {
			return chart.LinePlot("Response Latency", "ms", mockdata.Amber, latency)
		},
	})
	c.add(Entry{
		Name: "loss", Title: "Training Loss", Kind: chart.KindTraining,
		build: func() (*chart.Chart, error) {
			return chart.Training(loss, chart.TrainingOptions{Title: "Training Loss", YLabel: "Loss"})
		},
		html: func(r chart.HTMLRenderer) ([]byte, error) {
			return r.Training("Training Loss", "Loss", loss)
		},
		plot: func() (*plot.Plot, error) {
			return chart.TrainingPlot("Training Loss", "Loss", loss)
		},
	})
	c.add(Entry{
		Name: "accuracy", Title: "Training Accuracy", Kind: chart.KindTraining,
		build: func() (*chart.Chart, error) {
			return chart.Training(accuracy, chart.TrainingOptions{Title: "Training Accuracy", YLabel: "Accuracy (%)"})
		},
		html: func(r chart.HTMLRenderer) ([]byte, error) {
			return r.Training("Training Accuracy", "Accuracy (%)", accuracy)
		},
		plot: func() (*plot.Plot, error) {
			return chart.TrainingPlot("Training Accuracy", "Accuracy (%)", accuracy)
		},
	})
	c.add(Entry{
		Name: "confusion", Title: "Confusion Matrix", Kind: chart.KindMatrix,
		build: func() (*chart.Chart, error) {
			return chart.ConfusionMatrix(matrix, labels, chart.MatrixOptions{Title: "Confusion Matrix"})
		},
		html: func(r chart.HTMLRenderer) ([]byte, error) {
			return r.Matrix("Confusion Matrix", matrix, labels)
		},
	})
	c.add(Entry{
		Name: "devices", Title: "Device Status", Kind: chart.KindDonut,
		build: func() (*chart.Chart, error) {
			return chart.Donut(devices, chart.DonutOptions{Title: "Device Status", Size: cfg.GetDonutSize()})
		},
		html: func(r chart.HTMLRenderer) ([]byte, error) {
			return r.Donut("Device Status", devices)
		},
	})
	c.add(Entry{
		Name: "datasets", Title: "Dataset Types", Kind: chart.KindDonut,
		build: func() (*chart.Chart, error) {
			return chart.Donut(datasets, chart.DonutOptions{Title: "Dataset Types", Size: cfg.GetDonutSize()})
		},
		html: func(r chart.HTMLRenderer) ([]byte, error) {
			return r.Donut("Dataset Types", datasets)
		},
	})
	return c
}

func (c *Catalog) add(e Entry) {
	c.index[e.Name] = len(c.entries)
	c.entries = append(c.entries, e)
}

// Entries returns the charts in display order.
func (c *Catalog) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// Get returns the named chart.
func (c *Catalog) Get(name string) (Entry, bool) {
	i, ok := c.index[name]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}
