// Package mockdata holds the sample datasets the dashboard renders while no
// real training or inference backend is attached.
package mockdata

import (
	"math"
	"math/rand"

	"github.com/banshee-data/modelboard/internal/geom"
)

// Series colours.
const (
	Cyan   = "#06b6d4"
	Green  = "#10b981"
	Violet = "#8b5cf6"
	Amber  = "#f59e0b"
	Red    = "#ef4444"
)

// ClassificationMetrics are percentage scores with their release targets.
func ClassificationMetrics() []geom.Datum {
	return []geom.Datum{
		{Label: "Precision", Value: 94.5, Target: geom.Target(90), Color: Cyan},
		{Label: "Recall", Value: 93.8, Target: geom.Target(90), Color: Green},
		{Label: "F1-Score", Value: 94.1, Target: geom.Target(90), Color: Violet},
		{Label: "AUC-ROC", Value: 96.2, Target: geom.Target(95), Color: Amber},
		{Label: "Specificity", Value: 95.1, Target: geom.Target(92), Color: Red},
	}
}

// InferenceThroughput is inferences per second per edge device.
func InferenceThroughput() []geom.Datum {
	return []geom.Datum{
		{Label: "Raspberry Pi", Value: 22, Color: Cyan},
		{Label: "Jetson Orin", Value: 78, Color: Green},
		{Label: "VisionFive 2", Value: 15, Color: Violet},
		{Label: "AWS EC2", Value: 156, Color: Amber},
	}
}

// ResponseLatency is average response time in milliseconds per device.
func ResponseLatency() []geom.Datum {
	return []geom.Datum{
		{Label: "Raspberry Pi", Value: 45.3, Color: Cyan},
		{Label: "Jetson Orin", Value: 12.8, Color: Green},
		{Label: "VisionFive 2", Value: 67.2, Color: Violet},
		{Label: "AWS EC2", Value: 8.5, Color: Amber},
	}
}

// Values extracts the values of data in order.
func Values(data []geom.Datum) []float64 {
	out := make([]float64, len(data))
	for i, d := range data {
		out[i] = d.Value
	}
	return out
}

// BinaryConfusion is a two-class confusion matrix (row = actual).
func BinaryConfusion() (geom.Matrix, []string) {
	return geom.Matrix{
		{847, 23},
		{31, 899},
	}, []string{"Negative", "Positive"}
}

// DeviceStatus counts edge devices by connection state.
func DeviceStatus() []geom.Datum {
	return []geom.Datum{
		{Label: "Online", Value: 4, Color: Green},
		{Label: "Deploying", Value: 1, Color: Amber},
		{Label: "Offline", Value: 1, Color: Red},
	}
}

// DatasetTypes counts registered datasets by modality.
func DatasetTypes() []geom.Datum {
	return []geom.Datum{
		{Label: "Image", Value: 4, Color: Cyan},
		{Label: "Tabular", Value: 2, Color: Violet},
	}
}

// LearningCurves are per-epoch loss and accuracy for a training run.
type LearningCurves struct {
	Epochs    []int     `json:"epochs"`
	TrainLoss []float64 `json:"train_loss"`
	ValLoss   []float64 `json:"val_loss"`
	TrainAcc  []float64 `json:"train_acc"`
	ValAcc    []float64 `json:"val_acc"`
}

// DefaultEpochs is the length of the mock training run.
const DefaultEpochs = 50

// NewLearningCurves generates exponential-decay loss and saturating accuracy
// curves with uniform noise. The same seed yields the same curves.
func NewLearningCurves(epochs int, seed int64) LearningCurves {
	rng := rand.New(rand.NewSource(seed))
	noise := func(amplitude float64) float64 { return (rng.Float64() - 0.5) * amplitude }

	c := LearningCurves{
		Epochs:    make([]int, epochs),
		TrainLoss: make([]float64, epochs),
		ValLoss:   make([]float64, epochs),
		TrainAcc:  make([]float64, epochs),
		ValAcc:    make([]float64, epochs),
	}
	for i := range c.Epochs {
		c.Epochs[i] = i + 1
	}
	for i, e := range c.Epochs {
		c.TrainLoss[i] = math.Max(0.05, 2.5*math.Exp(-float64(e)/15)+0.1+noise(0.1))
	}
	for i, e := range c.Epochs {
		c.ValLoss[i] = math.Max(0.08, 2.8*math.Exp(-float64(e)/18)+0.15+noise(0.15))
	}
	for i, e := range c.Epochs {
		c.TrainAcc[i] = clamp(95*(1-math.Exp(-float64(e)/12))+30+noise(2), 30, 98)
	}
	for i, e := range c.Epochs {
		c.ValAcc[i] = clamp(92*(1-math.Exp(-float64(e)/14))+28+noise(3), 25, 95)
	}
	return c
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
