// ABOUTME: Classification metrics for trained models
// ABOUTME: Accuracy, per-class precision/recall/F1, and a confusion matrix
package trainer

import (
	"fmt"
	"math"
	"strings"

	"github.com/oralsmart/riskml/internal/models"
)

// Accuracy is the fraction of predictions that match the true label.
func Accuracy(yTrue, yPred []int) float64 {
	if len(yTrue) == 0 || len(yTrue) != len(yPred) {
		return 0
	}
	correct := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue))
}

// ConfusionMatrix returns counts[trueClass][predClass] over the three risk
// classes. Out-of-range labels are ignored.
func ConfusionMatrix(yTrue, yPred []int) [models.NumClasses][models.NumClasses]int {
	var m [models.NumClasses][models.NumClasses]int
	for i := range yTrue {
		t, p := yTrue[i], yPred[i]
		if t < 0 || t >= models.NumClasses || p < 0 || p >= models.NumClasses {
			continue
		}
		m[t][p]++
	}
	return m
}

// ClassMetrics holds per-class precision, recall, and F1.
type ClassMetrics struct {
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// ClassReport computes per-class metrics from a confusion matrix.
func ClassReport(m [models.NumClasses][models.NumClasses]int) [models.NumClasses]ClassMetrics {
	var out [models.NumClasses]ClassMetrics
	for c := 0; c < models.NumClasses; c++ {
		tp := m[c][c]
		var predicted, actual int
		for o := 0; o < models.NumClasses; o++ {
			predicted += m[o][c]
			actual += m[c][o]
		}
		cm := ClassMetrics{Support: actual}
		if predicted > 0 {
			cm.Precision = float64(tp) / float64(predicted)
		}
		if actual > 0 {
			cm.Recall = float64(tp) / float64(actual)
		}
		if cm.Precision+cm.Recall > 0 {
			cm.F1 = 2 * cm.Precision * cm.Recall / (cm.Precision + cm.Recall)
		}
		out[c] = cm
	}
	return out
}

// FormatReport renders the per-class metrics as an aligned text table in
// the familiar precision/recall/f1/support layout.
func FormatReport(m [models.NumClasses][models.NumClasses]int) string {
	report := ClassReport(m)
	labels := []string{"low", "medium", "high"}

	var b strings.Builder
	fmt.Fprintf(&b, "%-10s %9s %9s %9s %9s\n", "", "precision", "recall", "f1-score", "support")
	for c, label := range labels {
		r := report[c]
		fmt.Fprintf(&b, "%-10s %9.2f %9.2f %9.2f %9d\n", label, r.Precision, r.Recall, r.F1, r.Support)
	}
	return b.String()
}

// FormatConfusion renders the confusion matrix with labeled axes.
func FormatConfusion(m [models.NumClasses][models.NumClasses]int) string {
	labels := []string{"low", "medium", "high"}
	var b strings.Builder
	fmt.Fprintf(&b, "%-10s", "true\\pred")
	for _, l := range labels {
		fmt.Fprintf(&b, " %8s", l)
	}
	b.WriteByte('\n')
	for c, l := range labels {
		fmt.Fprintf(&b, "%-10s", l)
		for o := range labels {
			fmt.Fprintf(&b, " %8d", m[c][o])
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// CVStats summarizes per-fold scores from a cross-validation run.
type CVStats struct {
	Scores []float64
	Mean   float64
	Std    float64
	Min    float64
	Max    float64
}

// NewCVStats computes the summary over fold scores.
func NewCVStats(scores []float64) CVStats {
	s := CVStats{Scores: scores}
	if len(scores) == 0 {
		return s
	}
	s.Min, s.Max = scores[0], scores[0]
	var sum float64
	for _, v := range scores {
		sum += v
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	s.Mean = sum / float64(len(scores))

	var ss float64
	for _, v := range scores {
		d := v - s.Mean
		ss += d * d
	}
	// Population std, matching how CV scores are conventionally reported.
	s.Std = math.Sqrt(ss / float64(len(scores)))
	return s
}
