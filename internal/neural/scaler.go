// ABOUTME: StandardScaler normalizes features to zero mean and unit variance
// ABOUTME: Fitted on the training split only; the same transform serves test and inference
package neural

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// StandardScaler stores per-feature mean and standard deviation.
// Fields are exported for serialization.
type StandardScaler struct {
	Mean []float64
	Std  []float64
}

// NewStandardScaler returns an unfitted scaler.
func NewStandardScaler() *StandardScaler { return &StandardScaler{} }

// Fitted reports whether the scaler has statistics.
func (s *StandardScaler) Fitted() bool { return len(s.Mean) > 0 }

// Fit computes per-column mean and population standard deviation.
// Constant columns get a standard deviation of 1 so they pass through.
func (s *StandardScaler) Fit(X [][]float64) error {
	if len(X) == 0 {
		return errors.New("scaler: no samples")
	}
	nFeatures := len(X[0])
	s.Mean = make([]float64, nFeatures)
	s.Std = make([]float64, nFeatures)

	column := make([]float64, len(X))
	for j := 0; j < nFeatures; j++ {
		for i, row := range X {
			column[i] = row[j]
		}
		s.Mean[j] = stat.Mean(column, nil)
		std := stat.PopStdDev(column, nil)
		if std == 0 {
			std = 1
		}
		s.Std[j] = std
	}
	return nil
}

// Transform returns scaled copies of the samples.
func (s *StandardScaler) Transform(X [][]float64) ([][]float64, error) {
	if !s.Fitted() {
		return nil, errors.New("scaler: not fitted")
	}
	out := make([][]float64, len(X))
	for i, row := range X {
		if len(row) != len(s.Mean) {
			return nil, fmt.Errorf("scaler: sample has %d features, scaler expects %d", len(row), len(s.Mean))
		}
		scaled := make([]float64, len(row))
		for j, v := range row {
			scaled[j] = (v - s.Mean[j]) / s.Std[j]
		}
		out[i] = scaled
	}
	return out, nil
}

// FitTransform fits on X and returns the scaled samples.
func (s *StandardScaler) FitTransform(X [][]float64) ([][]float64, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}
