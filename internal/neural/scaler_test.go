// ABOUTME: Tests for the standard scaler
// ABOUTME: Verifies zero-mean/unit-variance output and error cases
package neural

import (
	"math"
	"testing"
)

func TestStandardScaler_FitTransform(t *testing.T) {
	X := [][]float64{
		{1, 10, 5},
		{2, 20, 5},
		{3, 30, 5},
		{4, 40, 5},
	}
	scaler := NewStandardScaler()
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}

	for j := 0; j < 2; j++ {
		sum := 0.0
		for _, row := range scaled {
			sum += row[j]
		}
		if math.Abs(sum/float64(len(scaled))) > 1e-9 {
			t.Errorf("column %d mean = %v, want ~0", j, sum/float64(len(scaled)))
		}
	}

	// Constant columns pass through as zeros instead of dividing by zero.
	for i, row := range scaled {
		if row[2] != 0 {
			t.Errorf("constant column row %d = %v, want 0", i, row[2])
		}
	}
}

func TestStandardScaler_PopulationStd(t *testing.T) {
	// {1,2,3,4}: population std is sqrt(1.25), not the sample sqrt(5/3).
	scaler := NewStandardScaler()
	if err := scaler.Fit([][]float64{{1}, {2}, {3}, {4}}); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if math.Abs(scaler.Mean[0]-2.5) > 1e-12 {
		t.Errorf("Mean = %v, want 2.5", scaler.Mean[0])
	}
	want := math.Sqrt(1.25)
	if math.Abs(scaler.Std[0]-want) > 1e-12 {
		t.Errorf("Std = %v, want %v", scaler.Std[0], want)
	}
}

func TestStandardScaler_SingleSample(t *testing.T) {
	scaler := NewStandardScaler()
	if err := scaler.Fit([][]float64{{3, 7}}); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	scaled, err := scaler.Transform([][]float64{{3, 7}})
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	for j, v := range scaled[0] {
		if v != 0 {
			t.Errorf("column %d = %v, want 0", j, v)
		}
	}
}

func TestStandardScaler_TransformBeforeFit(t *testing.T) {
	scaler := NewStandardScaler()
	if _, err := scaler.Transform([][]float64{{1}}); err == nil {
		t.Error("Transform() before Fit() should error")
	}
}

func TestStandardScaler_WidthMismatch(t *testing.T) {
	scaler := NewStandardScaler()
	if err := scaler.Fit([][]float64{{1, 2}, {3, 4}}); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if _, err := scaler.Transform([][]float64{{1, 2, 3}}); err == nil {
		t.Error("Transform() with extra features should error")
	}
}

func TestStandardScaler_NoSamples(t *testing.T) {
	scaler := NewStandardScaler()
	if err := scaler.Fit(nil); err == nil {
		t.Error("Fit() with no samples should error")
	}
}
