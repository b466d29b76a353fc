// ABOUTME: Tests for the three feature selection strategies
// ABOUTME: Uses data where two columns carry all the signal
package selection

import (
	"math/rand"
	"testing"
)

// signalData builds samples where columns 0 and 2 determine the class and the
// remaining columns are noise.
func signalData(n int, seed int64) ([][]float64, []int, []string) {
	rng := rand.New(rand.NewSource(seed))
	names := []string{"signal_a", "noise_1", "signal_b", "noise_2", "noise_3"}
	var X [][]float64
	var y []int
	for i := 0; i < n; i++ {
		class := i % 3
		row := []float64{
			float64(class) * 4,
			rng.Float64(),
			float64(class) * -3,
			rng.Float64(),
			rng.Float64(),
		}
		X = append(X, row)
		y = append(y, class)
	}
	return X, y, names
}

func TestNew_UnknownMethod(t *testing.T) {
	if _, err := New("pca", 42); err == nil {
		t.Error("New(\"pca\") should error")
	}
}

func TestStrategies_Invariants(t *testing.T) {
	X, y, names := signalData(90, 42)

	for _, method := range []string{"importance", "kbest", "rfe"} {
		t.Run(method, func(t *testing.T) {
			strategy, err := New(method, 42)
			if err != nil {
				t.Fatalf("New(%q) error = %v", method, err)
			}
			// Shrink the forests to keep the test fast.
			switch s := strategy.(type) {
			case *importanceStrategy:
				s.NTrees = 15
			case *rfeStrategy:
				s.NTrees = 10
			}

			k := 2
			res, err := strategy.Select(X, y, names, k)
			if err != nil {
				t.Fatalf("Select() error = %v", err)
			}

			if len(res.Selected) != k {
				t.Errorf("len(Selected) = %d, want %d", len(res.Selected), k)
			}
			if len(res.Mask) != len(names) {
				t.Errorf("len(Mask) = %d, want %d", len(res.Mask), len(names))
			}
			if len(res.Scores) != len(names) {
				t.Errorf("len(Scores) = %d, want %d", len(res.Scores), len(names))
			}

			masked := 0
			for _, keep := range res.Mask {
				if keep {
					masked++
				}
			}
			if masked != k {
				t.Errorf("mask keeps %d features, want %d", masked, k)
			}

			// Selected names are members of the original list, in original
			// relative order.
			pos := -1
			for _, sel := range res.Selected {
				found := -1
				for i, name := range names {
					if name == sel {
						found = i
						break
					}
				}
				if found < 0 {
					t.Errorf("selected %q is not an original feature", sel)
					continue
				}
				if found < pos {
					t.Errorf("selected names out of original order: %v", res.Selected)
				}
				pos = found
			}

			// The constructed signal columns must win.
			want := map[string]bool{"signal_a": true, "signal_b": true}
			for _, sel := range res.Selected {
				if !want[sel] {
					t.Errorf("%s selected noise column %q over a signal column", method, sel)
				}
			}
		})
	}
}

func TestSelect_BadK(t *testing.T) {
	X, y, names := signalData(30, 1)
	strategy, _ := New("kbest", 0)

	for _, k := range []int{0, -1, len(names) + 1} {
		if _, err := strategy.Select(X, y, names, k); err == nil {
			t.Errorf("Select() with k=%d should error", k)
		}
	}
}

func TestApply_NarrowsColumns(t *testing.T) {
	X := [][]float64{{1, 2, 3}, {4, 5, 6}}
	out, err := Apply(X, []bool{true, false, true})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if len(out[0]) != 2 || out[0][0] != 1 || out[0][1] != 3 || out[1][1] != 6 {
		t.Errorf("Apply() = %v, want [[1 3] [4 6]]", out)
	}
}

func TestForest_PredictsSeparableData(t *testing.T) {
	X, y, _ := signalData(90, 7)
	forest := NewForest(7)
	forest.NTrees = 15
	if err := forest.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	preds, err := forest.Predict(X)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	correct := 0
	for i, p := range preds {
		if p == y[i] {
			correct++
		}
	}
	if acc := float64(correct) / float64(len(y)); acc < 0.95 {
		t.Errorf("forest training accuracy = %v, want >= 0.95", acc)
	}
}

func TestForest_ImportancesNormalized(t *testing.T) {
	X, y, _ := signalData(60, 9)
	forest := NewForest(9)
	forest.NTrees = 15
	if err := forest.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	sum := 0.0
	for _, v := range forest.FeatureImportances() {
		if v < 0 {
			t.Errorf("negative importance %v", v)
		}
		sum += v
	}
	if sum < 0.999 || sum > 1.001 {
		t.Errorf("importances sum to %v, want ~1", sum)
	}
}
