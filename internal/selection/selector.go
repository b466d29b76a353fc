// ABOUTME: Feature selection strategies: forest importance, ANOVA k-best, RFE
// ABOUTME: All return a mask, per-feature scores, and names in original order
package selection

import (
	"errors"
	"fmt"
)

// Result describes a completed selection over the original feature order.
type Result struct {
	// Mask marks which original features survive, in original order.
	Mask []bool
	// Scores holds the per-feature score (importance, F-statistic) or rank.
	Scores []float64
	// Selected lists surviving feature names in the same relative order as
	// the original list. This list permanently replaces the canonical list
	// inside a trained artifact.
	Selected []string
}

// Strategy ranks features against labels and keeps the top k.
type Strategy interface {
	Name() string
	Select(X [][]float64, y []int, names []string, k int) (*Result, error)
}

// New returns the named strategy. Valid methods are "importance", "kbest",
// and "rfe".
func New(method string, seed int64) (Strategy, error) {
	switch method {
	case "importance":
		return &importanceStrategy{seed: seed}, nil
	case "kbest":
		return &kbestStrategy{}, nil
	case "rfe":
		return &rfeStrategy{seed: seed}, nil
	}
	return nil, fmt.Errorf("unknown feature selection method %q", method)
}

func validate(X [][]float64, y []int, names []string, k int) error {
	if len(X) == 0 || len(X) != len(y) {
		return fmt.Errorf("selection: need equal non-zero sample and label counts, got %d and %d", len(X), len(y))
	}
	if len(names) == 0 || len(names) != len(X[0]) {
		return fmt.Errorf("selection: %d names for %d feature columns", len(names), len(X[0]))
	}
	if k <= 0 || k > len(names) {
		return fmt.Errorf("selection: k=%d outside 1..%d", k, len(names))
	}
	return nil
}

// maskFromTop builds a Result keeping the k highest-scoring features.
func maskFromTop(scores []float64, names []string, k int) *Result {
	idx := argsortDesc(scores)
	keep := make(map[int]bool, k)
	for _, i := range idx[:k] {
		keep[i] = true
	}

	res := &Result{
		Mask:   make([]bool, len(names)),
		Scores: append([]float64(nil), scores...),
	}
	for i, name := range names {
		if keep[i] {
			res.Mask[i] = true
			res.Selected = append(res.Selected, name)
		}
	}
	return res
}

// argsortDesc returns indices ordered by descending score; ties keep the
// earlier feature first so results stay deterministic.
func argsortDesc(scores []float64) []int {
	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	for i := 1; i < len(idx); i++ {
		for j := i; j > 0; j-- {
			a, b := idx[j-1], idx[j]
			if scores[b] > scores[a] {
				idx[j-1], idx[j] = b, a
			} else {
				break
			}
		}
	}
	return idx
}

// Apply narrows every sample to the masked columns.
func Apply(X [][]float64, mask []bool) ([][]float64, error) {
	if len(X) > 0 && len(X[0]) != len(mask) {
		return nil, errors.New("selection: mask width does not match samples")
	}
	out := make([][]float64, len(X))
	for i, row := range X {
		narrowed := make([]float64, 0, len(mask))
		for j, keep := range mask {
			if keep {
				narrowed = append(narrowed, row[j])
			}
		}
		out[i] = narrowed
	}
	return out, nil
}
