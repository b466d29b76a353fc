// ABOUTME: "importance" strategy ranks features by random-forest impurity decrease
// ABOUTME: Keeps the top-k features by mean decrease in gini impurity
package selection

type importanceStrategy struct {
	seed int64
	// NTrees overrides the forest size when non-zero; tests use small forests.
	NTrees int
}

func (s *importanceStrategy) Name() string { return "importance" }

func (s *importanceStrategy) Select(X [][]float64, y []int, names []string, k int) (*Result, error) {
	if err := validate(X, y, names, k); err != nil {
		return nil, err
	}
	forest := NewForest(s.seed)
	if s.NTrees > 0 {
		forest.NTrees = s.NTrees
	}
	if err := forest.Fit(X, y); err != nil {
		return nil, err
	}
	return maskFromTop(forest.FeatureImportances(), names, k), nil
}
