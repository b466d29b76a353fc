// ABOUTME: "rfe" strategy eliminates features recursively with a forest estimator
// ABOUTME: Drops the weakest feature per round until k survivors remain
package selection

type rfeStrategy struct {
	seed int64
	// NTrees sizes the estimator forest for each elimination round; RFE
	// refits many times, so it defaults smaller than the importance forest.
	NTrees int
}

func (s *rfeStrategy) Name() string { return "rfe" }

func (s *rfeStrategy) Select(X [][]float64, y []int, names []string, k int) (*Result, error) {
	if err := validate(X, y, names, k); err != nil {
		return nil, err
	}

	nTrees := s.NTrees
	if nTrees == 0 {
		nTrees = 25
	}

	remaining := make([]bool, len(names))
	for i := range remaining {
		remaining[i] = true
	}
	nRemaining := len(names)

	// ranks[j] records the elimination round, 1 meaning "survived to the end".
	ranks := make([]float64, len(names))
	for i := range ranks {
		ranks[i] = 1
	}
	round := float64(len(names) - k + 1)

	for nRemaining > k {
		narrowed, err := Apply(X, remaining)
		if err != nil {
			return nil, err
		}
		forest := NewForest(s.seed)
		forest.NTrees = nTrees
		if err := forest.Fit(narrowed, y); err != nil {
			return nil, err
		}
		importances := forest.FeatureImportances()

		// Map the weakest narrowed column back to its original index.
		weakestNarrowed := 0
		for j, v := range importances {
			if v < importances[weakestNarrowed] {
				weakestNarrowed = j
			}
		}
		narrowedIdx := 0
		for orig, keep := range remaining {
			if !keep {
				continue
			}
			if narrowedIdx == weakestNarrowed {
				remaining[orig] = false
				ranks[orig] = round
				break
			}
			narrowedIdx++
		}
		round--
		nRemaining--
	}

	res := &Result{Mask: remaining, Scores: ranks}
	for i, name := range names {
		if remaining[i] {
			res.Selected = append(res.Selected, name)
		}
	}
	return res, nil
}
