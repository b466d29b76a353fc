// ABOUTME: "kbest" strategy ranks features by one-way ANOVA F-statistic
// ABOUTME: Matches SelectKBest(f_classif): between/within group variance ratio
package selection

type kbestStrategy struct{}

func (s *kbestStrategy) Name() string { return "kbest" }

func (s *kbestStrategy) Select(X [][]float64, y []int, names []string, k int) (*Result, error) {
	if err := validate(X, y, names, k); err != nil {
		return nil, err
	}
	scores := make([]float64, len(names))
	for j := range names {
		column := make([]float64, len(X))
		for i, row := range X {
			column[i] = row[j]
		}
		scores[j] = fStatistic(column, y)
	}
	return maskFromTop(scores, names, k), nil
}

// fStatistic computes the one-way ANOVA F value of a feature column against
// the class labels. Degenerate columns (constant within every class, or a
// single class) score 0.
func fStatistic(column []float64, y []int) float64 {
	groups := make(map[int][]float64)
	for i, v := range column {
		groups[y[i]] = append(groups[y[i]], v)
	}
	k := len(groups)
	n := len(column)
	if k < 2 || n <= k {
		return 0
	}

	grand := 0.0
	for _, v := range column {
		grand += v
	}
	grand /= float64(n)

	ssBetween := 0.0
	ssWithin := 0.0
	for _, vals := range groups {
		mean := 0.0
		for _, v := range vals {
			mean += v
		}
		mean /= float64(len(vals))
		ssBetween += float64(len(vals)) * (mean - grand) * (mean - grand)
		for _, v := range vals {
			ssWithin += (v - mean) * (v - mean)
		}
	}
	if ssWithin == 0 {
		return 0
	}
	return (ssBetween / float64(k-1)) / (ssWithin / float64(n-k))
}
