// ABOUTME: Random forest of CART trees used for importance ranking and RFE
// ABOUTME: Impurity-based importances, bootstrap sampling, sqrt feature subsets
package selection

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// Forest is a random-forest classifier. It exists to score features, so the
// surface is Fit plus importances; prediction is majority vote over trees.
type Forest struct {
	NTrees          int
	MinSamplesSplit int
	MaxDepth        int // 0 means unlimited
	Seed            int64

	trees       []*treeNode
	importances []float64
	nClasses    int
}

// NewForest returns a forest with production defaults (100 trees).
func NewForest(seed int64) *Forest {
	return &Forest{NTrees: 100, MinSamplesSplit: 2, Seed: seed}
}

type treeNode struct {
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
	leafClass int
	leaf      bool
}

// Fit grows the forest on bootstrap samples.
func (f *Forest) Fit(X [][]float64, y []int) error {
	if len(X) == 0 || len(X) != len(y) {
		return fmt.Errorf("forest: need equal non-zero sample and label counts, got %d and %d", len(X), len(y))
	}
	nFeatures := len(X[0])
	f.nClasses = 0
	for _, label := range y {
		if label+1 > f.nClasses {
			f.nClasses = label + 1
		}
	}

	rng := rand.New(rand.NewSource(f.Seed))
	mtry := int(math.Max(1, math.Round(math.Sqrt(float64(nFeatures)))))

	f.trees = make([]*treeNode, 0, f.NTrees)
	f.importances = make([]float64, nFeatures)

	for t := 0; t < f.NTrees; t++ {
		indices := make([]int, len(X))
		for i := range indices {
			indices[i] = rng.Intn(len(X))
		}
		treeImp := make([]float64, nFeatures)
		root := f.grow(X, y, indices, mtry, 0, rng, treeImp)
		f.trees = append(f.trees, root)

		// Normalize per tree so every tree votes equally on importance.
		total := 0.0
		for _, v := range treeImp {
			total += v
		}
		if total > 0 {
			for j, v := range treeImp {
				f.importances[j] += v / total
			}
		}
	}

	total := 0.0
	for _, v := range f.importances {
		total += v
	}
	if total > 0 {
		for j := range f.importances {
			f.importances[j] /= total
		}
	}
	return nil
}

// FeatureImportances returns normalized mean impurity decrease per feature.
func (f *Forest) FeatureImportances() []float64 {
	out := make([]float64, len(f.importances))
	copy(out, f.importances)
	return out
}

// Predict returns the majority-vote class for each sample.
func (f *Forest) Predict(X [][]float64) ([]int, error) {
	if len(f.trees) == 0 {
		return nil, fmt.Errorf("forest: not fitted")
	}
	out := make([]int, len(X))
	for i, row := range X {
		votes := make([]int, f.nClasses)
		for _, tree := range f.trees {
			votes[classify(tree, row)]++
		}
		best := 0
		for c, v := range votes {
			if v > votes[best] {
				best = c
			}
		}
		out[i] = best
	}
	return out, nil
}

func classify(node *treeNode, row []float64) int {
	for !node.leaf {
		if row[node.feature] <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node.leafClass
}

// grow builds one subtree, accumulating weighted impurity decreases into imp.
func (f *Forest) grow(X [][]float64, y []int, indices []int, mtry, depth int, rng *rand.Rand, imp []float64) *treeNode {
	counts := make([]int, f.nClasses)
	for _, i := range indices {
		counts[y[i]]++
	}
	majority, pure := majorityClass(counts, len(indices))

	if pure || len(indices) < f.MinSamplesSplit || (f.MaxDepth > 0 && depth >= f.MaxDepth) {
		return &treeNode{leaf: true, leafClass: majority}
	}

	nodeImpurity := gini(counts, len(indices))
	feature, threshold, gain := f.bestSplit(X, y, indices, mtry, nodeImpurity, rng)
	if gain <= 0 {
		return &treeNode{leaf: true, leafClass: majority}
	}

	var left, right []int
	for _, i := range indices {
		if X[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return &treeNode{leaf: true, leafClass: majority}
	}

	imp[feature] += float64(len(indices)) * gain

	return &treeNode{
		feature:   feature,
		threshold: threshold,
		left:      f.grow(X, y, left, mtry, depth+1, rng, imp),
		right:     f.grow(X, y, right, mtry, depth+1, rng, imp),
	}
}

// bestSplit scans mtry random features for the split with the largest
// impurity decrease.
func (f *Forest) bestSplit(X [][]float64, y []int, indices []int, mtry int, nodeImpurity float64, rng *rand.Rand) (feature int, threshold, gain float64) {
	nFeatures := len(X[0])
	candidates := rng.Perm(nFeatures)[:mtry]
	feature = -1

	type pair struct {
		value float64
		label int
	}
	pairs := make([]pair, len(indices))

	for _, j := range candidates {
		for p, i := range indices {
			pairs[p] = pair{X[i][j], y[i]}
		}
		sort.Slice(pairs, func(a, b int) bool { return pairs[a].value < pairs[b].value })

		leftCounts := make([]int, f.nClasses)
		rightCounts := make([]int, f.nClasses)
		for _, pr := range pairs {
			rightCounts[pr.label]++
		}

		n := len(pairs)
		for p := 0; p < n-1; p++ {
			leftCounts[pairs[p].label]++
			rightCounts[pairs[p].label]--
			if pairs[p].value == pairs[p+1].value {
				continue
			}
			nLeft, nRight := p+1, n-p-1
			split := nodeImpurity -
				float64(nLeft)/float64(n)*gini(leftCounts, nLeft) -
				float64(nRight)/float64(n)*gini(rightCounts, nRight)
			if split > gain {
				gain = split
				feature = j
				threshold = (pairs[p].value + pairs[p+1].value) / 2
			}
		}
	}
	return feature, threshold, gain
}

func gini(counts []int, n int) float64 {
	if n == 0 {
		return 0
	}
	g := 1.0
	for _, c := range counts {
		p := float64(c) / float64(n)
		g -= p * p
	}
	return g
}

func majorityClass(counts []int, n int) (class int, pure bool) {
	for c, v := range counts {
		if v > counts[class] {
			class = c
		}
	}
	return class, counts[class] == n
}
