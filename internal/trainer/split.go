// ABOUTME: Stratified train/test splitting and stratified k-fold generation
// ABOUTME: Class proportions survive every split; order is seed-deterministic
package trainer

import (
	"fmt"
	"math/rand"
	"sort"
)

// StratifiedSplit partitions sample indices into train and test sets while
// keeping each class's proportion close to the full dataset. Each class
// contributes at least one test sample when it has two or more members.
func StratifiedSplit(y []int, testFraction float64, seed int64) (trainIdx, testIdx []int, err error) {
	if len(y) == 0 {
		return nil, nil, fmt.Errorf("stratified split: no samples")
	}
	if testFraction <= 0 || testFraction >= 1 {
		return nil, nil, fmt.Errorf("stratified split: test fraction %v out of (0,1)", testFraction)
	}

	rng := rand.New(rand.NewSource(seed))
	for _, class := range sortedClasses(y) {
		idx := classIndices(y, class)
		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

		nTest := int(float64(len(idx)) * testFraction)
		if nTest == 0 && len(idx) > 1 {
			nTest = 1
		}
		testIdx = append(testIdx, idx[:nTest]...)
		trainIdx = append(trainIdx, idx[nTest:]...)
	}

	rng.Shuffle(len(trainIdx), func(i, j int) { trainIdx[i], trainIdx[j] = trainIdx[j], trainIdx[i] })
	rng.Shuffle(len(testIdx), func(i, j int) { testIdx[i], testIdx[j] = testIdx[j], testIdx[i] })
	if len(trainIdx) == 0 {
		return nil, nil, fmt.Errorf("stratified split: no training samples left")
	}
	return trainIdx, testIdx, nil
}

// Fold is one train/validate partition of a k-fold run.
type Fold struct {
	TrainIdx []int
	TestIdx  []int
}

// StratifiedKFold produces k folds where each fold's test set preserves the
// overall class balance. Every class must have at least k members.
func StratifiedKFold(y []int, k int, seed int64) ([]Fold, error) {
	if k < 2 {
		return nil, fmt.Errorf("stratified k-fold: need at least 2 folds, got %d", k)
	}
	rng := rand.New(rand.NewSource(seed))

	// Assign each sample to a fold, round-robin within its class.
	assignment := make([]int, len(y))
	for _, class := range sortedClasses(y) {
		idx := classIndices(y, class)
		if len(idx) < k {
			return nil, fmt.Errorf("stratified k-fold: class %d has %d samples, need %d", class, len(idx), k)
		}
		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
		for pos, sample := range idx {
			assignment[sample] = pos % k
		}
	}

	folds := make([]Fold, k)
	for sample, fold := range assignment {
		for f := range folds {
			if f == fold {
				folds[f].TestIdx = append(folds[f].TestIdx, sample)
			} else {
				folds[f].TrainIdx = append(folds[f].TrainIdx, sample)
			}
		}
	}
	return folds, nil
}

// Subset materializes the rows and labels named by idx.
func Subset(X [][]float64, y []int, idx []int) ([][]float64, []int) {
	subX := make([][]float64, len(idx))
	subY := make([]int, len(idx))
	for i, j := range idx {
		subX[i] = X[j]
		subY[i] = y[j]
	}
	return subX, subY
}

func sortedClasses(y []int) []int {
	seen := map[int]bool{}
	var classes []int
	for _, v := range y {
		if !seen[v] {
			seen[v] = true
			classes = append(classes, v)
		}
	}
	sort.Ints(classes)
	return classes
}

func classIndices(y []int, class int) []int {
	var idx []int
	for i, v := range y {
		if v == class {
			idx = append(idx, i)
		}
	}
	return idx
}
