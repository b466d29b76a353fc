// ABOUTME: Hyperparameter grid search over the MLP configuration space
// ABOUTME: Candidates scored by stratified k-fold accuracy, folds run in parallel
package trainer

import (
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/oralsmart/riskml/internal/neural"
)

// Grid defines the hyperparameter search space. Field names match the YAML
// override file accepted by the train command.
type Grid struct {
	HiddenLayerSizes [][]int   `yaml:"hidden_layer_sizes"`
	Alpha            []float64 `yaml:"alpha"`
	LearningRateInit []float64 `yaml:"learning_rate_init"`
	Activation       []string  `yaml:"activation"`
}

// DefaultGrid is the production search space: 24 candidates.
func DefaultGrid() Grid {
	return Grid{
		HiddenLayerSizes: [][]int{{64, 32}, {100, 50}, {64, 32, 16}},
		Alpha:            []float64{0.001, 0.01},
		LearningRateInit: []float64{0.001, 0.01},
		Activation:       []string{"relu", "tanh"},
	}
}

// LoadGrid reads a YAML grid file. Dimensions left empty in the file fall
// back to the default space.
func LoadGrid(path string) (Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Grid{}, fmt.Errorf("reading grid file: %w", err)
	}
	var g Grid
	if err := yaml.Unmarshal(data, &g); err != nil {
		return Grid{}, fmt.Errorf("parsing grid file: %w", err)
	}
	def := DefaultGrid()
	if len(g.HiddenLayerSizes) == 0 {
		g.HiddenLayerSizes = def.HiddenLayerSizes
	}
	if len(g.Alpha) == 0 {
		g.Alpha = def.Alpha
	}
	if len(g.LearningRateInit) == 0 {
		g.LearningRateInit = def.LearningRateInit
	}
	if len(g.Activation) == 0 {
		g.Activation = def.Activation
	}
	return g, nil
}

// Candidates expands the grid into concrete configs, base supplying the
// parameters the grid does not vary.
func (g Grid) Candidates(base neural.Config) []neural.Config {
	var out []neural.Config
	for _, hidden := range g.HiddenLayerSizes {
		for _, alpha := range g.Alpha {
			for _, lr := range g.LearningRateInit {
				for _, act := range g.Activation {
					cfg := base
					cfg.HiddenLayerSizes = append([]int(nil), hidden...)
					cfg.Alpha = alpha
					cfg.LearningRateInit = lr
					cfg.Activation = neural.Activation(act)
					out = append(out, cfg)
				}
			}
		}
	}
	return out
}

// SearchResult reports the winning configuration and its CV score.
type SearchResult struct {
	Best      neural.Config
	BestScore float64
	Evaluated int
}

// GridSearch evaluates every candidate with stratified k-fold CV and keeps
// the one with the highest mean accuracy. Ties go to the earlier candidate
// so the result is deterministic.
func GridSearch(X [][]float64, y []int, grid Grid, base neural.Config, folds int, engine neural.Engine) (*SearchResult, error) {
	candidates := grid.Candidates(base)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("grid search: empty search space")
	}
	kfolds, err := StratifiedKFold(y, folds, base.Seed)
	if err != nil {
		return nil, fmt.Errorf("grid search: %w", err)
	}

	// Each goroutine writes its own slot, no locking needed.
	scores := make([]float64, len(candidates))
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	for i, cfg := range candidates {
		i, cfg := i, cfg
		g.Go(func() error {
			score, err := crossValidate(X, y, cfg, kfolds, engine)
			if err != nil {
				return err
			}
			scores[i] = score
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("grid search: %w", err)
	}

	best := 0
	for i, s := range scores {
		if s > scores[best] {
			best = i
		}
	}
	return &SearchResult{
		Best:      candidates[best],
		BestScore: scores[best],
		Evaluated: len(candidates),
	}, nil
}

// CrossValidate runs stratified k-fold CV with the given config and returns
// per-fold accuracies.
func CrossValidate(X [][]float64, y []int, cfg neural.Config, folds int, engine neural.Engine) (CVStats, error) {
	kfolds, err := StratifiedKFold(y, folds, cfg.Seed)
	if err != nil {
		return CVStats{}, err
	}
	scores := make([]float64, len(kfolds))
	for i, fold := range kfolds {
		trainX, trainY := Subset(X, y, fold.TrainIdx)
		testX, testY := Subset(X, y, fold.TestIdx)

		clf := neural.NewMLP(cfg, engine)
		if err := clf.Fit(trainX, trainY); err != nil {
			return CVStats{}, fmt.Errorf("fold %d: %w", i, err)
		}
		pred, err := clf.Predict(testX)
		if err != nil {
			return CVStats{}, fmt.Errorf("fold %d: %w", i, err)
		}
		scores[i] = Accuracy(testY, pred)
	}
	return NewCVStats(scores), nil
}

func crossValidate(X [][]float64, y []int, cfg neural.Config, kfolds []Fold, engine neural.Engine) (float64, error) {
	var sum float64
	for i, fold := range kfolds {
		trainX, trainY := Subset(X, y, fold.TrainIdx)
		testX, testY := Subset(X, y, fold.TestIdx)

		clf := neural.NewMLP(cfg, engine)
		if err := clf.Fit(trainX, trainY); err != nil {
			return 0, fmt.Errorf("fold %d: %w", i, err)
		}
		pred, err := clf.Predict(testX)
		if err != nil {
			return 0, fmt.Errorf("fold %d: %w", i, err)
		}
		sum += Accuracy(testY, pred)
	}
	return sum / float64(len(kfolds)), nil
}
