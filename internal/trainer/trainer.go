// ABOUTME: End-to-end training pipeline from labeled CSV to saved artifacts
// ABOUTME: Split, optional selection and tuning, fit, evaluate, persist
package trainer

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/oralsmart/riskml/internal/artifacts"
	"github.com/oralsmart/riskml/internal/dataset"
	"github.com/oralsmart/riskml/internal/features"
	"github.com/oralsmart/riskml/internal/models"
	"github.com/oralsmart/riskml/internal/neural"
	"github.com/oralsmart/riskml/internal/selection"
)

// Options configure one training run.
type Options struct {
	TargetColumn        string
	UseFeatureSelection bool
	SelectionMethod     string // importance, kbest, rfe
	TopFeatures         int
	UseTuning           bool
	Grid                Grid
	CVFolds             int // final cross-validation folds, 0 disables
	TuneFolds           int
	TestFraction        float64
	Config              neural.Config
	Verbose             bool
}

// DefaultOptions mirrors the production training setup.
func DefaultOptions() Options {
	return Options{
		TargetColumn:    "risk_level",
		SelectionMethod: "importance",
		TopFeatures:     20,
		Grid:            DefaultGrid(),
		CVFolds:         5,
		TuneFolds:       3,
		TestFraction:    0.2,
		Config:          neural.DefaultConfig(),
	}
}

// Report collects everything a training run learned about itself.
type Report struct {
	RunID            string
	TrainAccuracy    float64
	TestAccuracy     float64
	Confusion        [models.NumClasses][models.NumClasses]int
	CV               *CVStats
	SelectedFeatures []string
	FeatureScores    []models.FeatureWeight
	BestConfig       neural.Config
	TunedScore       float64
	Tuned            bool
	NIter            int
	Loss             float64
	Samples          int
	MissingColumns   []string
	Duration         time.Duration
}

// Trainer wires the pipeline stages together.
type Trainer struct {
	Engine neural.Engine
	Store  *artifacts.Store
	Logf   func(format string, args ...interface{})
}

func New(engine neural.Engine, store *artifacts.Store) *Trainer {
	return &Trainer{Engine: engine, Store: store, Logf: log.Printf}
}

func (t *Trainer) logf(verbose bool, format string, args ...interface{}) {
	if verbose && t.Logf != nil {
		t.Logf(format, args...)
	}
}

// TrainCSV runs the full pipeline on a labeled CSV and saves the resulting
// artifact set.
func (t *Trainer) TrainCSV(path string, opts Options) (*Report, error) {
	if opts.TargetColumn == "" {
		opts.TargetColumn = "risk_level"
	}
	table, err := dataset.Load(path, features.CanonicalNames(), opts.TargetColumn)
	if err != nil {
		return nil, fmt.Errorf("loading training data: %w", err)
	}
	return t.Train(table, opts)
}

// Train runs the pipeline on an already-loaded table.
func (t *Trainer) Train(table *dataset.Table, opts Options) (*Report, error) {
	start := time.Now()
	if len(table.Features) < 10 {
		return nil, fmt.Errorf("training requires at least 10 samples, got %d", len(table.Features))
	}
	if opts.TestFraction == 0 {
		opts.TestFraction = 0.2
	}
	if opts.TuneFolds == 0 {
		opts.TuneFolds = 3
	}
	cfg := opts.Config
	if len(cfg.HiddenLayerSizes) == 0 {
		cfg = neural.DefaultConfig()
	}

	report := &Report{
		RunID:          uuid.NewString(),
		Samples:        len(table.Features),
		MissingColumns: table.MissingColumns,
	}

	X := table.Features
	names := table.FeatureNames

	// Feature selection runs on the raw features before scaling, so the
	// chosen columns apply to anything the predictor will encode later.
	if opts.UseFeatureSelection {
		strategy, err := selection.New(opts.SelectionMethod, cfg.Seed)
		if err != nil {
			return nil, err
		}
		k := opts.TopFeatures
		if k <= 0 || k > len(names) {
			k = len(names)
		}
		t.logf(opts.Verbose, "selecting top %d features with %s", k, opts.SelectionMethod)
		res, err := strategy.Select(X, table.Labels, names, k)
		if err != nil {
			return nil, fmt.Errorf("feature selection: %w", err)
		}
		X, err = selection.Apply(X, res.Mask)
		if err != nil {
			return nil, fmt.Errorf("feature selection: %w", err)
		}
		names = res.Selected
		report.SelectedFeatures = res.Selected
		for i, name := range table.FeatureNames {
			if res.Mask[i] {
				report.FeatureScores = append(report.FeatureScores, models.FeatureWeight{
					Name:  name,
					Score: res.Scores[i],
				})
			}
		}
	}

	trainIdx, testIdx, err := StratifiedSplit(table.Labels, opts.TestFraction, cfg.Seed)
	if err != nil {
		return nil, err
	}
	trainX, trainY := Subset(X, table.Labels, trainIdx)
	testX, testY := Subset(X, table.Labels, testIdx)

	scaler := neural.NewStandardScaler()
	scaledTrain, err := scaler.FitTransform(trainX)
	if err != nil {
		return nil, fmt.Errorf("scaling training data: %w", err)
	}
	scaledTest, err := scaler.Transform(testX)
	if err != nil {
		return nil, fmt.Errorf("scaling test data: %w", err)
	}

	if opts.UseTuning {
		t.logf(opts.Verbose, "grid search over %d folds", opts.TuneFolds)
		result, err := GridSearch(scaledTrain, trainY, opts.Grid, cfg, opts.TuneFolds, t.Engine)
		if err != nil {
			return nil, err
		}
		cfg = result.Best
		report.Tuned = true
		report.TunedScore = result.BestScore
		t.logf(opts.Verbose, "best candidate scored %.4f over %d evaluated", result.BestScore, result.Evaluated)
	}
	report.BestConfig = cfg

	clf := neural.NewMLP(cfg, t.Engine)
	if err := clf.Fit(scaledTrain, trainY); err != nil {
		return nil, fmt.Errorf("fitting model: %w", err)
	}
	report.NIter = clf.NIter()
	report.Loss = clf.Loss()

	trainPred, err := clf.Predict(scaledTrain)
	if err != nil {
		return nil, err
	}
	testPred, err := clf.Predict(scaledTest)
	if err != nil {
		return nil, err
	}
	report.TrainAccuracy = Accuracy(trainY, trainPred)
	report.TestAccuracy = Accuracy(testY, testPred)
	report.Confusion = ConfusionMatrix(testY, testPred)

	if opts.CVFolds >= 2 {
		t.logf(opts.Verbose, "cross-validating with %d folds", opts.CVFolds)
		// CV scores only the training split; test rows stay held out.
		stats, err := CrossValidate(scaledTrain, trainY, cfg, opts.CVFolds, t.Engine)
		if err != nil {
			return nil, fmt.Errorf("cross-validation: %w", err)
		}
		report.CV = &stats
	}

	if t.Store != nil {
		snap, err := clf.Snapshot()
		if err != nil {
			return nil, err
		}
		meta := artifacts.Metadata{
			RunID:         report.RunID,
			TrainedAt:     time.Now().UTC(),
			ModelType:     "mlp",
			Engine:        clf.EngineName(),
			FeatureCount:  len(names),
			TrainAccuracy: report.TrainAccuracy,
			TestAccuracy:  report.TestAccuracy,
			Samples:       report.Samples,
		}
		if opts.UseFeatureSelection {
			meta.SelectionMethod = opts.SelectionMethod
		}
		if report.CV != nil {
			meta.CVMean = report.CV.Mean
			meta.CVStd = report.CV.Std
		}
		artifact := &artifacts.Artifact{
			Model:        snap,
			Scaler:       scaler,
			FeatureNames: names,
			Metadata:     meta,
		}
		if err := t.Store.Save(artifact); err != nil {
			return nil, err
		}
		t.logf(opts.Verbose, "artifacts saved to %s", t.Store.Dir())
	}

	report.Duration = time.Since(start)
	return report, nil
}
