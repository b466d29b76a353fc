// ABOUTME: Train command fits the risk model from a labeled CSV
// ABOUTME: Optional feature selection, grid search tuning, and cross-validation
package commands

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/oralsmart/riskml/internal/artifacts"
	"github.com/oralsmart/riskml/internal/neural"
	"github.com/oralsmart/riskml/internal/trainer"
)

var (
	trainData            string
	trainTarget          string
	trainModelsDir       string
	trainEngine          string
	trainSeed            int64
	trainSelection       bool
	trainSelectionMethod string
	trainTopFeatures     int
	trainTune            bool
	trainGridFile        string
	trainCVFolds         int
)

// NewTrainCmd creates the train command
func NewTrainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the risk prediction model",
		Long: `Train the MLP risk classifier from a labeled CSV.

The CSV needs one column per feature plus a risk_level column of
low/medium/high labels (riskml export and riskml sample produce it).
The trained model, scaler, feature names, and metadata are saved to
the models directory for riskml predict to use.

Examples:
  riskml train --data training.csv
  riskml train --data training.csv --feature-selection --top-features 20
  riskml train --data training.csv --tune --grid grid.yaml`,
		RunE: runTrain,
	}

	cmd.Flags().StringVar(&trainData, "data", "", "Labeled training CSV (required)")
	cmd.Flags().StringVar(&trainTarget, "target-column", "risk_level", "Label column name in the CSV")
	cmd.Flags().StringVar(&trainModelsDir, "models-dir", "", "Artifact directory (default from RISKML_MODELS_DIR)")
	cmd.Flags().StringVar(&trainEngine, "engine", "", "Math engine: auto, dense, or naive (default from RISKML_ENGINE)")
	cmd.Flags().Int64Var(&trainSeed, "seed", -1, "Random seed (default from RISKML_SEED)")
	cmd.Flags().BoolVar(&trainSelection, "feature-selection", false, "Select a feature subset before training")
	cmd.Flags().StringVar(&trainSelectionMethod, "selection-method", "importance", "Selection method: importance, kbest, or rfe")
	cmd.Flags().IntVar(&trainTopFeatures, "top-features", 20, "Number of features to keep when selecting")
	cmd.Flags().BoolVar(&trainTune, "tune", false, "Grid-search hyperparameters before the final fit")
	cmd.Flags().StringVar(&trainGridFile, "grid", "", "YAML file overriding the search space")
	cmd.Flags().IntVar(&trainCVFolds, "cv-folds", 5, "Cross-validation folds for the final report (0 disables)")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}

func runTrain(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if trainModelsDir == "" {
		trainModelsDir = cfg.ModelsDir
	}
	if trainEngine == "" {
		trainEngine = cfg.Engine
	}
	if trainSeed < 0 {
		trainSeed = cfg.Seed
	}
	if trainSelection {
		if err := validatePositiveInt(trainTopFeatures, "top-features"); err != nil {
			return err
		}
	}

	engine, err := pickEngine(trainEngine)
	if err != nil {
		return err
	}

	opts := trainer.DefaultOptions()
	opts.TargetColumn = trainTarget
	opts.UseFeatureSelection = trainSelection
	opts.SelectionMethod = trainSelectionMethod
	opts.TopFeatures = trainTopFeatures
	opts.UseTuning = trainTune
	opts.CVFolds = trainCVFolds
	opts.Verbose = verbose
	opts.Config = neural.DefaultConfig()
	opts.Config.Seed = trainSeed

	if trainGridFile != "" {
		grid, err := trainer.LoadGrid(trainGridFile)
		if err != nil {
			return err
		}
		opts.Grid = grid
	}

	tr := trainer.New(engine, artifacts.NewStore(trainModelsDir))
	if quiet {
		tr.Logf = nil
	} else {
		tr.Logf = log.Printf
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Training from %s...\n", trainData)
	}
	report, err := tr.TrainCSV(trainData, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput() {
		return printJSON(out, trainReportJSON(report))
	}

	fmt.Fprintf(out, "Run %s finished in %s\n", report.RunID, report.Duration.Round(time.Millisecond))
	fmt.Fprintf(out, "Samples: %d  Iterations: %d  Loss: %.4f\n", report.Samples, report.NIter, report.Loss)
	fmt.Fprintf(out, "Train accuracy: %.4f\n", report.TrainAccuracy)
	fmt.Fprintf(out, "Test accuracy:  %.4f\n", report.TestAccuracy)
	if report.Tuned {
		fmt.Fprintf(out, "Tuned: hidden=%v alpha=%v lr=%v activation=%s (CV %.4f)\n",
			report.BestConfig.HiddenLayerSizes, report.BestConfig.Alpha,
			report.BestConfig.LearningRateInit, report.BestConfig.Activation, report.TunedScore)
	}
	if report.CV != nil {
		fmt.Fprintf(out, "CV accuracy: %.4f ± %.4f (min %.4f, max %.4f)\n",
			report.CV.Mean, report.CV.Std, report.CV.Min, report.CV.Max)
	}
	if len(report.SelectedFeatures) > 0 {
		fmt.Fprintf(out, "Selected %d features via %s\n", len(report.SelectedFeatures), trainSelectionMethod)
	}
	if len(report.MissingColumns) > 0 && !quiet {
		fmt.Fprintf(out, "Warning: %d feature columns missing from the CSV, filled with zeros\n", len(report.MissingColumns))
	}
	fmt.Fprintf(out, "\nConfusion matrix (test set):\n%s\n", trainer.FormatConfusion(report.Confusion))
	fmt.Fprintf(out, "%s", trainer.FormatReport(report.Confusion))
	fmt.Fprintf(out, "\nArtifacts saved to %s\n", trainModelsDir)
	return nil
}

func trainReportJSON(r *trainer.Report) map[string]interface{} {
	out := map[string]interface{}{
		"run_id":         r.RunID,
		"samples":        r.Samples,
		"iterations":     r.NIter,
		"loss":           r.Loss,
		"train_accuracy": r.TrainAccuracy,
		"test_accuracy":  r.TestAccuracy,
		"duration_ms":    r.Duration.Milliseconds(),
	}
	if r.Tuned {
		out["tuned_score"] = r.TunedScore
		out["best_params"] = map[string]interface{}{
			"hidden_layer_sizes": r.BestConfig.HiddenLayerSizes,
			"alpha":              r.BestConfig.Alpha,
			"learning_rate_init": r.BestConfig.LearningRateInit,
			"activation":         string(r.BestConfig.Activation),
		}
	}
	if r.CV != nil {
		out["cv"] = map[string]interface{}{
			"scores": r.CV.Scores,
			"mean":   r.CV.Mean,
			"std":    r.CV.Std,
			"min":    r.CV.Min,
			"max":    r.CV.Max,
		}
	}
	if len(r.SelectedFeatures) > 0 {
		out["selected_features"] = r.SelectedFeatures
	}
	if len(r.MissingColumns) > 0 {
		out["missing_columns"] = r.MissingColumns
	}
	return out
}
