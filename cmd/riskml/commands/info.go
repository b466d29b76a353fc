// ABOUTME: Info command shows metadata about the trained model
// ABOUTME: Reads the artifact store without loading observations
package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oralsmart/riskml/internal/artifacts"
)

var infoModelsDir string

// NewInfoCmd creates the info command
func NewInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show trained model information",
		Long: `Show metadata about the currently trained model: accuracy,
feature count, engine, and when it was trained.`,
		RunE: runInfo,
	}

	cmd.Flags().StringVar(&infoModelsDir, "models-dir", "", "Artifact directory (default from RISKML_MODELS_DIR)")

	return cmd
}

func runInfo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if infoModelsDir == "" {
		infoModelsDir = cfg.ModelsDir
	}

	store := artifacts.NewStore(infoModelsDir)
	a, err := store.Load()
	if err != nil {
		if errors.Is(err, artifacts.ErrMissing) {
			return fmt.Errorf("no trained model in %s; run riskml train first", infoModelsDir)
		}
		return err
	}

	out := cmd.OutOrStdout()
	meta := a.Metadata
	if jsonOutput() {
		return printJSON(out, map[string]interface{}{
			"run_id":           meta.RunID,
			"trained_at":       meta.TrainedAt,
			"model_type":       meta.ModelType,
			"engine":           meta.Engine,
			"feature_count":    meta.FeatureCount,
			"selection_method": meta.SelectionMethod,
			"train_accuracy":   meta.TrainAccuracy,
			"test_accuracy":    meta.TestAccuracy,
			"cv_mean":          meta.CVMean,
			"cv_std":           meta.CVStd,
			"samples":          meta.Samples,
			"feature_names":    a.FeatureNames,
			"models_dir":       infoModelsDir,
		})
	}

	fmt.Fprintf(out, "Model:    %s (run %s)\n", meta.ModelType, meta.RunID)
	fmt.Fprintf(out, "Trained:  %s\n", meta.TrainedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(out, "Engine:   %s\n", meta.Engine)
	fmt.Fprintf(out, "Features: %d", meta.FeatureCount)
	if meta.SelectionMethod != "" {
		fmt.Fprintf(out, " (selected via %s)", meta.SelectionMethod)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Samples:  %d\n", meta.Samples)
	fmt.Fprintf(out, "Accuracy: train %.4f, test %.4f\n", meta.TrainAccuracy, meta.TestAccuracy)
	if meta.CVMean > 0 {
		fmt.Fprintf(out, "CV:       %.4f ± %.4f\n", meta.CVMean, meta.CVStd)
	}
	if verbose {
		fmt.Fprintln(out, "Feature names:")
		for _, name := range a.FeatureNames {
			fmt.Fprintf(out, "  %s\n", name)
		}
	}
	return nil
}
