// ABOUTME: Predict command scores a screening with the trained model
// ABOUTME: Reads dental/dietary observations from JSON files or a stored patient
package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oralsmart/riskml/internal/artifacts"
	"github.com/oralsmart/riskml/internal/models"
	"github.com/oralsmart/riskml/internal/predictor"
	"github.com/oralsmart/riskml/internal/storage/sqlite"
)

var (
	predictDentalFile  string
	predictDietaryFile string
	predictPatientID   string
	predictDB          string
	predictModelsDir   string
	predictEngine      string
)

// NewPredictCmd creates the predict command
func NewPredictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict caries risk for a screening",
		Long: `Predict a child's caries risk level with the trained model.

Observations come either from JSON files (--dental, --dietary) or
from a patient stored in the screening database (--patient). At least
one screening is required; the other encodes as absent.

Examples:
  riskml predict --dental dental.json --dietary dietary.json
  riskml predict --patient 7f3c...
  riskml predict --dental dental.json --format json`,
		RunE: runPredict,
	}

	cmd.Flags().StringVar(&predictDentalFile, "dental", "", "Dental observation JSON file")
	cmd.Flags().StringVar(&predictDietaryFile, "dietary", "", "Dietary observation JSON file")
	cmd.Flags().StringVar(&predictPatientID, "patient", "", "Predict for a patient stored in the database")
	cmd.Flags().StringVar(&predictDB, "db", "", "Screening database path (default from RISKML_DB)")
	cmd.Flags().StringVar(&predictModelsDir, "models-dir", "", "Artifact directory (default from RISKML_MODELS_DIR)")
	cmd.Flags().StringVar(&predictEngine, "engine", "", "Math engine: auto, dense, or naive (default from RISKML_ENGINE)")
	cmd.MarkFlagsMutuallyExclusive("patient", "dental")
	cmd.MarkFlagsMutuallyExclusive("patient", "dietary")

	return cmd
}

func runPredict(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if predictModelsDir == "" {
		predictModelsDir = cfg.ModelsDir
	}
	if predictEngine == "" {
		predictEngine = cfg.Engine
	}

	var dental *models.DentalObservation
	var dietary *models.DietaryObservation

	if predictPatientID != "" {
		if predictDB == "" {
			predictDB = cfg.DBPath
		}
		db, err := sqlite.Open(predictDB)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		patient, err := db.GetPatient(predictPatientID)
		if err != nil {
			return err
		}
		dental = patient.Dental
		dietary = patient.Dietary
	} else {
		if predictDentalFile != "" {
			dental = &models.DentalObservation{}
			if err := readObservation(predictDentalFile, dental); err != nil {
				return err
			}
		}
		if predictDietaryFile != "" {
			dietary = &models.DietaryObservation{}
			if err := readObservation(predictDietaryFile, dietary); err != nil {
				return err
			}
		}
	}
	if dental == nil && dietary == nil {
		return fmt.Errorf("at least one of --dental, --dietary, or --patient is required")
	}

	p, err := predictor.Load(artifacts.NewStore(predictModelsDir), predictEngine)
	if err != nil {
		return err
	}
	pred, err := p.Predict(dental, dietary)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput() {
		return printJSON(out, pred.ToMap())
	}

	fmt.Fprintf(out, "Risk level: %s (%.1f%% confidence)\n", strings.ToUpper(string(pred.RiskLevel)), pred.Confidence*100)
	fmt.Fprintf(out, "Probabilities: low %.3f  medium %.3f  high %.3f\n",
		pred.ProbabilityLow, pred.ProbabilityMedium, pred.ProbabilityHigh)
	if len(pred.TopRiskFactors) > 0 {
		fmt.Fprintln(out, "Top contributing features:")
		for _, f := range pred.TopRiskFactors {
			fmt.Fprintf(out, "  %-32s %.4f\n", f.Name, f.Score)
		}
	}
	if verbose {
		fmt.Fprintf(out, "Engine: %s\n", pred.Engine)
	}
	return nil
}

func readObservation(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
