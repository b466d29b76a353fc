// ABOUTME: Sample command generates a synthetic labeled training CSV
// ABOUTME: Bootstraps training before any real screenings exist
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oralsmart/riskml/internal/dataset"
	"github.com/oralsmart/riskml/internal/export"
	"github.com/oralsmart/riskml/internal/features"
	"github.com/oralsmart/riskml/internal/models"
)

var (
	sampleCount  int
	sampleSeed   int64
	sampleOutput string
)

// NewSampleCmd creates the sample command
func NewSampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Generate a synthetic labeled training CSV",
		Long: `Generate synthetic screening records labeled by the composite
scoring rule, covering the full feature schema.

Useful for bootstrapping a model before real screenings are stored,
and for exercising the training pipeline end to end.

Examples:
  riskml sample --count 500 --output training.csv
  riskml sample --count 1000 --seed 7`,
		RunE: runSample,
	}

	cmd.Flags().IntVarP(&sampleCount, "count", "n", 500, "Number of records to generate")
	cmd.Flags().Int64Var(&sampleSeed, "seed", -1, "Random seed (default from RISKML_SEED)")
	cmd.Flags().StringVarP(&sampleOutput, "output", "o", "training.csv", "Output CSV path")

	return cmd
}

func runSample(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := validatePositiveInt(sampleCount, "count"); err != nil {
		return err
	}
	if sampleSeed < 0 {
		sampleSeed = cfg.Seed
	}

	names := features.CanonicalNames()
	label := func(feats map[string]float64) models.RiskLevel {
		return export.ScoreRecord(feats, export.ScoreOptions{
			MinDMFT:       cfg.MinDMFT,
			HighThreshold: cfg.RiskThreshold,
		})
	}
	records := dataset.Generate(sampleCount, sampleSeed, names, label)
	if err := dataset.Write(sampleOutput, names, records); err != nil {
		return err
	}

	counts := map[models.RiskLevel]int{}
	for _, rec := range records {
		counts[rec.Label]++
	}

	out := cmd.OutOrStdout()
	if jsonOutput() {
		return printJSON(out, map[string]interface{}{
			"records":     len(records),
			"output":      sampleOutput,
			"seed":        sampleSeed,
			"low_risk":    counts[models.RiskLow],
			"medium_risk": counts[models.RiskMedium],
			"high_risk":   counts[models.RiskHigh],
		})
	}
	if !quiet {
		fmt.Fprintf(out, "Generated %d records to %s (seed %d)\n", len(records), sampleOutput, sampleSeed)
		fmt.Fprintf(out, "Labels: %d low, %d medium, %d high\n",
			counts[models.RiskLow], counts[models.RiskMedium], counts[models.RiskHigh])
	}
	return nil
}
