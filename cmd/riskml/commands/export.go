// ABOUTME: Export command turns stored screenings into a labeled training CSV
// ABOUTME: Labels come from the composite scoring rule; reports class balance
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oralsmart/riskml/internal/dataset"
	"github.com/oralsmart/riskml/internal/export"
	"github.com/oralsmart/riskml/internal/features"
	"github.com/oralsmart/riskml/internal/storage/sqlite"
)

var (
	exportOutput            string
	exportDB                string
	exportIncludeIncomplete bool
	exportMinDMFT           int
	exportRiskThreshold     float64
	exportDryRun            bool
)

// NewExportCmd creates the export command
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored screenings as a labeled training CSV",
		Long: `Export patient screenings from the local database to a training CSV.

Each complete screening pair is encoded into the full feature schema
and labeled low/medium/high by the composite scoring rule. Use
--include-incomplete to also export patients with only one screening.

Examples:
  riskml export --output training.csv
  riskml export --output training.csv --include-incomplete
  riskml export --dry-run`,
		RunE: runExport,
	}

	cmd.Flags().StringVarP(&exportOutput, "output", "o", "training.csv", "Output CSV path")
	cmd.Flags().StringVar(&exportDB, "db", "", "Screening database path (default from RISKML_DB)")
	cmd.Flags().BoolVar(&exportIncludeIncomplete, "include-incomplete", false, "Export patients with only one screening")
	cmd.Flags().IntVar(&exportMinDMFT, "min-dmft", 0, "DMFT score that forces a high label (default 8)")
	cmd.Flags().Float64Var(&exportRiskThreshold, "risk-threshold", 0, "Composite score cutoff for high risk (default by data completeness)")
	cmd.Flags().BoolVar(&exportDryRun, "dry-run", false, "Report statistics without writing the CSV")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if exportDB == "" {
		exportDB = cfg.DBPath
	}
	if exportMinDMFT == 0 {
		exportMinDMFT = cfg.MinDMFT
	}
	if exportRiskThreshold == 0 {
		exportRiskThreshold = cfg.RiskThreshold
	}

	db, err := sqlite.Open(exportDB)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	records, stats, err := export.Scan(db, export.Options{
		IncludeIncomplete: exportIncludeIncomplete,
		Score: export.ScoreOptions{
			MinDMFT:       exportMinDMFT,
			HighThreshold: exportRiskThreshold,
		},
	})
	if err != nil {
		return err
	}

	if !exportDryRun {
		if err := dataset.Write(exportOutput, features.CanonicalNames(), records); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if jsonOutput() {
		payload := map[string]interface{}{
			"records":           stats.Records(),
			"total_patients":    stats.TotalPatients,
			"with_both":         stats.WithBoth,
			"with_dental_only":  stats.WithDentalOnly,
			"with_dietary_only": stats.WithDietaryOnly,
			"with_neither":      stats.WithNeither,
			"low_risk":          stats.LowRisk,
			"medium_risk":       stats.MediumRisk,
			"high_risk":         stats.HighRisk,
			"imbalanced":        stats.Imbalanced(),
			"dry_run":           exportDryRun,
		}
		if !exportDryRun {
			payload["output"] = exportOutput
		}
		return printJSON(out, payload)
	}

	if exportDryRun {
		fmt.Fprintf(out, "Dry run: %d records would be exported\n", stats.Records())
	} else {
		fmt.Fprintf(out, "Exported %d records to %s\n", stats.Records(), exportOutput)
	}
	fmt.Fprintf(out, "Patients: %d total, %d complete, %d dental-only, %d dietary-only, %d empty\n",
		stats.TotalPatients, stats.WithBoth, stats.WithDentalOnly, stats.WithDietaryOnly, stats.WithNeither)
	fmt.Fprintf(out, "Labels: %d low, %d medium, %d high\n", stats.LowRisk, stats.MediumRisk, stats.HighRisk)
	if stats.Imbalanced() && !quiet {
		fmt.Fprintln(out, "Warning: class distribution is imbalanced; the trained model may be biased")
	}
	return nil
}
