// ABOUTME: Batch-scans stored screenings into labeled training records
// ABOUTME: Tracks completeness/risk statistics and flags imbalanced exports
package export

import (
	"fmt"

	"github.com/oralsmart/riskml/internal/dataset"
	"github.com/oralsmart/riskml/internal/features"
	"github.com/oralsmart/riskml/internal/models"
	"github.com/oralsmart/riskml/internal/storage/sqlite"
)

// Options control which stored patients become training rows.
type Options struct {
	// IncludeIncomplete keeps patients that have only one of the two
	// screenings. By default only complete pairs export.
	IncludeIncomplete bool
	Score             ScoreOptions
}

// Stats summarizes one export run.
type Stats struct {
	TotalPatients   int
	WithBoth        int
	WithDentalOnly  int
	WithDietaryOnly int
	WithNeither     int
	LowRisk         int
	MediumRisk      int
	HighRisk        int
}

// Records is how many rows the run produced.
func (s Stats) Records() int { return s.LowRisk + s.MediumRisk + s.HighRisk }

// Imbalanced reports whether any class falls under 10% or over 70% of the
// export, the point where retraining on it becomes questionable.
func (s Stats) Imbalanced() bool {
	total := s.Records()
	if total == 0 {
		return false
	}
	for _, n := range []int{s.LowRisk, s.MediumRisk, s.HighRisk} {
		ratio := float64(n) / float64(total)
		if ratio < 0.1 || ratio > 0.7 {
			return true
		}
	}
	return false
}

// Scan reads every stored patient, encodes the full feature vector, and
// labels it with the composite scoring rule. Patients with no screenings at
// all are always skipped.
func Scan(store *sqlite.DB, opts Options) ([]dataset.LabeledRecord, Stats, error) {
	patients, err := store.ListPatients()
	if err != nil {
		return nil, Stats{}, fmt.Errorf("scanning screening store: %w", err)
	}
	if len(patients) == 0 {
		return nil, Stats{}, fmt.Errorf("no patients found in screening store")
	}

	stats := Stats{TotalPatients: len(patients)}
	var records []dataset.LabeledRecord

	for _, patient := range patients {
		hasDental := patient.Dental != nil
		hasDietary := patient.Dietary != nil

		switch {
		case hasDental && hasDietary:
			stats.WithBoth++
		case hasDental:
			stats.WithDentalOnly++
		case hasDietary:
			stats.WithDietaryOnly++
		default:
			stats.WithNeither++
			continue
		}
		if !opts.IncludeIncomplete && !(hasDental && hasDietary) {
			continue
		}

		featureMap := features.EncodeMap(patient.Dental, patient.Dietary)
		label := ScoreRecord(featureMap, opts.Score)

		switch label {
		case models.RiskLow:
			stats.LowRisk++
		case models.RiskMedium:
			stats.MediumRisk++
		case models.RiskHigh:
			stats.HighRisk++
		}
		records = append(records, dataset.LabeledRecord{Features: featureMap, Label: label})
	}

	if len(records) == 0 {
		return nil, stats, fmt.Errorf("no valid training records found")
	}
	return records, stats, nil
}
