// ABOUTME: Composite risk scoring rule used to label exported training rows
// ABOUTME: Heuristic bootstrap labeling, deliberately replaceable, not clinical truth
package export

import (
	"github.com/oralsmart/riskml/internal/models"
)

// ScoreOptions tune the labeling thresholds.
type ScoreOptions struct {
	// MinDMFT forces a high label at or above this DMFT score. Zero means
	// the default of 8.
	MinDMFT int
	// HighThreshold overrides the composite high-risk cutoff. Zero means
	// derive it from data completeness. The medium cutoff is always 65% of
	// the high cutoff.
	HighThreshold float64
}

const defaultHighThreshold = 8.0

var clinicalFactors = []string{
	"plaque", "dry_mouth", "enamel_defects", "enamel_change",
	"dentin_discoloration", "white_spot_lesions", "cavitated_lesions",
	"multiple_restorations", "missing_teeth",
}

var protectiveFactors = []string{
	"fluoride_water", "fluoride_toothpaste", "topical_fluoride",
	"regular_checkups", "sealed_pits",
}

var dietaryRiskFactors = []string{
	"sweet_sugary_foods", "sweet_sugary_foods_bedtime",
	"cold_drinks_juices", "cold_drinks_juices_bedtime",
	"processed_fruit", "processed_fruit_bedtime",
	"spreads", "spreads_bedtime",
	"added_sugars", "added_sugars_bedtime",
}

var frequencyFactors = []string{
	"sweet_sugary_foods_daily", "sweet_sugary_foods_weekly",
	"cold_drinks_juices_daily", "cold_drinks_juices_weekly",
	"processed_fruit_daily", "processed_fruit_weekly",
}

// ScoreRecord labels one encoded feature record. Clinical findings weigh 2,
// protective factors subtract 1, dietary habits add 1, high-frequency
// consumption adds 1, and each DMFT point adds 0.5. Thresholds tighten when
// only one assessment is present, since missing data raises uncertainty.
func ScoreRecord(features map[string]float64, opts ScoreOptions) models.RiskLevel {
	minDMFT := float64(opts.MinDMFT)
	if minDMFT == 0 {
		minDMFT = defaultHighThreshold
	}
	dmft := features["total_dmft_score"]
	if dmft >= minDMFT {
		return models.RiskHigh
	}

	score := 0.0
	for _, f := range clinicalFactors {
		if features[f] == 1 {
			score += 2
		}
	}
	for _, f := range protectiveFactors {
		if features[f] == 1 {
			score--
		}
	}
	for _, f := range dietaryRiskFactors {
		if features[f] == 1 {
			score++
		}
	}
	for _, f := range frequencyFactors {
		if features[f] >= 3 {
			score++
		}
	}
	if features["special_needs"] == 1 {
		score += 2
	}
	if features["caregiver_treatment"] == 0 {
		score++
	}
	score += dmft * 0.5

	high := opts.HighThreshold
	if high == 0 {
		completeness := features["has_dental_data"] + features["has_dietary_data"]
		switch completeness {
		case 2:
			high = defaultHighThreshold
		case 1:
			high = defaultHighThreshold - 2
		default:
			high = defaultHighThreshold - 4
		}
	}
	medium := high * 0.65

	switch {
	case score >= high:
		return models.RiskHigh
	case score >= medium:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}
