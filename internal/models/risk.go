// ABOUTME: RiskLevel is the three-class ordinal target of the classifier
// ABOUTME: Maps between the textual labels and the ordinal class indices
package models

import (
	"fmt"
	"strings"
)

// RiskLevel is one of "low", "medium", "high".
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// NumClasses is the number of risk classes the classifier predicts.
const NumClasses = 3

// ParseRiskLevel maps a textual label to its ordinal class index.
// Matching is case-insensitive; anything else is an error.
func ParseRiskLevel(s string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return 0, nil
	case "medium":
		return 1, nil
	case "high":
		return 2, nil
	}
	return 0, fmt.Errorf("unknown risk level %q", s)
}

// RiskLevelFromClass maps an ordinal class index back to its label.
func RiskLevelFromClass(class int) (RiskLevel, error) {
	switch class {
	case 0:
		return RiskLow, nil
	case 1:
		return RiskMedium, nil
	case 2:
		return RiskHigh, nil
	}
	return "", fmt.Errorf("unknown risk class %d", class)
}
