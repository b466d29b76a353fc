// ABOUTME: Writes labeled feature records to the training CSV format
// ABOUTME: One column per feature name plus a trailing risk_level column
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/oralsmart/riskml/internal/models"
)

// LabeledRecord is one training row before serialization.
type LabeledRecord struct {
	Features map[string]float64
	Label    models.RiskLevel
}

// Write emits records as a CSV with the given feature columns followed by a
// risk_level column. Features missing from a record write as 0.
func Write(path string, featureNames []string, records []LabeledRecord) error {
	if len(records) == 0 {
		return fmt.Errorf("no records to write")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	header := append(append([]string(nil), featureNames...), "risk_level")
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	row := make([]string, len(header))
	for _, rec := range records {
		for i, name := range featureNames {
			row[i] = strconv.FormatFloat(rec.Features[name], 'g', -1, 64)
		}
		row[len(row)-1] = string(rec.Label)
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return f.Close()
}
