// ABOUTME: Loads training CSVs into feature matrices and ordinal labels
// ABOUTME: Missing target column is fatal; missing feature columns default to 0
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/oralsmart/riskml/internal/models"
)

// Table is a loaded training dataset. Features columns follow FeatureNames
// order exactly; names absent from the file are listed in MissingColumns and
// filled with zeros.
type Table struct {
	FeatureNames   []string
	Features       [][]float64
	Labels         []int
	MissingColumns []string
}

// Load reads a CSV with one column per feature name plus a target column of
// risk labels. The target column must exist; feature columns may be missing
// and default to 0 so partially exported datasets still train.
func Load(path string, featureNames []string, targetColumn string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("dataset %s has no data rows", path)
	}

	header := rows[0]
	colIndex := make(map[string]int, len(header))
	for i, name := range header {
		colIndex[name] = i
	}

	targetIdx, ok := colIndex[targetColumn]
	if !ok {
		return nil, fmt.Errorf("target column %q not found in %s", targetColumn, path)
	}

	table := &Table{FeatureNames: append([]string(nil), featureNames...)}
	featureIdx := make([]int, len(featureNames))
	for i, name := range featureNames {
		if idx, ok := colIndex[name]; ok {
			featureIdx[i] = idx
		} else {
			featureIdx[i] = -1
			table.MissingColumns = append(table.MissingColumns, name)
		}
	}

	for rowNum, row := range rows[1:] {
		vec := make([]float64, len(featureNames))
		for i, idx := range featureIdx {
			if idx < 0 || idx >= len(row) {
				continue
			}
			if v, err := strconv.ParseFloat(row[idx], 64); err == nil {
				vec[i] = v
			}
		}

		label, err := parseLabel(row[targetIdx])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum+2, err)
		}
		table.Features = append(table.Features, vec)
		table.Labels = append(table.Labels, label)
	}
	return table, nil
}

// parseLabel accepts textual labels (case-insensitive) or the ordinal classes.
func parseLabel(s string) (int, error) {
	if class, err := models.ParseRiskLevel(s); err == nil {
		return class, nil
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 && n < models.NumClasses {
		return n, nil
	}
	return 0, fmt.Errorf("invalid risk label %q", s)
}
