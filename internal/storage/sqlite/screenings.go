// ABOUTME: CRUD for patient screening records backing the export pipeline
// ABOUTME: Dental and dietary observations persist as nullable JSON columns
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/oralsmart/riskml/internal/models"
)

// PatientRecord is one stored patient with whatever screenings exist for them.
type PatientRecord struct {
	PatientID string                      `json:"patient_id"`
	Dental    *models.DentalObservation  `json:"dental,omitempty"`
	Dietary   *models.DietaryObservation `json:"dietary,omitempty"`
}

// SavePatient upserts a patient's screenings. Nil observations store as NULL,
// preserving the distinction between "no screening" and an empty one.
func (db *DB) SavePatient(rec PatientRecord) error {
	if rec.PatientID == "" {
		return fmt.Errorf("patient record has no patient_id")
	}

	dentalJSON, err := marshalNullable(rec.Dental)
	if err != nil {
		return fmt.Errorf("encoding dental screening: %w", err)
	}
	dietaryJSON, err := marshalNullable(rec.Dietary)
	if err != nil {
		return fmt.Errorf("encoding dietary screening: %w", err)
	}

	_, err = db.conn.Exec(`
		INSERT INTO patients (patient_id, dental_json, dietary_json)
		VALUES (?, ?, ?)
		ON CONFLICT(patient_id) DO UPDATE SET
			dental_json = excluded.dental_json,
			dietary_json = excluded.dietary_json,
			updated_at = CURRENT_TIMESTAMP`,
		rec.PatientID, dentalJSON, dietaryJSON)
	if err != nil {
		return fmt.Errorf("saving patient %s: %w", rec.PatientID, err)
	}
	return nil
}

// GetPatient loads one patient record. Returns sql.ErrNoRows when absent.
func (db *DB) GetPatient(patientID string) (*PatientRecord, error) {
	row := db.conn.QueryRow(
		`SELECT patient_id, dental_json, dietary_json FROM patients WHERE patient_id = ?`,
		patientID)
	return scanPatient(row)
}

// ListPatients returns every stored patient in insertion order.
func (db *DB) ListPatients() ([]PatientRecord, error) {
	rows, err := db.conn.Query(
		`SELECT patient_id, dental_json, dietary_json FROM patients ORDER BY created_at, patient_id`)
	if err != nil {
		return nil, fmt.Errorf("listing patients: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []PatientRecord
	for rows.Next() {
		rec, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// CountPatients returns the number of stored patients.
func (db *DB) CountPatients() (int, error) {
	var n int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM patients`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting patients: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPatient(row rowScanner) (*PatientRecord, error) {
	var rec PatientRecord
	var dentalJSON, dietaryJSON sql.NullString
	if err := row.Scan(&rec.PatientID, &dentalJSON, &dietaryJSON); err != nil {
		return nil, err
	}

	if dentalJSON.Valid {
		var dental models.DentalObservation
		if err := json.Unmarshal([]byte(dentalJSON.String), &dental); err != nil {
			return nil, fmt.Errorf("decoding dental screening for %s: %w", rec.PatientID, err)
		}
		rec.Dental = &dental
	}
	if dietaryJSON.Valid {
		var dietary models.DietaryObservation
		if err := json.Unmarshal([]byte(dietaryJSON.String), &dietary); err != nil {
			return nil, fmt.Errorf("decoding dietary screening for %s: %w", rec.PatientID, err)
		}
		rec.Dietary = &dietary
	}
	return &rec, nil
}

func marshalNullable(v interface{}) (interface{}, error) {
	switch obs := v.(type) {
	case *models.DentalObservation:
		if obs == nil {
			return nil, nil
		}
	case *models.DietaryObservation:
		if obs == nil {
			return nil, nil
		}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}
