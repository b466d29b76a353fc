// ABOUTME: Screening store schema definition
// ABOUTME: One row per patient; observations stored as JSON documents
package sqlite

const schema = `
CREATE TABLE IF NOT EXISTS patients (
	patient_id   TEXT PRIMARY KEY,
	dental_json  TEXT,
	dietary_json TEXT,
	created_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_patients_created ON patients(created_at);
`
