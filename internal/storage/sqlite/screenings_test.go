// ABOUTME: Tests for the SQLite screening store
// ABOUTME: Uses in-memory databases, covers upsert and nil screening handling
package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/oralsmart/riskml/internal/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveAndGetPatient(t *testing.T) {
	db := testDB(t)
	rec := PatientRecord{
		PatientID: "p-100",
		Dental: &models.DentalObservation{
			Plaque:    "yes",
			TeethData: map[string]string{"tooth_1": "1", "tooth_2": "B"},
		},
		Dietary: &models.DietaryObservation{
			SweetSugaryFoods:      "yes",
			SweetSugaryFoodsDaily: "4-6 times a day",
		},
	}
	if err := db.SavePatient(rec); err != nil {
		t.Fatalf("SavePatient() error = %v", err)
	}

	got, err := db.GetPatient("p-100")
	if err != nil {
		t.Fatalf("GetPatient() error = %v", err)
	}
	if got.Dental == nil || !got.Dental.Plaque.Bool() {
		t.Error("dental observation not round-tripped")
	}
	if got.Dental.TeethData["tooth_2"] != "B" {
		t.Errorf("tooth_2 = %q, want B", got.Dental.TeethData["tooth_2"])
	}
	if got.Dietary == nil || got.Dietary.SweetSugaryFoodsDaily != "4-6 times a day" {
		t.Error("dietary observation not round-tripped")
	}
}

func TestGetPatientNotFound(t *testing.T) {
	db := testDB(t)
	if _, err := db.GetPatient("missing"); err == nil {
		t.Error("GetPatient() for missing id should fail")
	}
}

func TestSavePatientUpsert(t *testing.T) {
	db := testDB(t)
	if err := db.SavePatient(PatientRecord{
		PatientID: "p-1",
		Dental:    &models.DentalObservation{Plaque: "yes"},
	}); err != nil {
		t.Fatalf("first SavePatient() error = %v", err)
	}
	if err := db.SavePatient(PatientRecord{
		PatientID: "p-1",
		Dental:    &models.DentalObservation{Plaque: "no"},
		Dietary:   &models.DietaryObservation{Water: "yes"},
	}); err != nil {
		t.Fatalf("second SavePatient() error = %v", err)
	}

	count, err := db.CountPatients()
	if err != nil {
		t.Fatalf("CountPatients() error = %v", err)
	}
	if count != 1 {
		t.Errorf("CountPatients() = %d, want 1 after upsert", count)
	}

	got, err := db.GetPatient("p-1")
	if err != nil {
		t.Fatalf("GetPatient() error = %v", err)
	}
	if got.Dental.Plaque.Bool() {
		t.Error("upsert did not replace dental observation")
	}
	if got.Dietary == nil || !got.Dietary.Water.Bool() {
		t.Error("upsert did not add dietary observation")
	}
}

func TestNilScreeningsStayNil(t *testing.T) {
	db := testDB(t)
	if err := db.SavePatient(PatientRecord{PatientID: "p-2", Dental: &models.DentalObservation{}}); err != nil {
		t.Fatalf("SavePatient() error = %v", err)
	}
	got, err := db.GetPatient("p-2")
	if err != nil {
		t.Fatalf("GetPatient() error = %v", err)
	}
	if got.Dental == nil {
		t.Error("empty dental observation should round-trip as non-nil")
	}
	if got.Dietary != nil {
		t.Error("absent dietary observation should stay nil")
	}
}

func TestListPatients(t *testing.T) {
	db := testDB(t)
	for _, id := range []string{"b", "a", "c"} {
		if err := db.SavePatient(PatientRecord{
			PatientID: id,
			Dental:    &models.DentalObservation{},
		}); err != nil {
			t.Fatalf("SavePatient(%s) error = %v", id, err)
		}
	}
	patients, err := db.ListPatients()
	if err != nil {
		t.Fatalf("ListPatients() error = %v", err)
	}
	if len(patients) != 3 {
		t.Fatalf("got %d patients, want 3", len(patients))
	}
	seen := map[string]bool{}
	for _, p := range patients {
		seen[p.PatientID] = true
	}
	for _, id := range []string{"a", "b", "c"} {
		if !seen[id] {
			t.Errorf("patient %s missing from list", id)
		}
	}
}

func TestOpenCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "screenings.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	if db.Path() != path {
		t.Errorf("Path() = %q, want %q", db.Path(), path)
	}
	if err := db.SavePatient(PatientRecord{PatientID: "x", Dental: &models.DentalObservation{}}); err != nil {
		t.Errorf("SavePatient() on file-backed store error = %v", err)
	}
}
