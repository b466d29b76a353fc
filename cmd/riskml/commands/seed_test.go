// ABOUTME: Tests for the seed and export commands
// ABOUTME: Seeds a temp database then exports it to a labeled CSV

package commands

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oralsmart/riskml/internal/features"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestNewSeedCmd(t *testing.T) {
	cmd := NewSeedCmd()

	if cmd.Use != "seed [fixtures.json]" {
		t.Errorf("Use = %q, want %q", cmd.Use, "seed [fixtures.json]")
	}
	for _, name := range []string{"count", "db", "seed", "incomplete"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("--%s flag not found", name)
		}
	}
}

func TestSeedAnswersUseFormCodes(t *testing.T) {
	// Synthetic answers must be the codes the real screening forms emit,
	// so they encode through the lookup table instead of the digit fallback.
	want := map[string]float64{
		"1-3_day":        2,
		"4-6_day":        4,
		"1-3_week":       1,
		"4-6_week":       3,
		"with meals":     1,
		"between meals":  2,
		"before bedtime": 3,
	}
	for _, answers := range [][]string{frequencyAnswers, timingAnswers} {
		for _, ans := range answers {
			if ans == "" {
				continue
			}
			expect, ok := want[ans]
			if !ok {
				t.Errorf("answer %q is not a known form code", ans)
				continue
			}
			if got := features.EncodeFrequency(ans); got != expect {
				t.Errorf("EncodeFrequency(%q) = %v, want %v", ans, got, expect)
			}
		}
	}
}

func TestNewExportCmd(t *testing.T) {
	cmd := NewExportCmd()

	if cmd.Use != "export" {
		t.Errorf("Use = %q, want %q", cmd.Use, "export")
	}
	for _, name := range []string{"output", "db", "include-incomplete", "min-dmft", "risk-threshold", "dry-run"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("--%s flag not found", name)
		}
	}
}

func TestSeedThenExport(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "screenings.db")
	csvPath := filepath.Join(dir, "training.csv")

	out, err := run(t, "seed", "--count", "30", "--seed", "5", "--db", dbPath)
	if err != nil {
		t.Fatalf("seed error = %v", err)
	}
	if !strings.Contains(out, "Seeded 30 patients") {
		t.Errorf("unexpected seed output: %s", out)
	}

	out, err = run(t, "export", "--db", dbPath, "--output", csvPath)
	if err != nil {
		t.Fatalf("export error = %v", err)
	}
	if !strings.Contains(out, "Exported 30 records") {
		t.Errorf("unexpected export output: %s", out)
	}

	f, err := os.Open(csvPath)
	if err != nil {
		t.Fatalf("export CSV not created: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("reading CSV: %v", err)
	}
	if len(rows) != 31 {
		t.Errorf("got %d rows, want 31 (header + 30 records)", len(rows))
	}
}

func TestSeedFromFixtures(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "screenings.db")
	fixtures := filepath.Join(dir, "fixtures.json")

	content := `[
		{"patient_id": "f1", "dental": {"plaque": "yes"}},
		{"patient_id": "f2", "dietary": {"water": "yes"}}
	]`
	if err := os.WriteFile(fixtures, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "seed", fixtures, "--db", dbPath)
	if err != nil {
		t.Fatalf("seed from fixtures error = %v", err)
	}
	if !strings.Contains(out, "Seeded 2 patients") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestSeedFromBadFixtures(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	dir := t.TempDir()
	fixtures := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(fixtures, []byte(`[{"dental": {}}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "seed", fixtures, "--db", filepath.Join(dir, "s.db")); err == nil {
		t.Error("fixture without patient_id should fail")
	}
}

func TestExportDryRun(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "screenings.db")
	csvPath := filepath.Join(dir, "unwritten.csv")

	if _, err := run(t, "seed", "--count", "5", "--seed", "2", "--db", dbPath); err != nil {
		t.Fatalf("seed error = %v", err)
	}

	out, err := run(t, "export", "--db", dbPath, "--output", csvPath, "--dry-run")
	if err != nil {
		t.Fatalf("export --dry-run error = %v", err)
	}
	if !strings.Contains(out, "Dry run") {
		t.Errorf("unexpected output: %s", out)
	}
	if _, err := os.Stat(csvPath); !os.IsNotExist(err) {
		t.Error("dry run should not write the CSV")
	}
}

func TestExportEmptyDatabase(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	dbPath := filepath.Join(t.TempDir(), "empty.db")

	if _, err := run(t, "export", "--db", dbPath); err == nil {
		t.Error("export from empty database should fail")
	}
}
