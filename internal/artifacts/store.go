// ABOUTME: Persists trained model artifacts as four co-located files
// ABOUTME: Gob for model and scaler, JSON for feature names and run metadata
package artifacts

import (
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oralsmart/riskml/internal/neural"
)

const (
	modelFile    = "risk_predictor.gob"
	scalerFile   = "scaler.gob"
	featuresFile = "feature_names.json"
	metadataFile = "metadata.json"
)

// ErrMissing is returned by Load when any of the four artifact files is
// absent. A partial artifact set is treated the same as no artifacts.
var ErrMissing = errors.New("model artifacts not found")

// Metadata records how and when an artifact set was produced.
type Metadata struct {
	RunID           string    `json:"run_id"`
	TrainedAt       time.Time `json:"trained_at"`
	ModelType       string    `json:"model_type"`
	Engine          string    `json:"engine"`
	FeatureCount    int       `json:"feature_count"`
	SelectionMethod string    `json:"selection_method,omitempty"`
	TrainAccuracy   float64   `json:"train_accuracy"`
	TestAccuracy    float64   `json:"test_accuracy"`
	CVMean          float64   `json:"cv_mean,omitempty"`
	CVStd           float64   `json:"cv_std,omitempty"`
	Samples         int       `json:"samples"`
}

// Artifact bundles everything a predictor needs to score new observations.
type Artifact struct {
	Model        *neural.Snapshot
	Scaler       *neural.StandardScaler
	FeatureNames []string
	Metadata     Metadata
}

// Store reads and writes artifact sets under a single directory. The
// directory belongs to the store: Save replaces its contents wholesale.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Dir() string { return s.dir }

// Save writes the four files as a unit. The full set is staged in a temp
// directory and swapped into place, so readers see either the previous set,
// the new set, or no set at all. A model from one run is never paired with
// a scaler from another.
func (s *Store) Save(a *Artifact) error {
	if a.Model == nil || a.Scaler == nil {
		return fmt.Errorf("saving artifacts: model and scaler are required")
	}
	parent := filepath.Dir(s.dir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return fmt.Errorf("creating artifact directory: %w", err)
	}
	stage, err := os.MkdirTemp(parent, filepath.Base(s.dir)+".tmp-*")
	if err != nil {
		return fmt.Errorf("staging artifacts: %w", err)
	}
	defer os.RemoveAll(stage)
	if err := os.Chmod(stage, 0o755); err != nil {
		return fmt.Errorf("staging artifacts: %w", err)
	}

	if err := writeGob(filepath.Join(stage, modelFile), a.Model); err != nil {
		return fmt.Errorf("saving model: %w", err)
	}
	if err := writeGob(filepath.Join(stage, scalerFile), a.Scaler); err != nil {
		return fmt.Errorf("saving scaler: %w", err)
	}
	if err := writeJSON(filepath.Join(stage, featuresFile), a.FeatureNames); err != nil {
		return fmt.Errorf("saving feature names: %w", err)
	}
	if err := writeJSON(filepath.Join(stage, metadataFile), a.Metadata); err != nil {
		return fmt.Errorf("saving metadata: %w", err)
	}

	old := stage + ".old"
	if _, err := os.Stat(s.dir); err == nil {
		if err := os.Rename(s.dir, old); err != nil {
			return fmt.Errorf("replacing artifacts: %w", err)
		}
		defer os.RemoveAll(old)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("replacing artifacts: %w", err)
	}
	if err := os.Rename(stage, s.dir); err != nil {
		// Put the previous set back rather than leave nothing.
		os.Rename(old, s.dir)
		return fmt.Errorf("replacing artifacts: %w", err)
	}
	return nil
}

// Load reads a complete artifact set. Any missing file yields ErrMissing;
// a present but unreadable file yields a distinct error so corruption is
// not mistaken for "never trained".
func (s *Store) Load() (*Artifact, error) {
	for _, name := range []string{modelFile, scalerFile, featuresFile, metadataFile} {
		if _, err := os.Stat(filepath.Join(s.dir, name)); err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%w: %s", ErrMissing, name)
			}
			return nil, fmt.Errorf("checking artifact %s: %w", name, err)
		}
	}

	a := &Artifact{
		Model:  &neural.Snapshot{},
		Scaler: &neural.StandardScaler{},
	}
	if err := readGob(filepath.Join(s.dir, modelFile), a.Model); err != nil {
		return nil, fmt.Errorf("loading model: %w", err)
	}
	if err := readGob(filepath.Join(s.dir, scalerFile), a.Scaler); err != nil {
		return nil, fmt.Errorf("loading scaler: %w", err)
	}
	if err := readJSON(filepath.Join(s.dir, featuresFile), &a.FeatureNames); err != nil {
		return nil, fmt.Errorf("loading feature names: %w", err)
	}
	if err := readJSON(filepath.Join(s.dir, metadataFile), &a.Metadata); err != nil {
		return nil, fmt.Errorf("loading metadata: %w", err)
	}
	if len(a.FeatureNames) == 0 {
		return nil, fmt.Errorf("loading feature names: empty feature list")
	}
	return a, nil
}

// Exists reports whether a complete artifact set is present.
func (s *Store) Exists() bool {
	for _, name := range []string{modelFile, scalerFile, featuresFile, metadataFile} {
		if _, err := os.Stat(filepath.Join(s.dir, name)); err != nil {
			return false
		}
	}
	return true
}

func writeGob(path string, v interface{}) error {
	return writeFile(path, func(f *os.File) error {
		return gob.NewEncoder(f).Encode(v)
	})
}

func writeJSON(path string, v interface{}) error {
	return writeFile(path, func(f *os.File) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	})
}

func writeFile(path string, encode func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func readGob(path string, v interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewDecoder(f).Decode(v)
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
