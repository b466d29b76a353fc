// ABOUTME: Tests for artifact loading and observation scoring
// ABOUTME: Trains a tiny model on DMFT-driven synthetic data to score against
package predictor

import (
	"errors"
	"math"
	"math/rand"
	"strconv"
	"testing"

	"github.com/oralsmart/riskml/internal/artifacts"
	"github.com/oralsmart/riskml/internal/models"
	"github.com/oralsmart/riskml/internal/neural"
)

// trainedStore fits a small model where high DMFT plus sugary drinks means
// high risk, then saves it to a temp artifact store.
func trainedStore(t *testing.T) *artifacts.Store {
	t.Helper()

	names := []string{"total_dmft_score", "cold_drinks_juices", "sweet_sugary_foods"}
	rng := rand.New(rand.NewSource(9))
	var X [][]float64
	var y []int
	for i := 0; i < 240; i++ {
		dmft := float64(rng.Intn(17))
		drinks := float64(rng.Intn(2))
		sweets := float64(rng.Intn(2))
		X = append(X, []float64{dmft, drinks, sweets})
		switch {
		case dmft >= 10:
			y = append(y, 2)
		case dmft >= 4 || drinks+sweets == 2:
			y = append(y, 1)
		default:
			y = append(y, 0)
		}
	}

	scaler := neural.NewStandardScaler()
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatalf("scaling: %v", err)
	}

	cfg := neural.DefaultConfig()
	cfg.HiddenLayerSizes = []int{16}
	cfg.MaxIter = 120
	cfg.EarlyStopping = false
	clf := neural.NewMLP(cfg, neural.NewDenseEngine())
	if err := clf.Fit(scaled, y); err != nil {
		t.Fatalf("fitting: %v", err)
	}
	snap, err := clf.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	store := artifacts.NewStore(t.TempDir())
	err = store.Save(&artifacts.Artifact{
		Model:        snap,
		Scaler:       scaler,
		FeatureNames: names,
		Metadata:     artifacts.Metadata{RunID: "test-run", ModelType: "mlp", FeatureCount: 3},
	})
	if err != nil {
		t.Fatalf("saving artifacts: %v", err)
	}
	return store
}

func severeTeeth() map[string]string {
	teeth := map[string]string{}
	for i := 1; i <= 12; i++ {
		teeth["tooth_"+strconv.Itoa(i)] = "1"
	}
	return teeth
}

func TestLoadWithoutArtifacts(t *testing.T) {
	store := artifacts.NewStore(t.TempDir())
	if _, err := Load(store, ""); !errors.Is(err, ErrNotTrained) {
		t.Errorf("Load() error = %v, want ErrNotTrained", err)
	}
}

func TestLoadUnknownEngine(t *testing.T) {
	store := trainedStore(t)
	if _, err := Load(store, "gpu"); err == nil {
		t.Error("Load() with unknown engine should fail")
	}
}

func TestPredictRequiresObservations(t *testing.T) {
	p, err := Load(trainedStore(t), "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, err := p.Predict(nil, nil); !errors.Is(err, ErrNoObservations) {
		t.Errorf("Predict(nil, nil) error = %v, want ErrNoObservations", err)
	}
}

func TestPredictHighRiskCase(t *testing.T) {
	p, err := Load(trainedStore(t), "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	dental := &models.DentalObservation{TeethData: severeTeeth()}
	dietary := &models.DietaryObservation{
		ColdDrinksJuices: "yes",
		SweetSugaryFoods: "yes",
	}
	pred, err := p.Predict(dental, dietary)
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}

	if pred.RiskLevel != models.RiskHigh {
		t.Errorf("RiskLevel = %q, want high for 12 decayed teeth", pred.RiskLevel)
	}
	sum := pred.ProbabilityLow + pred.ProbabilityMedium + pred.ProbabilityHigh
	if math.Abs(sum-1.0) > 1e-6 {
		t.Errorf("probabilities sum to %v, want 1", sum)
	}
	if pred.Confidence <= 0 || pred.Confidence > 1 {
		t.Errorf("Confidence = %v out of (0,1]", pred.Confidence)
	}
	if len(pred.TopRiskFactors) == 0 || len(pred.TopRiskFactors) > 5 {
		t.Errorf("got %d top factors, want 1..5", len(pred.TopRiskFactors))
	}
	if pred.Engine != "dense" {
		t.Errorf("Engine = %q, want dense", pred.Engine)
	}
}

func TestPredictLowRiskCase(t *testing.T) {
	p, err := Load(trainedStore(t), "naive")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	pred, err := p.Predict(&models.DentalObservation{}, &models.DietaryObservation{})
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if pred.RiskLevel != models.RiskLow {
		t.Errorf("RiskLevel = %q, want low for clean screenings", pred.RiskLevel)
	}
	if pred.Engine != "naive" {
		t.Errorf("Engine = %q, want naive", pred.Engine)
	}
}

func TestEnginesAgree(t *testing.T) {
	store := trainedStore(t)
	dense, err := Load(store, "dense")
	if err != nil {
		t.Fatalf("Load(dense) error = %v", err)
	}
	naive, err := Load(store, "naive")
	if err != nil {
		t.Fatalf("Load(naive) error = %v", err)
	}

	dental := &models.DentalObservation{TeethData: map[string]string{"tooth_1": "1", "tooth_2": "2"}}
	a, err := dense.Predict(dental, nil)
	if err != nil {
		t.Fatalf("dense Predict() error = %v", err)
	}
	b, err := naive.Predict(dental, nil)
	if err != nil {
		t.Fatalf("naive Predict() error = %v", err)
	}

	if a.RiskLevel != b.RiskLevel {
		t.Errorf("engines disagree on risk level: %q vs %q", a.RiskLevel, b.RiskLevel)
	}
	if math.Abs(a.ProbabilityHigh-b.ProbabilityHigh) > 1e-9 {
		t.Errorf("engines disagree on p(high): %v vs %v", a.ProbabilityHigh, b.ProbabilityHigh)
	}
}

func TestMetadataExposed(t *testing.T) {
	p, err := Load(trainedStore(t), "")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p.Metadata().RunID != "test-run" {
		t.Errorf("RunID = %q, want test-run", p.Metadata().RunID)
	}
	if len(p.FeatureNames()) != 3 {
		t.Errorf("got %d feature names, want 3", len(p.FeatureNames()))
	}
}
