// ABOUTME: Loads saved artifacts and scores screening observations
// ABOUTME: Prefers the dense math engine, falls back to naive loops
package predictor

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/oralsmart/riskml/internal/artifacts"
	"github.com/oralsmart/riskml/internal/features"
	"github.com/oralsmart/riskml/internal/models"
	"github.com/oralsmart/riskml/internal/neural"
)

var (
	// ErrNotTrained means no complete artifact set exists yet.
	ErrNotTrained = errors.New("model has not been trained")
	// ErrNoObservations means both screenings were nil.
	ErrNoObservations = errors.New("at least one screening observation is required")
)

// Predictor scores observations against a previously trained model.
type Predictor struct {
	clf          *neural.MLP
	scaler       *neural.StandardScaler
	featureNames []string
	meta         artifacts.Metadata
}

// Load reads the artifact set and builds a predictor on the requested
// engine. An empty engine name means prefer dense and fall back to naive
// if the dense engine cannot be constructed.
func Load(store *artifacts.Store, engineName string) (*Predictor, error) {
	a, err := store.Load()
	if err != nil {
		if errors.Is(err, artifacts.ErrMissing) {
			return nil, fmt.Errorf("%w: %v", ErrNotTrained, err)
		}
		return nil, err
	}
	if !a.Scaler.Fitted() {
		return nil, fmt.Errorf("loading artifacts: scaler is not fitted")
	}

	engine, err := pickEngine(engineName)
	if err != nil {
		return nil, err
	}
	clf, err := neural.FromSnapshot(a.Model, engine)
	if err != nil {
		return nil, fmt.Errorf("restoring model: %w", err)
	}
	return &Predictor{
		clf:          clf,
		scaler:       a.Scaler,
		featureNames: a.FeatureNames,
		meta:         a.Metadata,
	}, nil
}

func pickEngine(name string) (neural.Engine, error) {
	switch name {
	case "", "auto", "dense":
		return neural.NewDenseEngine(), nil
	case "naive":
		return neural.NewNaiveEngine(), nil
	default:
		return nil, fmt.Errorf("unknown engine %q (want auto, dense, or naive)", name)
	}
}

// FeatureNames returns the feature order the model was trained on.
func (p *Predictor) FeatureNames() []string {
	return append([]string(nil), p.featureNames...)
}

// Metadata exposes the training-run metadata for info surfaces.
func (p *Predictor) Metadata() artifacts.Metadata { return p.meta }

// Predict encodes the observations, scales them, and classifies. Missing
// screenings encode as zeros with the availability flag cleared, the same
// treatment they get at training time.
func (p *Predictor) Predict(dental *models.DentalObservation, dietary *models.DietaryObservation) (*models.Prediction, error) {
	if dental == nil && dietary == nil {
		return nil, ErrNoObservations
	}

	featureMap := features.EncodeMap(dental, dietary)
	vector := features.Vector(featureMap, p.featureNames)

	scaled, err := p.scale(vector)
	if err != nil {
		return nil, err
	}
	probs, err := p.proba(scaled)
	if err != nil {
		return nil, err
	}

	best := 0
	for i, v := range probs {
		if v > probs[best] {
			best = i
		}
	}
	classes := p.clf.Classes()
	level, err := models.RiskLevelFromClass(classes[best])
	if err != nil {
		return nil, err
	}

	pred := &models.Prediction{
		RiskLevel:      level,
		Confidence:     probs[best],
		TopRiskFactors: p.topFactors(5),
		Engine:         p.clf.EngineName(),
	}
	for i, class := range classes {
		switch class {
		case 0:
			pred.ProbabilityLow = probs[i]
		case 1:
			pred.ProbabilityMedium = probs[i]
		case 2:
			pred.ProbabilityHigh = probs[i]
		}
	}
	return pred, nil
}

func (p *Predictor) scale(vector []float64) ([]float64, error) {
	scaled, err := p.scaler.Transform([][]float64{vector})
	if err != nil {
		return nil, fmt.Errorf("scaling observation: %w", err)
	}
	return scaled[0], nil
}

// proba runs the classifier, retrying once on the naive engine if the
// dense one fails at runtime.
func (p *Predictor) proba(scaled []float64) ([]float64, error) {
	probs, err := p.clf.PredictProba([][]float64{scaled})
	if err != nil && p.clf.EngineName() != "naive" {
		p.clf.SetEngine(neural.NewNaiveEngine())
		probs, err = p.clf.PredictProba([][]float64{scaled})
	}
	if err != nil {
		return nil, fmt.Errorf("classifying observation: %w", err)
	}
	return probs[0], nil
}

// topFactors ranks features by mean absolute first-layer weight, a cheap
// global attribution that matches how the training report surfaces them.
func (p *Predictor) topFactors(n int) []models.FeatureWeight {
	weights, ok := p.clf.FirstLayerWeights()
	if !ok || len(weights) == 0 {
		return nil
	}
	factors := make([]models.FeatureWeight, 0, len(p.featureNames))
	for i, name := range p.featureNames {
		if i >= len(weights) {
			break
		}
		var sum float64
		for _, w := range weights[i] {
			sum += math.Abs(w)
		}
		if len(weights[i]) > 0 {
			sum /= float64(len(weights[i]))
		}
		factors = append(factors, models.FeatureWeight{Name: name, Score: sum})
	}
	sort.SliceStable(factors, func(i, j int) bool { return factors[i].Score > factors[j].Score })
	if len(factors) > n {
		factors = factors[:n]
	}
	return factors
}
