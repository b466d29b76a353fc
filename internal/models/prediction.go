// ABOUTME: Prediction is the structured result returned by the risk predictor
// ABOUTME: ToMap flattens it to plain data for the serving boundary
package models

// FeatureWeight pairs a feature name with its contribution score.
type FeatureWeight struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Prediction is a single risk classification result.
type Prediction struct {
	RiskLevel         RiskLevel       `json:"risk_level"`
	Confidence        float64         `json:"confidence"`
	ProbabilityLow    float64         `json:"probability_low_risk"`
	ProbabilityMedium float64         `json:"probability_medium_risk"`
	ProbabilityHigh   float64         `json:"probability_high_risk"`
	TopRiskFactors    []FeatureWeight `json:"top_risk_factors"`
	Engine            string          `json:"engine,omitempty"`
}

// ToMap flattens the prediction into string-keyed plain data, the only shape
// that crosses into callers outside this module.
func (p *Prediction) ToMap() map[string]interface{} {
	factors := make([]map[string]interface{}, 0, len(p.TopRiskFactors))
	for _, f := range p.TopRiskFactors {
		factors = append(factors, map[string]interface{}{
			"name":  f.Name,
			"score": f.Score,
		})
	}
	return map[string]interface{}{
		"risk_level":              string(p.RiskLevel),
		"confidence":              p.Confidence,
		"probability_low_risk":    p.ProbabilityLow,
		"probability_medium_risk": p.ProbabilityMedium,
		"probability_high_risk":   p.ProbabilityHigh,
		"top_risk_factors":        factors,
	}
}
