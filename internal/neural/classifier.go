// ABOUTME: Classifier contract and training configuration for the MLP
// ABOUTME: One interface, two math engines, identical fit/predict semantics
package neural

// Activation names a hidden-layer activation function.
type Activation string

const (
	ActivationReLU Activation = "relu"
	ActivationTanh Activation = "tanh"
)

// Classifier is the contract every model backend implements. Fit and the
// predict methods must behave identically across engines; the engine only
// changes how the arithmetic is carried out.
type Classifier interface {
	Fit(X [][]float64, y []int) error
	Predict(X [][]float64) ([]int, error)
	PredictProba(X [][]float64) ([][]float64, error)
	Classes() []int

	// FirstLayerWeights exposes input-to-first-hidden weights for feature
	// attribution. The second return is false when the model type cannot
	// provide them.
	FirstLayerWeights() ([][]float64, bool)
}

// Config holds the MLP hyperparameters. Zero values are filled in by
// DefaultConfig-style application inside NewMLP.
type Config struct {
	HiddenLayerSizes   []int
	Activation         Activation
	Alpha              float64 // L2 regularization strength
	LearningRateInit   float64
	BatchSize          int // 0 means auto: min(200, n samples)
	MaxIter            int
	Seed               int64
	EarlyStopping      bool
	ValidationFraction float64
	Patience           int     // epochs without improvement before stopping
	Tol                float64 // minimum improvement that resets patience
}

// DefaultConfig mirrors the production architecture: three hidden layers,
// ReLU, Adam with L2 0.001, early stopping on a 10% validation split.
func DefaultConfig() Config {
	return Config{
		HiddenLayerSizes:   []int{64, 32, 16},
		Activation:         ActivationReLU,
		Alpha:              0.001,
		LearningRateInit:   0.001,
		MaxIter:            500,
		Seed:               42,
		EarlyStopping:      true,
		ValidationFraction: 0.1,
		Patience:           10,
		Tol:                1e-4,
	}
}

func (c *Config) applyDefaults() {
	if len(c.HiddenLayerSizes) == 0 {
		c.HiddenLayerSizes = []int{64, 32, 16}
	}
	if c.Activation == "" {
		c.Activation = ActivationReLU
	}
	if c.LearningRateInit == 0 {
		c.LearningRateInit = 0.001
	}
	if c.MaxIter == 0 {
		c.MaxIter = 500
	}
	if c.ValidationFraction == 0 {
		c.ValidationFraction = 0.1
	}
	if c.Patience == 0 {
		c.Patience = 10
	}
	if c.Tol == 0 {
		c.Tol = 1e-4
	}
}
