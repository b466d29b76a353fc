// ABOUTME: Multilayer perceptron classifier with Adam, minibatches, early stopping
// ABOUTME: Engine-agnostic: identical behavior on the dense and naive engines
package neural

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// ErrNotFitted is returned when predict methods run before Fit.
var ErrNotFitted = errors.New("model is not fitted")

// MLP is a feed-forward network trained with softmax cross-entropy, L2
// regularization, and the Adam optimizer.
type MLP struct {
	cfg    Config
	engine Engine

	weights [][][]float64 // per layer, [in][out]
	biases  [][]float64   // per layer, [out]
	classes []int
	nIter   int
	loss    float64
	fitted  bool
}

// NewMLP builds an unfitted network. A nil engine defaults to the dense one.
func NewMLP(cfg Config, engine Engine) *MLP {
	cfg.applyDefaults()
	if engine == nil {
		engine = NewDenseEngine()
	}
	return &MLP{cfg: cfg, engine: engine}
}

// Config returns the hyperparameters the network was built with.
func (m *MLP) Config() Config { return m.cfg }

// EngineName reports which math engine the network currently uses.
func (m *MLP) EngineName() string { return m.engine.Name() }

// SetEngine swaps the math engine. Safe on a fitted model; predictions are
// unchanged because engines are numerically interchangeable.
func (m *MLP) SetEngine(engine Engine) { m.engine = engine }

// NIter returns the number of training epochs actually run.
func (m *MLP) NIter() int { return m.nIter }

// Loss returns the final training loss.
func (m *MLP) Loss() float64 { return m.loss }

// Classes returns the class labels seen during fitting, ascending.
func (m *MLP) Classes() []int {
	out := make([]int, len(m.classes))
	copy(out, m.classes)
	return out
}

// FirstLayerWeights returns the input-to-first-hidden weight matrix.
func (m *MLP) FirstLayerWeights() ([][]float64, bool) {
	if !m.fitted || len(m.weights) == 0 {
		return nil, false
	}
	return m.weights[0], true
}

// Fit trains the network. X is row-major samples; y holds integer class labels.
func (m *MLP) Fit(X [][]float64, y []int) error {
	if len(X) == 0 || len(X) != len(y) {
		return fmt.Errorf("fit: need equal non-zero sample and label counts, got %d and %d", len(X), len(y))
	}
	nFeatures := len(X[0])
	if nFeatures == 0 {
		return errors.New("fit: samples have no features")
	}

	m.classes = uniqueSorted(y)
	classIndex := make(map[int]int, len(m.classes))
	for i, c := range m.classes {
		classIndex[c] = i
	}
	targets := make([]int, len(y))
	for i, label := range y {
		targets[i] = classIndex[label]
	}

	rng := rand.New(rand.NewSource(m.cfg.Seed))

	trainX, trainY := X, targets
	var valX [][]float64
	var valY []int
	if m.cfg.EarlyStopping {
		trainX, trainY, valX, valY = holdout(X, targets, m.cfg.ValidationFraction, rng)
		if len(valX) == 0 || len(trainX) == 0 {
			// Too few samples to carve a validation split from.
			trainX, trainY = X, targets
			valX, valY = nil, nil
		}
	}

	m.initParams(nFeatures, rng)

	opt := newAdam(m.weights, m.biases, m.cfg.LearningRateInit)

	batchSize := m.cfg.BatchSize
	if batchSize <= 0 {
		batchSize = min(200, len(trainX))
	}

	order := make([]int, len(trainX))
	for i := range order {
		order[i] = i
	}

	bestScore := math.Inf(-1)
	bestLoss := math.Inf(1)
	noImprove := 0
	var bestWeights [][][]float64
	var bestBiases [][]float64

	for epoch := 0; epoch < m.cfg.MaxIter; epoch++ {
		rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

		epochLoss := 0.0
		for start := 0; start < len(order); start += batchSize {
			end := min(start+batchSize, len(order))
			batchX := make([][]float64, 0, end-start)
			batchY := make([]int, 0, end-start)
			for _, idx := range order[start:end] {
				batchX = append(batchX, trainX[idx])
				batchY = append(batchY, trainY[idx])
			}

			loss, err := m.step(batchX, batchY, opt, len(trainX))
			if err != nil {
				return fmt.Errorf("fit: %w", err)
			}
			epochLoss += loss * float64(len(batchX))
		}
		epochLoss /= float64(len(trainX))
		m.loss = epochLoss
		m.nIter = epoch + 1

		if valX != nil {
			score, err := m.accuracyOn(valX, valY)
			if err != nil {
				return fmt.Errorf("fit: %w", err)
			}
			if score > bestScore+m.cfg.Tol {
				bestScore = score
				noImprove = 0
				bestWeights, bestBiases = cloneParams(m.weights, m.biases)
			} else {
				noImprove++
			}
		} else {
			if epochLoss < bestLoss-m.cfg.Tol {
				bestLoss = epochLoss
				noImprove = 0
			} else {
				noImprove++
			}
		}
		if noImprove >= m.cfg.Patience {
			break
		}
	}

	if bestWeights != nil {
		m.weights, m.biases = bestWeights, bestBiases
	}
	m.fitted = true
	return nil
}

// PredictProba returns per-class probabilities in Classes() order.
func (m *MLP) PredictProba(X [][]float64) ([][]float64, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	if len(X) == 0 {
		return nil, errors.New("predict: no samples")
	}
	if len(X[0]) != len(m.weights[0]) {
		return nil, fmt.Errorf("predict: sample has %d features, model expects %d", len(X[0]), len(m.weights[0]))
	}
	activations, _, err := m.forward(X)
	if err != nil {
		return nil, err
	}
	return activations[len(activations)-1], nil
}

// Predict returns the most probable class label for each sample.
func (m *MLP) Predict(X [][]float64) ([]int, error) {
	probs, err := m.PredictProba(X)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(probs))
	for i, p := range probs {
		out[i] = m.classes[argmax(p)]
	}
	return out, nil
}

// step runs one minibatch forward/backward pass and applies the Adam update.
// Returns the batch loss including the L2 penalty.
func (m *MLP) step(X [][]float64, y []int, opt *adam, nTrain int) (float64, error) {
	activations, preActs, err := m.forward(X)
	if err != nil {
		return 0, err
	}
	probs := activations[len(activations)-1]
	batch := float64(len(X))

	loss := 0.0
	for i, target := range y {
		loss -= math.Log(math.Max(probs[i][target], 1e-12))
	}
	loss /= batch
	l2 := 0.0
	for _, layer := range m.weights {
		for _, row := range layer {
			for _, w := range row {
				l2 += w * w
			}
		}
	}
	loss += m.cfg.Alpha * l2 / (2 * float64(nTrain))

	// Output delta: (softmax - onehot) / batch.
	delta := make([][]float64, len(X))
	for i := range delta {
		row := make([]float64, len(m.classes))
		copy(row, probs[i])
		row[y[i]] -= 1
		for j := range row {
			row[j] /= batch
		}
		delta[i] = row
	}

	reg := m.cfg.Alpha / float64(nTrain)
	for layer := len(m.weights) - 1; layer >= 0; layer-- {
		gradW, err := m.engine.MatMul(transpose(activations[layer]), delta)
		if err != nil {
			return 0, err
		}
		for i, row := range gradW {
			for j := range row {
				row[j] += reg * m.weights[layer][i][j]
			}
		}
		gradB := make([]float64, len(delta[0]))
		for _, row := range delta {
			for j, v := range row {
				gradB[j] += v
			}
		}

		if layer > 0 {
			prev, err := m.engine.MatMul(delta, transpose(m.weights[layer]))
			if err != nil {
				return 0, err
			}
			for i, row := range prev {
				for j := range row {
					row[j] *= activationGrad(m.cfg.Activation, preActs[layer-1][i][j])
				}
			}
			delta = prev
		}

		opt.update(layer, m.weights[layer], m.biases[layer], gradW, gradB)
	}

	return loss, nil
}

// forward returns the post-activation outputs of every layer (index 0 is the
// input itself) and the pre-activation values of the hidden layers.
func (m *MLP) forward(X [][]float64) (activations [][][]float64, preActs [][][]float64, err error) {
	activations = make([][][]float64, 0, len(m.weights)+1)
	activations = append(activations, X)
	preActs = make([][][]float64, 0, len(m.weights)-1)

	current := X
	for layer := 0; layer < len(m.weights); layer++ {
		z, err := m.engine.MatMul(current, m.weights[layer])
		if err != nil {
			return nil, nil, err
		}
		for _, row := range z {
			for j := range row {
				row[j] += m.biases[layer][j]
			}
		}

		if layer == len(m.weights)-1 {
			for _, row := range z {
				softmaxInPlace(row)
			}
		} else {
			preActs = append(preActs, deepCopy(z))
			for _, row := range z {
				for j := range row {
					row[j] = activate(m.cfg.Activation, row[j])
				}
			}
		}
		activations = append(activations, z)
		current = z
	}
	return activations, preActs, nil
}

func (m *MLP) accuracyOn(X [][]float64, y []int) (float64, error) {
	activations, _, err := m.forward(X)
	if err != nil {
		return 0, err
	}
	probs := activations[len(activations)-1]
	correct := 0
	for i, p := range probs {
		if argmax(p) == y[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(y)), nil
}

// initParams uses Glorot uniform initialization.
func (m *MLP) initParams(nFeatures int, rng *rand.Rand) {
	sizes := make([]int, 0, len(m.cfg.HiddenLayerSizes)+2)
	sizes = append(sizes, nFeatures)
	sizes = append(sizes, m.cfg.HiddenLayerSizes...)
	sizes = append(sizes, len(m.classes))

	m.weights = make([][][]float64, len(sizes)-1)
	m.biases = make([][]float64, len(sizes)-1)
	for layer := 0; layer < len(sizes)-1; layer++ {
		in, out := sizes[layer], sizes[layer+1]
		bound := math.Sqrt(6.0 / float64(in+out))
		w := make([][]float64, in)
		for i := range w {
			row := make([]float64, out)
			for j := range row {
				row[j] = (rng.Float64()*2 - 1) * bound
			}
			w[i] = row
		}
		m.weights[layer] = w
		m.biases[layer] = make([]float64, out)
	}
}

func activate(a Activation, z float64) float64 {
	switch a {
	case ActivationTanh:
		return math.Tanh(z)
	default:
		return math.Max(0, z)
	}
}

func activationGrad(a Activation, z float64) float64 {
	switch a {
	case ActivationTanh:
		t := math.Tanh(z)
		return 1 - t*t
	default:
		if z > 0 {
			return 1
		}
		return 0
	}
}

func softmaxInPlace(row []float64) {
	maxV := row[0]
	for _, v := range row[1:] {
		if v > maxV {
			maxV = v
		}
	}
	sum := 0.0
	for j, v := range row {
		row[j] = math.Exp(v - maxV)
		sum += row[j]
	}
	for j := range row {
		row[j] /= sum
	}
}

// holdout carves a seeded validation split off the end of a shuffle.
func holdout(X [][]float64, y []int, fraction float64, rng *rand.Rand) (trainX [][]float64, trainY []int, valX [][]float64, valY []int) {
	n := len(X)
	nVal := int(math.Round(float64(n) * fraction))
	if nVal < 1 || nVal >= n {
		return X, y, nil, nil
	}
	perm := rng.Perm(n)
	for i, idx := range perm {
		if i < n-nVal {
			trainX = append(trainX, X[idx])
			trainY = append(trainY, y[idx])
		} else {
			valX = append(valX, X[idx])
			valY = append(valY, y[idx])
		}
	}
	return trainX, trainY, valX, valY
}

func uniqueSorted(y []int) []int {
	seen := make(map[int]bool)
	var out []int
	for _, v := range y {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Ints(out)
	return out
}

func argmax(row []float64) int {
	best := 0
	for i, v := range row {
		if v > row[best] {
			best = i
		}
	}
	return best
}

func deepCopy(a [][]float64) [][]float64 {
	out := make([][]float64, len(a))
	for i, row := range a {
		out[i] = make([]float64, len(row))
		copy(out[i], row)
	}
	return out
}

func cloneParams(weights [][][]float64, biases [][]float64) ([][][]float64, [][]float64) {
	w := make([][][]float64, len(weights))
	for i, layer := range weights {
		w[i] = deepCopy(layer)
	}
	b := make([][]float64, len(biases))
	for i, layer := range biases {
		b[i] = make([]float64, len(layer))
		copy(b[i], layer)
	}
	return w, b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
