// ABOUTME: Adam optimizer state and parameter updates for the MLP
// ABOUTME: Standard beta1/beta2 moments with bias correction
package neural

import "math"

const (
	adamBeta1   = 0.9
	adamBeta2   = 0.999
	adamEpsilon = 1e-8
)

type adam struct {
	lr      float64
	t       int
	nLayers int

	mW, vW [][][]float64
	mB, vB [][]float64
}

func newAdam(weights [][][]float64, biases [][]float64, lr float64) *adam {
	a := &adam{lr: lr, nLayers: len(weights)}
	a.mW = make([][][]float64, len(weights))
	a.vW = make([][][]float64, len(weights))
	a.mB = make([][]float64, len(biases))
	a.vB = make([][]float64, len(biases))
	return a
}

// update applies one Adam step to a single layer's weights and biases.
// Moment buffers are allocated lazily so the optimizer tracks whatever
// shapes the network was initialized with.
func (a *adam) update(layer int, w [][]float64, b []float64, gradW [][]float64, gradB []float64) {
	if a.mW[layer] == nil {
		a.mW[layer] = zerosLike(gradW)
		a.vW[layer] = zerosLike(gradW)
		a.mB[layer] = make([]float64, len(gradB))
		a.vB[layer] = make([]float64, len(gradB))
	}
	// Backprop updates layers from the output backwards; the step counter
	// advances once per batch, on the first layer updated.
	if layer == a.nLayers-1 {
		a.t++
	}
	t := float64(a.t)
	c1 := 1 - math.Pow(adamBeta1, t)
	c2 := 1 - math.Pow(adamBeta2, t)

	mW, vW := a.mW[layer], a.vW[layer]
	for i, row := range gradW {
		for j, g := range row {
			mW[i][j] = adamBeta1*mW[i][j] + (1-adamBeta1)*g
			vW[i][j] = adamBeta2*vW[i][j] + (1-adamBeta2)*g*g
			w[i][j] -= a.lr * (mW[i][j] / c1) / (math.Sqrt(vW[i][j]/c2) + adamEpsilon)
		}
	}

	mB, vB := a.mB[layer], a.vB[layer]
	for j, g := range gradB {
		mB[j] = adamBeta1*mB[j] + (1-adamBeta1)*g
		vB[j] = adamBeta2*vB[j] + (1-adamBeta2)*g*g
		b[j] -= a.lr * (mB[j] / c1) / (math.Sqrt(vB[j]/c2) + adamEpsilon)
	}
}

func zerosLike(a [][]float64) [][]float64 {
	out := make([][]float64, len(a))
	for i, row := range a {
		out[i] = make([]float64, len(row))
	}
	return out
}
