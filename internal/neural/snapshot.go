// ABOUTME: Snapshot is the serializable form of a fitted MLP
// ABOUTME: Round-trips through gob without losing prediction behavior
package neural

import "errors"

// Snapshot captures everything needed to restore a fitted network. The engine
// is deliberately not part of the snapshot: it is chosen again at load time.
type Snapshot struct {
	Config  Config
	Weights [][][]float64
	Biases  [][]float64
	Classes []int
	NIter   int
	Loss    float64
}

// Snapshot exports the fitted state.
func (m *MLP) Snapshot() (*Snapshot, error) {
	if !m.fitted {
		return nil, ErrNotFitted
	}
	weights, biases := cloneParams(m.weights, m.biases)
	return &Snapshot{
		Config:  m.cfg,
		Weights: weights,
		Biases:  biases,
		Classes: m.Classes(),
		NIter:   m.nIter,
		Loss:    m.loss,
	}, nil
}

// FromSnapshot restores a fitted network onto the given engine.
func FromSnapshot(snap *Snapshot, engine Engine) (*MLP, error) {
	if snap == nil || len(snap.Weights) == 0 || len(snap.Classes) == 0 {
		return nil, errors.New("snapshot: missing weights or classes")
	}
	if len(snap.Weights) != len(snap.Biases) {
		return nil, errors.New("snapshot: weight and bias layer counts differ")
	}
	m := NewMLP(snap.Config, engine)
	m.weights, m.biases = cloneParams(snap.Weights, snap.Biases)
	m.classes = append([]int(nil), snap.Classes...)
	m.nIter = snap.NIter
	m.loss = snap.Loss
	m.fitted = true
	return m, nil
}
