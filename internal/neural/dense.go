// ABOUTME: Dense math engine backed by gonum's BLAS-accelerated mat package
// ABOUTME: Preferred at inference; the predictor falls back to naive on failure
package neural

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// DenseEngine multiplies through gonum's mat.Dense, which routes to BLAS.
type DenseEngine struct{}

// NewDenseEngine returns the gonum-backed engine.
func NewDenseEngine() *DenseEngine { return &DenseEngine{} }

func (e *DenseEngine) Name() string { return "dense" }

func (e *DenseEngine) MatMul(a, b [][]float64) ([][]float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, fmt.Errorf("matmul: empty operand")
	}
	k := len(a[0])
	if k != len(b) {
		return nil, fmt.Errorf("matmul: inner dimensions %d and %d do not match", k, len(b))
	}
	am := mat.NewDense(len(a), k, flatten(a))
	bm := mat.NewDense(k, len(b[0]), flatten(b))

	var out mat.Dense
	out.Mul(am, bm)

	rows, cols := out.Dims()
	result := make([][]float64, rows)
	for i := 0; i < rows; i++ {
		result[i] = make([]float64, cols)
		copy(result[i], out.RawRowView(i))
	}
	return result, nil
}

func flatten(a [][]float64) []float64 {
	cols := len(a[0])
	flat := make([]float64, 0, len(a)*cols)
	for _, row := range a {
		flat = append(flat, row...)
	}
	return flat
}
