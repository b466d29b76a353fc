// ABOUTME: Math engines carry out the MLP's matrix arithmetic
// ABOUTME: Naive engine is the portable fallback; the dense engine uses gonum
package neural

import "fmt"

// Engine performs the matrix products the network needs. Implementations must
// be numerically interchangeable: swapping engines on a fitted model must not
// change predictions beyond floating-point noise.
type Engine interface {
	Name() string
	// MatMul returns a·b where a is m×k and b is k×n.
	MatMul(a, b [][]float64) ([][]float64, error)
}

// NaiveEngine multiplies with plain loops. It has no dependencies and serves
// as the fallback when the dense engine fails.
type NaiveEngine struct{}

// NewNaiveEngine returns the portable loop engine.
func NewNaiveEngine() *NaiveEngine { return &NaiveEngine{} }

func (e *NaiveEngine) Name() string { return "naive" }

func (e *NaiveEngine) MatMul(a, b [][]float64) ([][]float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, fmt.Errorf("matmul: empty operand")
	}
	k := len(a[0])
	if k != len(b) {
		return nil, fmt.Errorf("matmul: inner dimensions %d and %d do not match", k, len(b))
	}
	n := len(b[0])
	out := make([][]float64, len(a))
	for i, row := range a {
		outRow := make([]float64, n)
		for p, av := range row {
			if av == 0 {
				continue
			}
			brow := b[p]
			for j := 0; j < n; j++ {
				outRow[j] += av * brow[j]
			}
		}
		out[i] = outRow
	}
	return out, nil
}

// transpose returns a^T.
func transpose(a [][]float64) [][]float64 {
	if len(a) == 0 {
		return nil
	}
	rows, cols := len(a), len(a[0])
	out := make([][]float64, cols)
	for j := 0; j < cols; j++ {
		out[j] = make([]float64, rows)
		for i := 0; i < rows; i++ {
			out[j][i] = a[i][j]
		}
	}
	return out
}
