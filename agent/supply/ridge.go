package supply

import (
	"errors"
	"fmt"
	"math"

	contractx "github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/contract"
	"gonum.org/v1/gonum/mat"
)

const ridgeLambda = 1e-3

// fitRidge solves (XᵀX + λI)w = Xᵀy with an unpenalised intercept.
func fitRidge(x [][]float64, y []float64, lambda float64) ([]float64, float64, error) {
	if len(x) == 0 || len(x) != len(y) {
		return nil, 0, fmt.Errorf("%w: ridge needs matching rows, got x=%d y=%d", contractx.ErrInsufficientData, len(x), len(y))
	}

	n, d := len(x), len(x[0])+1
	design := mat.NewDense(n, d, nil)
	for i, sample := range x {
		design.SetRow(i, append(append(make([]float64, 0, d), sample...), 1))
	}

	var gram mat.Dense
	gram.Mul(design.T(), design)
	for i := 0; i < d-1; i++ {
		gram.Set(i, i, gram.At(i, i)+lambda)
	}

	var rhs mat.VecDense
	rhs.MulVec(design.T(), mat.NewVecDense(n, y))

	var sol mat.VecDense
	if err := sol.SolveVec(&gram, &rhs); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
			return nil, 0, fmt.Errorf("%w: singular ridge system: %v", contractx.ErrInsufficientData, err)
		}
	}

	weights := make([]float64, d-1)
	for i := range weights {
		weights[i] = sol.AtVec(i)
	}
	return weights, sol.AtVec(d - 1), nil
}
