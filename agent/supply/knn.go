package supply

import (
	"fmt"
	"math"
	"sort"

	contractx "github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/contract"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

const defaultNeighbors = 5

// standardizer z-scores each column with the sample standard deviation;
// constant columns keep unit scale.
type standardizer struct {
	mean []float64
	std  []float64
}

func fitStandardizer(x [][]float64) standardizer {
	data := mat.NewDense(len(x), len(x[0]), nil)
	for i, row := range x {
		data.SetRow(i, row)
	}

	d := len(x[0])
	s := standardizer{mean: make([]float64, d), std: make([]float64, d)}
	col := make([]float64, len(x))
	for j := 0; j < d; j++ {
		mat.Col(col, j, data)
		mean, std := stat.MeanStdDev(col, nil)
		if math.IsNaN(std) || std == 0 {
			std = 1
		}
		s.mean[j], s.std[j] = mean, std
	}
	return s
}

func (s standardizer) apply(row []float64) []float64 {
	out := make([]float64, len(row))
	for j, v := range row {
		out[j] = (v - s.mean[j]) / s.std[j]
	}
	return out
}

// knn is a k-nearest-neighbour model over standardized features.
type knn struct {
	k     int
	x     [][]float64
	y     []float64
	scale standardizer
}

func fitKNN(x [][]float64, y []float64, k int) (*knn, error) {
	if len(x) == 0 || len(x) != len(y) {
		return nil, fmt.Errorf("%w: need matching non-empty training rows, got x=%d y=%d", contractx.ErrInsufficientData, len(x), len(y))
	}
	if k <= 0 {
		k = defaultNeighbors
	}
	if k > len(x) {
		k = len(x)
	}

	scale := fitStandardizer(x)
	scaled := make([][]float64, len(x))
	for i, row := range x {
		scaled[i] = scale.apply(row)
	}
	return &knn{k: k, x: scaled, y: y, scale: scale}, nil
}

func (m *knn) neighbors(query []float64) []int {
	q := m.scale.apply(query)
	idx := make([]int, len(m.x))
	dist := make([]float64, len(m.x))
	for i, row := range m.x {
		idx[i] = i
		for j, v := range row {
			d := v - q[j]
			dist[i] += d * d
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return dist[idx[a]] < dist[idx[b]]
	})
	return idx[:m.k]
}

// regress returns the mean target of the nearest neighbours.
func (m *knn) regress(query []float64) float64 {
	var sum float64
	nn := m.neighbors(query)
	for _, i := range nn {
		sum += m.y[i]
	}
	return sum / float64(len(nn))
}

// probability returns the share of nearest neighbours labelled positive (target >= 0.5).
func (m *knn) probability(query []float64) float64 {
	var positive int
	nn := m.neighbors(query)
	for _, i := range nn {
		if m.y[i] >= 0.5 {
			positive++
		}
	}
	return float64(positive) / float64(len(nn))
}
