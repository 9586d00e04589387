package analysis

import (
	"fmt"
	"math"

	"datascope/internal/models"

	"gonum.org/v1/gonum/stat"
)

// CorrelationMatrix holds the Pearson correlation of every numeric
// column pair. Values[i][j] refers to Columns[i] and Columns[j]; cells
// with fewer than two pairwise-complete observations, or involving a
// constant column, are NaN.
type CorrelationMatrix struct {
	Columns []string
	Values  [][]float64
}

// Correlation computes the pairwise-complete Pearson correlation
// matrix over the numeric columns.
func Correlation(dataset *models.Dataset) (*CorrelationMatrix, error) {
	numeric := dataset.NumericColumns()
	if len(numeric) == 0 {
		return nil, fmt.Errorf("no numeric columns to correlate")
	}

	columns := make([][]float64, len(numeric))
	for i, name := range numeric {
		columns[i] = dataset.Frame.Col(name).Float()
	}

	n := len(numeric)
	values := make([][]float64, n)
	for i := range values {
		values[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			r := pairwiseCorrelation(columns[i], columns[j])
			values[i][j] = r
			values[j][i] = r
		}
	}

	return &CorrelationMatrix{Columns: numeric, Values: values}, nil
}

// pairwiseCorrelation correlates the rows where both columns are
// observed.
func pairwiseCorrelation(x, y []float64) float64 {
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}

	if len(xs) < 2 {
		return math.NaN()
	}
	return stat.Correlation(xs, ys, nil)
}
