package analysis

import (
	"fmt"
	"math"
	"sort"

	"datascope/internal/models"

	"gonum.org/v1/gonum/stat"
)

// ColumnInfo describes one column's name, type and missing-value count.
type ColumnInfo struct {
	Name       string
	Type       string
	NonMissing int
	Missing    int
}

// Info returns per-column structure information for every column in
// the dataset, in column order.
func Info(dataset *models.Dataset) []ColumnInfo {
	names := dataset.Frame.Names()
	types := dataset.Frame.Types()

	infos := make([]ColumnInfo, 0, len(names))
	for i, name := range names {
		missing := 0
		for _, isNaN := range dataset.Frame.Col(name).IsNaN() {
			if isNaN {
				missing++
			}
		}
		infos = append(infos, ColumnInfo{
			Name:       name,
			Type:       string(types[i]),
			NonMissing: dataset.Rows() - missing,
			Missing:    missing,
		})
	}
	return infos
}

// ColumnSummary holds the eight summary statistics for one numeric
// column. Statistics over zero observations are NaN; Std over a single
// observation is NaN.
type ColumnSummary struct {
	Name   string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Median float64
	Q75    float64
	Max    float64
}

// Describe computes summary statistics for every numeric column. Std
// is the sample standard deviation; quartiles are linearly
// interpolated. Missing cells are excluded per column.
func Describe(dataset *models.Dataset) ([]ColumnSummary, error) {
	numeric := dataset.NumericColumns()
	if len(numeric) == 0 {
		return nil, fmt.Errorf("no numeric columns to summarize")
	}

	summaries := make([]ColumnSummary, 0, len(numeric))
	for _, name := range numeric {
		values := observedValues(dataset, name)
		summaries = append(summaries, summarize(name, values))
	}
	return summaries, nil
}

func summarize(name string, values []float64) ColumnSummary {
	summary := ColumnSummary{
		Name:   name,
		Count:  len(values),
		Mean:   math.NaN(),
		Std:    math.NaN(),
		Min:    math.NaN(),
		Q25:    math.NaN(),
		Median: math.NaN(),
		Q75:    math.NaN(),
		Max:    math.NaN(),
	}
	if len(values) == 0 {
		return summary
	}

	sort.Float64s(values)

	summary.Mean = stat.Mean(values, nil)
	if len(values) > 1 {
		summary.Std = stat.StdDev(values, nil)
	}
	summary.Min = values[0]
	summary.Max = values[len(values)-1]
	summary.Q25 = quantile(values, 0.25)
	summary.Median = quantile(values, 0.5)
	summary.Q75 = quantile(values, 0.75)

	return summary
}

// quantile interpolates linearly between order statistics, the
// convention dataframe libraries use for describe-style quartiles.
// sorted must be ascending and non-empty.
func quantile(sorted []float64, p float64) float64 {
	h := p * float64(len(sorted)-1)
	i := int(math.Floor(h))
	if i >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (h-float64(i))*(sorted[i+1]-sorted[i])
}

// observedValues returns the non-missing values of a column as floats.
func observedValues(dataset *models.Dataset, column string) []float64 {
	raw := dataset.Frame.Col(column).Float()

	values := make([]float64, 0, len(raw))
	for _, v := range raw {
		if !math.IsNaN(v) {
			values = append(values, v)
		}
	}
	return values
}
