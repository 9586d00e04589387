package analysis

import (
	"math"
	"testing"

	"datascope/internal/models"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datasetOf(columns ...series.Series) *models.Dataset {
	return models.NewDataset(dataframe.New(columns...), "/tmp/t.csv", "t.csv", ',')
}

func TestInfoCountsMissingPerColumn(t *testing.T) {
	ds := datasetOf(
		series.New([]string{"1", "NaN", "3"}, series.Int, "a"),
		series.New([]string{"x", "y", "z"}, series.String, "b"),
	)

	infos := Info(ds)
	require.Len(t, infos, 2)

	assert.Equal(t, "a", infos[0].Name)
	assert.Equal(t, "int", infos[0].Type)
	assert.Equal(t, 2, infos[0].NonMissing)
	assert.Equal(t, 1, infos[0].Missing)

	assert.Equal(t, "b", infos[1].Name)
	assert.Equal(t, "string", infos[1].Type)
	assert.Equal(t, 3, infos[1].NonMissing)
	assert.Equal(t, 0, infos[1].Missing)
}

func TestDescribeComputesSummaryStatistics(t *testing.T) {
	ds := datasetOf(
		series.New([]float64{1, 2, 3, 4}, series.Float, "v"),
	)

	summaries, err := Describe(ds)
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	s := summaries[0]
	assert.Equal(t, "v", s.Name)
	assert.Equal(t, 4, s.Count)
	assert.InDelta(t, 2.5, s.Mean, 1e-12)
	assert.InDelta(t, 1.2909944487358056, s.Std, 1e-12)
	assert.InDelta(t, 1.0, s.Min, 1e-12)
	assert.InDelta(t, 1.75, s.Q25, 1e-12)
	assert.InDelta(t, 2.5, s.Median, 1e-12)
	assert.InDelta(t, 3.25, s.Q75, 1e-12)
	assert.InDelta(t, 4.0, s.Max, 1e-12)
}

func TestDescribeExcludesMissingCells(t *testing.T) {
	ds := datasetOf(
		series.New([]string{"10", "NaN", "30"}, series.Int, "v"),
	)

	summaries, err := Describe(ds)
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	s := summaries[0]
	assert.Equal(t, 2, s.Count)
	assert.InDelta(t, 20.0, s.Mean, 1e-12)
	assert.InDelta(t, 10.0, s.Min, 1e-12)
	assert.InDelta(t, 30.0, s.Max, 1e-12)
	assert.InDelta(t, 20.0, s.Median, 1e-12)
}

func TestDescribeSingleObservation(t *testing.T) {
	ds := datasetOf(
		series.New([]float64{7}, series.Float, "v"),
	)

	summaries, err := Describe(ds)
	require.NoError(t, err)

	s := summaries[0]
	assert.Equal(t, 1, s.Count)
	assert.InDelta(t, 7.0, s.Mean, 1e-12)
	assert.True(t, math.IsNaN(s.Std), "std over one observation is undefined")
	assert.InDelta(t, 7.0, s.Q25, 1e-12)
	assert.InDelta(t, 7.0, s.Q75, 1e-12)
}

func TestDescribeAllMissingColumn(t *testing.T) {
	ds := datasetOf(
		series.New([]float64{math.NaN(), math.NaN()}, series.Float, "v"),
	)

	summaries, err := Describe(ds)
	require.NoError(t, err)

	s := summaries[0]
	assert.Equal(t, 0, s.Count)
	assert.True(t, math.IsNaN(s.Mean))
	assert.True(t, math.IsNaN(s.Min))
	assert.True(t, math.IsNaN(s.Max))
}

func TestDescribeRequiresNumericColumns(t *testing.T) {
	ds := datasetOf(
		series.New([]string{"x", "y"}, series.String, "label"),
	)

	_, err := Describe(ds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no numeric columns")
}

func TestQuantileInterpolation(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}

	assert.InDelta(t, 1.0, quantile(sorted, 0), 1e-12)
	assert.InDelta(t, 1.75, quantile(sorted, 0.25), 1e-12)
	assert.InDelta(t, 2.5, quantile(sorted, 0.5), 1e-12)
	assert.InDelta(t, 3.25, quantile(sorted, 0.75), 1e-12)
	assert.InDelta(t, 4.0, quantile(sorted, 1), 1e-12)
}
