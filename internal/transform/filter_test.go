package transform

import (
	"testing"

	"datascope/internal/models"

	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterEqualKeepsMatchingRows(t *testing.T) {
	ds := datasetOf(
		series.New([]string{"ann", "bob", "ann"}, series.String, "name"),
		series.New([]string{"1", "2", "3"}, series.Int, "id"),
	)

	result, err := FilterEqual(ds, "name", "ann")
	require.NoError(t, err)

	assert.Equal(t, 2, result.Rows())
	assert.Equal(t, []string{"name", "id"}, result.Columns())
	assert.Equal(t, []string{"1", "3"}, result.Frame.Col("id").Records())
}

func TestFilterEqualMatchesNumericByStringForm(t *testing.T) {
	ds := datasetOf(
		series.New([]string{"1", "2", "2"}, series.Int, "id"),
	)

	result, err := FilterEqual(ds, "id", "2")
	require.NoError(t, err)

	assert.Equal(t, 2, result.Rows())
}

func TestFilterEqualNoMatches(t *testing.T) {
	ds := datasetOf(
		series.New([]string{"ann", "bob"}, series.String, "name"),
	)

	result, err := FilterEqual(ds, "name", "zed")
	require.NoError(t, err)

	assert.Equal(t, 0, result.Rows())
	assert.Equal(t, []string{"name"}, result.Columns())
}

func TestFilterEqualValueIsExact(t *testing.T) {
	ds := datasetOf(
		series.New([]string{"ann", " ann"}, series.String, "name"),
	)

	result, err := FilterEqual(ds, "name", " ann")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Rows(), "values match verbatim, untrimmed")
}

func TestFilterEqualUnknownColumn(t *testing.T) {
	ds := datasetOf(
		series.New([]string{"ann"}, series.String, "name"),
	)

	_, err := FilterEqual(ds, "missing", "x")
	require.Error(t, err)

	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "column", validationErr.Field)
	assert.Equal(t, "missing", validationErr.Value)
}
