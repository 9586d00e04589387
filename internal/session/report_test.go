package session

import (
	"math"
	"strings"
	"testing"

	"datascope/internal/analysis"
	"datascope/internal/models"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reportDataset() *models.Dataset {
	frame := dataframe.New(
		series.New([]string{"ann", "bob", "cy"}, series.String, "name"),
		series.New([]string{"31", "NaN", "27"}, series.Int, "age"),
		series.New([]float64{1.5, 2.5, math.NaN()}, series.Float, "score"),
	)
	return models.NewDataset(frame, "/tmp/people.csv", "people.csv", ',')
}

func TestFormatInfoStructure(t *testing.T) {
	dataset := reportDataset()
	text := formatInfo(dataset, analysis.Info(dataset))

	assert.True(t, strings.HasPrefix(text, "RangeIndex: 3 entries\n"))
	assert.Contains(t, text, "Data columns (total 3 columns):")
	assert.Contains(t, text, "Non-Null Count")
	assert.Contains(t, text, "2 non-null")
	assert.Contains(t, text, "3 non-null")
	assert.Contains(t, text, "dtypes: string(1), int(1), float(1)")
	assert.Contains(t, text, "missing cells: 2")
}

func TestFormatInfoListsColumnsInOrder(t *testing.T) {
	dataset := reportDataset()
	text := formatInfo(dataset, analysis.Info(dataset))

	name := strings.Index(text, "name")
	age := strings.Index(text, "age")
	score := strings.Index(text, "score")
	require.Positive(t, name)
	assert.Less(t, name, age)
	assert.Less(t, age, score)
}

func TestFormatTypeTallyGroupsInFirstAppearanceOrder(t *testing.T) {
	infos := []analysis.ColumnInfo{
		{Name: "a", Type: "int"},
		{Name: "b", Type: "string"},
		{Name: "c", Type: "int"},
	}

	assert.Equal(t, "int(2), string(1)", formatTypeTally(infos))
}

func TestFormatSummaryTable(t *testing.T) {
	dataset := reportDataset()

	summaries, err := analysis.Describe(dataset)
	require.NoError(t, err)

	text := formatSummary(summaries)

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	require.Len(t, lines, 9, "a header line plus eight statistic rows")
	assert.Contains(t, lines[0], "age")
	assert.Contains(t, lines[0], "score")

	for _, label := range []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"} {
		assert.Contains(t, text, label)
	}

	assert.Contains(t, text, "29.000000", "mean age over the observed cells")
	assert.Contains(t, text, "2.000000", "mean score skips the missing cell")
}

func TestFormatStat(t *testing.T) {
	assert.Equal(t, "NaN", formatStat(math.NaN()))
	assert.Equal(t, "2.500000", formatStat(2.5))
	assert.Equal(t, "0.000000", formatStat(0))
}
