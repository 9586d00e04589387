package dataio

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"datascope/internal/logger"

	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() logger.Logger {
	return logger.NewZerolog(io.Discard, logger.ErrorLevel)
}

func TestLoaderDetectsTypes(t *testing.T) {
	loader := NewLoader(testLogger())

	input := "name,age,score\nann,31,1.5\nbob,27,2.25\n"
	ds, err := loader.Load(context.Background(), strings.NewReader(input), "/tmp/people.csv", "people.csv")
	require.NoError(t, err)

	assert.Equal(t, 2, ds.Rows())
	assert.Equal(t, []string{"name", "age", "score"}, ds.Columns())
	assert.Equal(t, []string{"age", "score"}, ds.NumericColumns())
	assert.Equal(t, "/tmp/people.csv", ds.SourcePath)
	assert.Equal(t, "people.csv", ds.SourceName)
	assert.Equal(t, ',', ds.Delimiter)

	types := ds.Frame.Types()
	assert.Equal(t, series.String, types[0])
	assert.Equal(t, series.Int, types[1])
	assert.Equal(t, series.Float, types[2])
}

func TestLoaderTreatsTokensAsMissing(t *testing.T) {
	loader := NewLoader(testLogger())

	input := "a,b,c\n1,,x\nNA,2,null\n3,N/A,y\n"
	ds, err := loader.Load(context.Background(), strings.NewReader(input), "", "gaps.csv")
	require.NoError(t, err)

	assert.Equal(t, 3, ds.Rows())
	assert.Equal(t, 4, ds.MissingCells())
	assert.Equal(t, []string{"a", "b"}, ds.NumericColumns(),
		"missing markers must not demote numeric columns to string")
}

func TestLoaderSniffsSemicolon(t *testing.T) {
	loader := NewLoader(testLogger())

	ds, err := loader.Load(context.Background(), strings.NewReader("a;b\n1;2\n"), "", "semi.csv")
	require.NoError(t, err)

	assert.Equal(t, ';', ds.Delimiter)
	assert.Equal(t, []string{"a", "b"}, ds.Columns())
	assert.Equal(t, 1, ds.Rows())
}

func TestLoaderHeaderOnlyFile(t *testing.T) {
	loader := NewLoader(testLogger())

	ds, err := loader.Load(context.Background(), strings.NewReader("a,b,c\n"), "", "bare.csv")
	require.NoError(t, err)

	assert.Equal(t, 0, ds.Rows())
	assert.Equal(t, []string{"a", "b", "c"}, ds.Columns())
}

func TestLoaderRejectsEmptyFile(t *testing.T) {
	loader := NewLoader(testLogger())

	_, err := loader.Load(context.Background(), strings.NewReader(""), "", "void.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestLoaderHonorsContext(t *testing.T) {
	loader := NewLoader(testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := loader.Load(ctx, strings.NewReader("a\n1\n"), "", "late.csv")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoaderDecodesUTF16(t *testing.T) {
	loader := NewLoader(testLogger())

	payload := []byte{0xFF, 0xFE}
	for _, r := range "a,b\n1,2\n" {
		payload = append(payload, byte(r), 0x00)
	}

	ds, err := loader.Load(context.Background(), bytes.NewReader(payload), "", "wide.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ds.Columns())
	assert.Equal(t, 1, ds.Rows())
}
