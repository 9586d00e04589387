package dataio

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaverWritesHeaderAndRows(t *testing.T) {
	loader := NewLoader(testLogger())
	saver := NewSaver(testLogger())

	ds, err := loader.Load(context.Background(), strings.NewReader("a,b\n1,x\n2,y\n"), "", "in.csv")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, saver.Save(context.Background(), &buf, ds, "out.csv"))

	assert.Equal(t, "a,b\n1,x\n2,y\n", buf.String())
}

func TestSaverWritesMissingAsNaN(t *testing.T) {
	loader := NewLoader(testLogger())
	saver := NewSaver(testLogger())

	ds, err := loader.Load(context.Background(), strings.NewReader("a,b\n1,\n"), "", "in.csv")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, saver.Save(context.Background(), &buf, ds, "out.csv"))

	assert.Equal(t, "a,b\n1,NaN\n", buf.String())
}

func TestSaverRejectsNilDataset(t *testing.T) {
	saver := NewSaver(testLogger())

	err := saver.Save(context.Background(), &bytes.Buffer{}, nil, "out.csv")
	require.Error(t, err)
}

func TestSaverHonorsContext(t *testing.T) {
	loader := NewLoader(testLogger())
	saver := NewSaver(testLogger())

	ds, err := loader.Load(context.Background(), strings.NewReader("a\n1\n"), "", "in.csv")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	assert.ErrorIs(t, saver.Save(ctx, &buf, ds, "out.csv"), context.Canceled)
	assert.Zero(t, buf.Len())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	loader := NewLoader(testLogger())
	saver := NewSaver(testLogger())

	original := "name,age,score\nann,31,1.5\nbob,NaN,2.25\n"
	ds, err := loader.Load(context.Background(), strings.NewReader(original), "", "people.csv")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, saver.Save(context.Background(), &buf, ds, "people.csv"))

	reloaded, err := loader.Load(context.Background(), &buf, "", "people.csv")
	require.NoError(t, err)

	assert.Equal(t, ds.Columns(), reloaded.Columns())
	assert.Equal(t, ds.Rows(), reloaded.Rows())
	assert.Equal(t, ds.MissingCells(), reloaded.MissingCells())
	assert.Equal(t, ds.Frame.Records(), reloaded.Frame.Records())
}
