package dataio

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"datascope/internal/logger"
	"datascope/internal/models"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// naTokens lists the cell values the loader treats as missing. Empty
// cells count as missing, matching the usual spreadsheet convention.
var naTokens = []string{"", "NA", "N/A", "NaN", "nan", "null", "NULL"}

// Loader reads delimited text into a dataset. The first row is always
// treated as the header; column types are detected from the values.
type Loader struct {
	log logger.Logger
}

// NewLoader creates a new dataset loader.
func NewLoader(log logger.Logger) *Loader {
	return &Loader{log: log}
}

// Load reads a delimited file from reader into a dataset. The path and
// name arguments carry source metadata for display and logging; the
// reader is consumed fully but not closed.
func (l *Loader) Load(ctx context.Context, reader io.Reader, path, name string) (*models.Dataset, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	startTime := time.Now()

	data, err := io.ReadAll(bufio.NewReader(reader))
	if err != nil {
		return nil, fmt.Errorf("failed to read file data: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("file %s is empty", name)
	}

	decoded, charset, err := decodePayload(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	delimiter := sniffDelimiter(decoded)

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	frame := dataframe.ReadCSV(
		bytes.NewReader(decoded),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(naTokens),
		dataframe.WithDelimiter(delimiter),
	)
	if frame.Err != nil {
		// A file holding nothing but a header row is still a valid
		// table: all columns, zero rows.
		headerFrame, ok := headerOnlyFrame(decoded, delimiter)
		if !ok {
			return nil, fmt.Errorf("failed to parse %s: %w", name, frame.Err)
		}
		frame = headerFrame
		if frame.Err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, frame.Err)
		}
	}

	dataset := models.NewDataset(frame, path, name, delimiter)

	l.log.Info("loader", "file loaded", map[string]interface{}{
		"file":      name,
		"rows":      dataset.Rows(),
		"cols":      dataset.Cols(),
		"columns":   dataset.Columns(),
		"charset":   charset,
		"delimiter": string(delimiter),
		"elapsed":   time.Since(startTime).String(),
	})

	return dataset, nil
}

// headerOnlyFrame builds an empty string-typed frame from a payload
// consisting of exactly one header record.
func headerOnlyFrame(data []byte, delimiter rune) (dataframe.DataFrame, bool) {
	csvReader := csv.NewReader(bytes.NewReader(data))
	csvReader.Comma = delimiter
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil || len(records) != 1 || len(records[0]) == 0 {
		return dataframe.DataFrame{}, false
	}

	columns := make([]series.Series, 0, len(records[0]))
	for _, header := range records[0] {
		columns = append(columns, series.New([]string{}, series.String, header))
	}
	return dataframe.New(columns...), true
}
