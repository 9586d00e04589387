package dataio

import (
	"context"
	"fmt"
	"io"
	"time"

	"datascope/internal/logger"
	"datascope/internal/models"

	"github.com/go-gota/gota/dataframe"
)

// Saver writes a dataset back to delimited text. Output is always
// comma-separated UTF-8 with a header row and no index column.
type Saver struct {
	log logger.Logger
}

// NewSaver creates a new dataset saver.
func NewSaver(log logger.Logger) *Saver {
	return &Saver{log: log}
}

// Save writes the dataset to writer. The name argument is only used
// for logging; the writer is not closed.
func (s *Saver) Save(ctx context.Context, writer io.Writer, dataset *models.Dataset, name string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if dataset == nil {
		return fmt.Errorf("no dataset to save")
	}

	startTime := time.Now()

	if err := dataset.Frame.WriteCSV(writer, dataframe.WriteHeader(true)); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}

	s.log.Info("saver", "file saved", map[string]interface{}{
		"file":    name,
		"rows":    dataset.Rows(),
		"cols":    dataset.Cols(),
		"elapsed": time.Since(startTime).String(),
	})

	return nil
}
