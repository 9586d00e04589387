package models

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Dataset represents the loaded table together with its source metadata.
// The frame is replaced wholesale by loads and filters and rebuilt by
// the missing-data operations; it is never mutated concurrently.
type Dataset struct {
	Frame      dataframe.DataFrame
	SourcePath string
	SourceName string
	Delimiter  rune
	LoadedAt   time.Time
}

// NewDataset wraps a dataframe with its source metadata.
func NewDataset(frame dataframe.DataFrame, path, name string, delimiter rune) *Dataset {
	return &Dataset{
		Frame:      frame,
		SourcePath: path,
		SourceName: name,
		Delimiter:  delimiter,
		LoadedAt:   time.Now(),
	}
}

// WithFrame returns a copy of the dataset carrying a new frame and the
// original source metadata.
func (d *Dataset) WithFrame(frame dataframe.DataFrame) *Dataset {
	return &Dataset{
		Frame:      frame,
		SourcePath: d.SourcePath,
		SourceName: d.SourceName,
		Delimiter:  d.Delimiter,
		LoadedAt:   d.LoadedAt,
	}
}

// Rows returns the number of data rows.
func (d *Dataset) Rows() int {
	return d.Frame.Nrow()
}

// Cols returns the number of columns.
func (d *Dataset) Cols() int {
	return d.Frame.Ncol()
}

// Columns returns the column names in order.
func (d *Dataset) Columns() []string {
	return d.Frame.Names()
}

// NumericColumns returns the names of the int and float columns in order.
func (d *Dataset) NumericColumns() []string {
	names := d.Frame.Names()
	types := d.Frame.Types()

	numeric := make([]string, 0, len(names))
	for i, t := range types {
		if t == series.Int || t == series.Float {
			numeric = append(numeric, names[i])
		}
	}
	return numeric
}

// MissingCells counts the NA cells across all columns.
func (d *Dataset) MissingCells() int {
	total := 0
	for _, name := range d.Frame.Names() {
		for _, isNaN := range d.Frame.Col(name).IsNaN() {
			if isNaN {
				total++
			}
		}
	}
	return total
}

// Stats returns a snapshot of the dataset shape for display and logging.
func (d *Dataset) Stats() DatasetStats {
	return DatasetStats{
		Rows:         d.Rows(),
		Cols:         d.Cols(),
		MissingCells: d.MissingCells(),
		SourceName:   d.SourceName,
	}
}

// DatasetStats contains shape statistics about a dataset.
type DatasetStats struct {
	Rows         int
	Cols         int
	MissingCells int
	SourceName   string
}

// DatasetRepository manages the single mutable dataset shared between
// the session loop and the display refresh path.
type DatasetRepository struct {
	mu       sync.RWMutex
	current  *Dataset
	stale    bool
	revision uint64
}

// NewDatasetRepository creates an empty dataset repository.
func NewDatasetRepository() *DatasetRepository {
	return &DatasetRepository{}
}

// Set replaces the current dataset and clears any staleness mark.
func (r *DatasetRepository) Set(ds *Dataset) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.current = ds
	r.stale = false
	r.revision++
}

// Get retrieves the current dataset, or nil when nothing is loaded.
func (r *DatasetRepository) Get() *Dataset {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// MarkStale records that the source file changed on disk after loading.
func (r *DatasetRepository) MarkStale() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stale = true
}

// IsStale reports whether the source file changed since the last load.
func (r *DatasetRepository) IsStale() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.stale
}

// Revision returns a counter incremented on every Set, letting display
// code detect missed updates.
func (r *DatasetRepository) Revision() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.revision
}

// Clear removes the current dataset.
func (r *DatasetRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.current = nil
	r.stale = false
	r.revision++
}

// Shutdown releases repository state.
func (r *DatasetRepository) Shutdown() {
	r.Clear()
}

// ValidationError represents a rejected user input such as an unknown
// column name.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// NewValidationError creates a new validation error.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// Error returns the error message.
func (ve *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s '%v': %s", ve.Field, ve.Value, ve.Message)
}
