package transform

import (
	"fmt"

	"datascope/internal/models"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// FilterEqual keeps exactly the rows whose cell in the named column
// string-equals value. Cells are compared in their string form, so
// typed columns match against their formatted representation. The
// result may be empty; an unknown column is a validation error and
// leaves the dataset untouched.
func FilterEqual(dataset *models.Dataset, column, value string) (*models.Dataset, error) {
	if !hasColumn(dataset, column) {
		return nil, models.NewValidationError("column", column, "column not found")
	}

	filtered := dataset.Frame.Filter(dataframe.F{
		Colname:    column,
		Comparator: series.CompFunc,
		Comparando: func(el series.Element) bool {
			return el.String() == value
		},
	})
	if filtered.Err != nil {
		return nil, fmt.Errorf("failed to filter on column %s: %w", column, filtered.Err)
	}

	return dataset.WithFrame(filtered), nil
}

func hasColumn(dataset *models.Dataset, column string) bool {
	for _, name := range dataset.Frame.Names() {
		if name == column {
			return true
		}
	}
	return false
}
