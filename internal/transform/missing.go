package transform

import (
	"fmt"
	"strconv"

	"datascope/internal/models"

	"github.com/go-gota/gota/series"
)

// DropMissing removes every row containing at least one missing cell.
// Returns the reduced dataset and the number of rows dropped.
func DropMissing(dataset *models.Dataset) (*models.Dataset, int, error) {
	frame := dataset.Frame
	nrow := frame.Nrow()
	if nrow == 0 {
		return dataset.WithFrame(frame), 0, nil
	}

	drop := make([]bool, nrow)
	for _, name := range frame.Names() {
		for i, isNaN := range frame.Col(name).IsNaN() {
			if isNaN {
				drop[i] = true
			}
		}
	}

	keep := make([]int, 0, nrow)
	for i, dropped := range drop {
		if !dropped {
			keep = append(keep, i)
		}
	}
	if len(keep) == nrow {
		return dataset.WithFrame(frame), 0, nil
	}

	subset := frame.Subset(keep)
	if subset.Err != nil {
		return nil, 0, fmt.Errorf("failed to drop rows with missing data: %w", subset.Err)
	}
	return dataset.WithFrame(subset), nrow - len(keep), nil
}

// FillMissing replaces every missing cell with literal. A column keeps
// its type when the literal parses in that type; otherwise the column
// is converted to string first, so the fill always succeeds.
// Returns the filled dataset and the number of cells replaced.
func FillMissing(dataset *models.Dataset, literal string) (*models.Dataset, int, error) {
	frame := dataset.Frame
	filled := 0

	for _, name := range frame.Names() {
		column := frame.Col(name)
		mask := column.IsNaN()

		missing := 0
		for _, isNaN := range mask {
			if isNaN {
				missing++
			}
		}
		if missing == 0 {
			continue
		}
		filled += missing

		records := column.Records()
		for i, isNaN := range mask {
			if isNaN {
				records[i] = literal
			}
		}

		colType := column.Type()
		if !literalFits(literal, colType) {
			colType = series.String
		}

		replacement := series.New(records, colType, name)
		if replacement.Err != nil {
			return nil, 0, fmt.Errorf("failed to rebuild column %s: %w", name, replacement.Err)
		}

		frame = frame.Mutate(replacement)
		if frame.Err != nil {
			return nil, 0, fmt.Errorf("failed to fill column %s: %w", name, frame.Err)
		}
	}

	return dataset.WithFrame(frame), filled, nil
}

// literalFits reports whether literal parses as a value of the given
// column type.
func literalFits(literal string, t series.Type) bool {
	switch t {
	case series.Int:
		_, err := strconv.ParseInt(literal, 10, 64)
		return err == nil
	case series.Float:
		_, err := strconv.ParseFloat(literal, 64)
		return err == nil
	case series.Bool:
		return literal == "true" || literal == "false"
	default:
		return true
	}
}
