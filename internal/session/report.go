package session

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"datascope/internal/analysis"
	"datascope/internal/models"
)

// formatInfo renders the structure report: one line per column with
// its non-missing count and detected type, plus a type tally.
func formatInfo(dataset *models.Dataset, infos []analysis.ColumnInfo) string {
	var b strings.Builder

	fmt.Fprintf(&b, "RangeIndex: %d entries\n", dataset.Rows())
	fmt.Fprintf(&b, "Data columns (total %d columns):\n", len(infos))

	w := tabwriter.NewWriter(&b, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, " #\tColumn\tNon-Null Count\tDtype")
	fmt.Fprintln(w, "--\t------\t--------------\t-----")
	for i, info := range infos {
		fmt.Fprintf(w, "%2d\t%s\t%d non-null\t%s\n", i, info.Name, info.NonMissing, info.Type)
	}
	w.Flush()

	fmt.Fprintf(&b, "dtypes: %s\n", formatTypeTally(infos))
	fmt.Fprintf(&b, "missing cells: %d\n", dataset.MissingCells())

	return b.String()
}

// formatTypeTally counts columns per type in first-appearance order,
// e.g. "int(2), string(1)".
func formatTypeTally(infos []analysis.ColumnInfo) string {
	counts := make(map[string]int)
	order := make([]string, 0, len(infos))
	for _, info := range infos {
		if _, seen := counts[info.Type]; !seen {
			order = append(order, info.Type)
		}
		counts[info.Type]++
	}

	parts := make([]string, 0, len(order))
	for _, t := range order {
		parts = append(parts, fmt.Sprintf("%s(%d)", t, counts[t]))
	}
	return strings.Join(parts, ", ")
}

// formatSummary renders summary statistics as a stats-by-columns
// table: one row per statistic, one column per numeric column.
func formatSummary(summaries []analysis.ColumnSummary) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 2, 4, 2, ' ', tabwriter.AlignRight)

	header := make([]string, 0, len(summaries)+1)
	header = append(header, "")
	for _, summary := range summaries {
		header = append(header, summary.Name)
	}
	fmt.Fprintln(w, strings.Join(header, "\t")+"\t")

	rows := []struct {
		label string
		pick  func(analysis.ColumnSummary) string
	}{
		{"count", func(s analysis.ColumnSummary) string { return strconv.Itoa(s.Count) }},
		{"mean", func(s analysis.ColumnSummary) string { return formatStat(s.Mean) }},
		{"std", func(s analysis.ColumnSummary) string { return formatStat(s.Std) }},
		{"min", func(s analysis.ColumnSummary) string { return formatStat(s.Min) }},
		{"25%", func(s analysis.ColumnSummary) string { return formatStat(s.Q25) }},
		{"50%", func(s analysis.ColumnSummary) string { return formatStat(s.Median) }},
		{"75%", func(s analysis.ColumnSummary) string { return formatStat(s.Q75) }},
		{"max", func(s analysis.ColumnSummary) string { return formatStat(s.Max) }},
	}

	for _, row := range rows {
		cells := make([]string, 0, len(summaries)+1)
		cells = append(cells, row.label)
		for _, summary := range summaries {
			cells = append(cells, row.pick(summary))
		}
		fmt.Fprintln(w, strings.Join(cells, "\t")+"\t")
	}

	w.Flush()
	return b.String()
}

func formatStat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}
