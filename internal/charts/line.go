package charts

import (
	"fmt"
	"image"
	"math"

	"datascope/internal/models"

	"github.com/wcharczuk/go-chart/v2"
)

const (
	lineChartWidth  = 960
	lineChartHeight = 600
)

// LineBuilder renders every numeric column as a line over the row
// index, the way a quick-look frame plot does. Missing cells are
// skipped pointwise.
type LineBuilder struct{}

// NewLineBuilder creates the "simple" chart builder.
func NewLineBuilder() *LineBuilder {
	return &LineBuilder{}
}

// Name returns the plot-type token.
func (b *LineBuilder) Name() string {
	return "simple"
}

// Build renders the line chart.
func (b *LineBuilder) Build(dataset *models.Dataset) (image.Image, error) {
	columns := numericColumns(dataset)
	if len(columns) == 0 {
		return nil, fmt.Errorf("no numeric columns to plot")
	}

	var seriesList []chart.Series
	yMin, yMax := math.Inf(1), math.Inf(-1)
	pointCount := 0

	for i, column := range columns {
		xs, ys := indexPoints(column.values)
		if len(xs) == 0 {
			continue
		}
		pointCount += len(xs)
		for _, y := range ys {
			yMin = math.Min(yMin, y)
			yMax = math.Max(yMax, y)
		}

		seriesList = append(seriesList, chart.ContinuousSeries{
			Name:    column.name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: 2.0,
				StrokeColor: chart.GetDefaultColor(i),
			},
		})
	}
	if pointCount == 0 {
		return nil, fmt.Errorf("no observed values to plot")
	}

	xLo, xHi := padRange(0, float64(dataset.Rows()-1))
	yLo, yHi := padRange(yMin, yMax)

	figure := chart.Chart{
		Title:  "Simple Plot of All Numerical Columns",
		Width:  lineChartWidth,
		Height: lineChartHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  "Index",
			Range: &chart.ContinuousRange{Min: xLo, Max: xHi},
		},
		YAxis: chart.YAxis{
			Name:  "Values",
			Range: &chart.ContinuousRange{Min: yLo, Max: yHi},
		},
		Series: seriesList,
	}
	figure.Elements = []chart.Renderable{chart.Legend(&figure)}

	return renderPNG(&figure)
}
