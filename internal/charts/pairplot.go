package charts

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"datascope/internal/models"

	"github.com/wcharczuk/go-chart/v2"
)

const (
	pairplotHeaderBand = 30
	pairplotGutter     = 52
	pairplotAxisBand   = 22
)

// PairplotBuilder renders an n-by-n grid over the numeric columns:
// histograms on the diagonal, scatter panels elsewhere. Rows missing
// either coordinate are dropped per panel.
type PairplotBuilder struct{}

// NewPairplotBuilder creates the "pairplot" chart builder.
func NewPairplotBuilder() *PairplotBuilder {
	return &PairplotBuilder{}
}

// Name returns the plot-type token.
func (b *PairplotBuilder) Name() string {
	return "pairplot"
}

// Build renders the pairplot grid.
func (b *PairplotBuilder) Build(dataset *models.Dataset) (image.Image, error) {
	columns := numericColumns(dataset)
	if len(columns) == 0 {
		return nil, fmt.Errorf("no numeric columns to plot")
	}

	k := len(columns)
	cell := pairplotCellSize(k)
	width := pairplotGutter + k*cell
	height := pairplotHeaderBand + k*cell + pairplotAxisBand
	canvas := newCanvas(width, height)

	drawCenteredLabel(canvas, image.Rect(0, 0, width, pairplotHeaderBand), "Pairplot of DataFrame", color.Black)

	for row := 0; row < k; row++ {
		for col := 0; col < k; col++ {
			x := pairplotGutter + col*cell
			y := pairplotHeaderBand + row*cell
			rect := image.Rect(x, y, x+cell, y+cell)

			panel, err := b.renderCell(columns[col], columns[row], row == col, cell)
			if err != nil {
				return nil, fmt.Errorf("failed to build pairplot cell %s/%s: %w",
					columns[col].name, columns[row].name, err)
			}
			if panel != nil {
				pasteImage(canvas, panel, x, y)
			} else {
				drawCenteredLabel(canvas, rect, "--", color.Gray{Y: 0x90})
			}
		}
	}

	labelColor := color.Gray{Y: 0x30}
	for i, column := range columns {
		name := truncateLabel(column.name, cell-6)

		// Variable names down the left edge and across the bottom,
		// matching the grid rows and columns.
		rowRect := image.Rect(0, pairplotHeaderBand+i*cell, pairplotGutter-4, pairplotHeaderBand+(i+1)*cell)
		drawCenteredLabel(canvas, rowRect, truncateLabel(column.name, pairplotGutter-8), labelColor)

		colRect := image.Rect(pairplotGutter+i*cell, height-pairplotAxisBand, pairplotGutter+(i+1)*cell, height)
		drawCenteredLabel(canvas, colRect, name, labelColor)
	}

	return canvas, nil
}

// renderCell renders one grid cell: a histogram when diagonal, a
// scatter panel otherwise. Returns nil when the pair has no complete
// observations.
func (b *PairplotBuilder) renderCell(xcol, ycol numericColumn, diagonal bool, cell int) (image.Image, error) {
	if diagonal {
		values := observed(xcol.values)
		if len(values) == 0 {
			return nil, nil
		}
		return renderMiniHistogram(values, cell)
	}

	xs := make([]float64, 0, len(xcol.values))
	ys := make([]float64, 0, len(ycol.values))
	for i := range xcol.values {
		if math.IsNaN(xcol.values[i]) || math.IsNaN(ycol.values[i]) {
			continue
		}
		xs = append(xs, xcol.values[i])
		ys = append(ys, ycol.values[i])
	}
	if len(xs) == 0 {
		return nil, nil
	}

	xLo, xHi := padRange(minMax(xs))
	yLo, yHi := padRange(minMax(ys))

	figure := chart.Chart{
		Width:  cell,
		Height: cell,
		Background: chart.Style{
			Padding: chart.Box{Top: 4, Left: 4, Right: 4, Bottom: 4},
		},
		XAxis: chart.XAxis{
			Style: chart.Style{Hidden: true},
			Range: &chart.ContinuousRange{Min: xLo, Max: xHi},
		},
		YAxis: chart.YAxis{
			Style: chart.Style{Hidden: true},
			Range: &chart.ContinuousRange{Min: yLo, Max: yHi},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    2.5,
					DotColor:    chart.GetDefaultColor(0),
				},
			},
		},
	}

	return renderPNG(&figure)
}

// renderMiniHistogram draws a compact axis-free distribution panel for
// a diagonal cell.
func renderMiniHistogram(values []float64, cell int) (image.Image, error) {
	bars, maxCount := binValues(values, 12)
	for i := range bars {
		bars[i].Label = ""
	}

	barWidth := (cell - 40) / 12
	if barWidth < 2 {
		barWidth = 2
	}

	figure := chart.BarChart{
		Width:  cell,
		Height: cell,
		Background: chart.Style{
			Padding: chart.Box{Top: 4, Left: 4, Right: 4, Bottom: 4},
		},
		BarWidth:   barWidth,
		BarSpacing: 1,
		XAxis:      chart.Style{Hidden: true},
		YAxis: chart.YAxis{
			Style: chart.Style{Hidden: true},
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: math.Max(1, float64(maxCount)*1.1),
			},
		},
		Bars: bars,
	}

	return renderPNG(&figure)
}

// pairplotCellSize keeps the grid readable for small column counts and
// bounded for large ones.
func pairplotCellSize(k int) int {
	switch {
	case k <= 3:
		return 260
	case k <= 5:
		return 220
	default:
		size := 1400 / k
		if size < 120 {
			size = 120
		}
		return size
	}
}

func minMax(values []float64) (float64, float64) {
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
