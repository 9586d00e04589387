package charts

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"

	"datascope/internal/models"

	"github.com/wcharczuk/go-chart/v2"
)

const (
	histogramBins   = 20
	histPanelWidth  = 480
	histPanelHeight = 320
	histHeaderBand  = 30
)

// HistogramBuilder renders one distribution panel per numeric column,
// arranged in a near-square grid under a shared title.
type HistogramBuilder struct{}

// NewHistogramBuilder creates the "histogram" chart builder.
func NewHistogramBuilder() *HistogramBuilder {
	return &HistogramBuilder{}
}

// Name returns the plot-type token.
func (b *HistogramBuilder) Name() string {
	return "histogram"
}

// Build renders the histogram grid.
func (b *HistogramBuilder) Build(dataset *models.Dataset) (image.Image, error) {
	columns := numericColumns(dataset)
	if len(columns) == 0 {
		return nil, fmt.Errorf("no numeric columns to plot")
	}

	panels := make([]image.Image, 0, len(columns))
	for _, column := range columns {
		values := observed(column.values)
		if len(values) == 0 {
			continue
		}

		panel, err := renderHistogramPanel(column.name, values)
		if err != nil {
			return nil, fmt.Errorf("failed to build histogram for %s: %w", column.name, err)
		}
		panels = append(panels, panel)
	}
	if len(panels) == 0 {
		return nil, fmt.Errorf("no observed values to plot")
	}

	return composeGrid(panels, histPanelWidth, histPanelHeight, "Histograms of Numerical Columns"), nil
}

func renderHistogramPanel(name string, values []float64) (image.Image, error) {
	bars, maxCount := binValues(values, histogramBins)

	figure := chart.BarChart{
		Title:  name,
		Width:  histPanelWidth,
		Height: histPanelHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 36, Left: 10, Right: 10, Bottom: 10},
		},
		BarWidth:   16,
		BarSpacing: 4,
		XAxis:      chart.Style{},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: math.Max(1, float64(maxCount)*1.1),
			},
		},
		Bars: bars,
	}

	return renderPNG(&figure)
}

// binValues counts values into equal-width bins across the observed
// range. Every fifth bin carries its left-edge label; the rest stay
// blank to keep the axis readable.
func binValues(values []float64, bins int) ([]chart.Value, int) {
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}

	width := (hi - lo) / float64(bins)
	counts := make([]int, bins)
	for _, v := range values {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}

	maxCount := 0
	bars := make([]chart.Value, bins)
	for i, count := range counts {
		if count > maxCount {
			maxCount = count
		}

		label := ""
		if i%5 == 0 {
			label = strconv.FormatFloat(lo+float64(i)*width, 'g', 3, 64)
		}
		bars[i] = chart.Value{
			Label: label,
			Value: float64(count),
			Style: chart.Style{
				FillColor:   chart.GetDefaultColor(0),
				StrokeColor: chart.GetDefaultColor(0),
			},
		}
	}

	return bars, maxCount
}

// composeGrid lays fixed-size panels into a near-square grid under a
// centered title band.
func composeGrid(panels []image.Image, panelWidth, panelHeight int, title string) image.Image {
	cols := int(math.Ceil(math.Sqrt(float64(len(panels)))))
	rows := (len(panels) + cols - 1) / cols

	width := cols * panelWidth
	height := histHeaderBand + rows*panelHeight
	canvas := newCanvas(width, height)

	drawCenteredLabel(canvas, image.Rect(0, 0, width, histHeaderBand), title, color.Black)

	for i, panel := range panels {
		x := (i % cols) * panelWidth
		y := histHeaderBand + (i/cols)*panelHeight
		pasteImage(canvas, panel, x, y)
	}

	return canvas
}
