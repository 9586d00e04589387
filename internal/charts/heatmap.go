package charts

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"datascope/internal/analysis"
	"datascope/internal/models"
)

const (
	heatmapHeaderBand = 32
	heatmapTopGutter  = 24
	heatmapMargin     = 14
)

// HeatmapBuilder renders the Pearson correlation matrix of the numeric
// columns as an annotated cell grid on a coolwarm gradient.
type HeatmapBuilder struct{}

// NewHeatmapBuilder creates the "heatmap" chart builder.
func NewHeatmapBuilder() *HeatmapBuilder {
	return &HeatmapBuilder{}
}

// Name returns the plot-type token.
func (b *HeatmapBuilder) Name() string {
	return "heatmap"
}

// Build renders the correlation heatmap.
func (b *HeatmapBuilder) Build(dataset *models.Dataset) (image.Image, error) {
	matrix, err := analysis.Correlation(dataset)
	if err != nil {
		return nil, fmt.Errorf("failed to compute correlations: %w", err)
	}

	k := len(matrix.Columns)
	cell := heatmapCellSize(k)

	leftGutter := heatmapMargin
	for _, name := range matrix.Columns {
		if w := labelWidth(name) + 10; w > leftGutter {
			leftGutter = w
		}
	}
	if leftGutter > 160 {
		leftGutter = 160
	}

	width := leftGutter + k*cell + heatmapMargin
	height := heatmapHeaderBand + heatmapTopGutter + k*cell + heatmapMargin
	canvas := newCanvas(width, height)

	drawCenteredLabel(canvas, image.Rect(0, 0, width, heatmapHeaderBand), "Heatmap of Correlations", color.Black)

	gridTop := heatmapHeaderBand + heatmapTopGutter
	labelColor := color.Gray{Y: 0x30}

	for i, name := range matrix.Columns {
		colRect := image.Rect(leftGutter+i*cell, heatmapHeaderBand, leftGutter+(i+1)*cell, gridTop)
		drawCenteredLabel(canvas, colRect, truncateLabel(name, cell-4), labelColor)

		rowRect := image.Rect(0, gridTop+i*cell, leftGutter-4, gridTop+(i+1)*cell)
		drawCenteredLabel(canvas, rowRect, truncateLabel(name, leftGutter-8), labelColor)
	}

	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			v := matrix.Values[i][j]

			x := leftGutter + j*cell
			y := gridTop + i*cell
			// Inset by one pixel: the white canvas shows through as
			// the thin separator line between cells.
			fillRect(canvas, image.Rect(x+1, y+1, x+cell-1, y+cell-1), coolwarm(v))

			annotation := "--"
			if !math.IsNaN(v) {
				annotation = fmt.Sprintf("%.2f", v)
			}
			drawCenteredLabel(canvas, image.Rect(x, y, x+cell, y+cell), annotation, annotationColor(v))
		}
	}

	return canvas, nil
}

// annotationColor keeps cell text readable: white on saturated
// backgrounds, near-black elsewhere.
func annotationColor(v float64) color.Color {
	if !math.IsNaN(v) && math.Abs(v) > 0.6 {
		return color.White
	}
	return color.Gray{Y: 0x20}
}

func heatmapCellSize(k int) int {
	size := 1000 / k
	if size > 96 {
		return 96
	}
	if size < 48 {
		return 48
	}
	return size
}
