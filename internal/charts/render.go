package charts

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"datascope/internal/models"

	"github.com/wcharczuk/go-chart/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// renderable is satisfied by both chart.Chart and chart.BarChart.
type renderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

// renderPNG renders a go-chart figure and decodes it back into an
// image for display and compositing.
func renderPNG(figure renderable) (image.Image, error) {
	var buf bytes.Buffer
	if err := figure.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("failed to decode rendered chart: %w", err)
	}
	return img, nil
}

// numericColumn pairs a column name with its float values; missing
// cells are NaN.
type numericColumn struct {
	name   string
	values []float64
}

func numericColumns(dataset *models.Dataset) []numericColumn {
	names := dataset.NumericColumns()

	columns := make([]numericColumn, 0, len(names))
	for _, name := range names {
		columns = append(columns, numericColumn{
			name:   name,
			values: dataset.Frame.Col(name).Float(),
		})
	}
	return columns
}

// observed strips NaN entries from values.
func observed(values []float64) []float64 {
	kept := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			kept = append(kept, v)
		}
	}
	return kept
}

// indexPoints returns (row index, value) pairs for the observed values
// of a column, skipping missing cells pointwise.
func indexPoints(values []float64) (xs, ys []float64) {
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		xs = append(xs, float64(i))
		ys = append(ys, v)
	}
	return xs, ys
}

// padRange widens [lo, hi] by 5% on each side so go-chart never sees a
// zero-delta axis range. A degenerate range becomes a unit band around
// the value.
func padRange(lo, hi float64) (float64, float64) {
	if lo > hi {
		lo, hi = hi, lo
	}
	span := hi - lo
	if span == 0 {
		return lo - 1, hi + 1
	}
	return lo - 0.05*span, hi + 0.05*span
}

// newCanvas allocates a white RGBA canvas of the given size.
func newCanvas(width, height int) *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return canvas
}

// pasteImage copies src onto dst with its top-left corner at (x, y).
func pasteImage(dst *image.RGBA, src image.Image, x, y int) {
	bounds := src.Bounds()
	target := image.Rect(x, y, x+bounds.Dx(), y+bounds.Dy())
	draw.Draw(dst, target, src, bounds.Min, draw.Over)
}

// fillRect paints a solid rectangle.
func fillRect(dst *image.RGBA, rect image.Rectangle, c color.Color) {
	draw.Draw(dst, rect, image.NewUniform(c), image.Point{}, draw.Src)
}

// drawLabel renders text with the fixed 7x13 face; (x, y) is the
// baseline origin.
func drawLabel(dst *image.RGBA, x, y int, label string, c color.Color) {
	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	drawer.DrawString(label)
}

// labelWidth measures rendered text width in pixels.
func labelWidth(label string) int {
	drawer := &font.Drawer{Face: basicfont.Face7x13}
	return drawer.MeasureString(label).Ceil()
}

// drawCenteredLabel renders text centered inside rect.
func drawCenteredLabel(dst *image.RGBA, rect image.Rectangle, label string, c color.Color) {
	x := rect.Min.X + (rect.Dx()-labelWidth(label))/2
	y := rect.Min.Y + (rect.Dy()+basicfont.Face7x13.Ascent)/2 - 1
	drawLabel(dst, x, y, label, c)
}

// truncateLabel shortens text to fit maxWidth pixels, appending an
// ellipsis mark when cut.
func truncateLabel(label string, maxWidth int) string {
	if labelWidth(label) <= maxWidth {
		return label
	}
	runes := []rune(label)
	for len(runes) > 1 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "…"
		if labelWidth(candidate) <= maxWidth {
			return candidate
		}
	}
	return "…"
}

// coolwarm maps a correlation in [-1, 1] onto a blue-white-red
// gradient; NaN maps to gray.
func coolwarm(v float64) color.RGBA {
	if math.IsNaN(v) {
		return color.RGBA{R: 0xC8, G: 0xC8, B: 0xC8, A: 0xFF}
	}
	if v < -1 {
		v = -1
	}
	if v > 1 {
		v = 1
	}

	blue := [3]float64{59, 76, 192}
	white := [3]float64{242, 242, 242}
	red := [3]float64{180, 4, 38}

	var from, to [3]float64
	var t float64
	if v < 0 {
		from, to = white, blue
		t = -v
	} else {
		from, to = white, red
		t = v
	}

	return color.RGBA{
		R: uint8(from[0] + (to[0]-from[0])*t),
		G: uint8(from[1] + (to[1]-from[1])*t),
		B: uint8(from[2] + (to[2]-from[2])*t),
		A: 0xFF,
	}
}
