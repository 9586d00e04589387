package components

import (
	"fmt"
	"image"
	"image/png"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const (
	chartMaxDisplayWidth  = 1100.0
	chartMaxDisplayHeight = 720.0
)

// ChartWindow displays a rendered chart in its own window with an export action.
type ChartWindow struct {
	window fyne.Window
	chart  image.Image
}

// NewChartWindow creates a window showing the given chart image.
func NewChartWindow(app fyne.App, title string, chart image.Image) *ChartWindow {
	cw := &ChartWindow{
		window: app.NewWindow(title),
		chart:  chart,
	}

	chartImage := canvas.NewImageFromImage(chart)
	chartImage.FillMode = canvas.ImageFillContain
	chartImage.ScaleMode = canvas.ImageScaleSmooth

	bounds := chart.Bounds()
	displayWidth, displayHeight := fitDisplaySize(bounds.Dx(), bounds.Dy())
	chartImage.SetMinSize(fyne.NewSize(displayWidth, displayHeight))

	exportButton := widget.NewButton("Export PNG…", cw.exportPNG)
	actionBar := container.NewHBox(layout.NewSpacer(), exportButton)

	cw.window.SetContent(container.NewBorder(nil, actionBar, nil, nil, chartImage))
	cw.window.Resize(fyne.NewSize(displayWidth+16, displayHeight+56))
	cw.window.CenterOnScreen()
	return cw
}

// Show displays the chart window.
func (cw *ChartWindow) Show() {
	cw.window.Show()
}

// SetOnClosed registers a callback for when the window is dismissed.
func (cw *ChartWindow) SetOnClosed(callback func()) {
	cw.window.SetOnClosed(callback)
}

// exportPNG prompts for a destination and writes the chart as a PNG file.
func (cw *ChartWindow) exportPNG() {
	saveDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, cw.window)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		if err := png.Encode(writer, cw.chart); err != nil {
			dialog.ShowError(fmt.Errorf("failed to export chart: %w", err), cw.window)
		}
	}, cw.window)
	saveDialog.SetFileName("chart.png")
	saveDialog.SetFilter(storage.NewExtensionFileFilter([]string{".png"}))
	saveDialog.Show()
}

// fitDisplaySize scales chart dimensions down to fit on screen, keeping aspect.
func fitDisplaySize(width, height int) (float32, float32) {
	w, h := float32(width), float32(height)
	if w > chartMaxDisplayWidth {
		h = h * chartMaxDisplayWidth / w
		w = chartMaxDisplayWidth
	}
	if h > chartMaxDisplayHeight {
		w = w * chartMaxDisplayHeight / h
		h = chartMaxDisplayHeight
	}
	return w, h
}
