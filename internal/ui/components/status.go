package components

import (
	"fmt"

	"datascope/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// StatusBar displays the session state and the loaded dataset shape.
type StatusBar struct {
	container   *fyne.Container
	statusLabel *widget.Label
	datasetInfo *widget.Label
	staleNotice *widget.Label
}

// NewStatusBar creates a new status bar component.
func NewStatusBar() *StatusBar {
	sb := &StatusBar{}
	sb.createComponents()
	sb.buildLayout()
	return sb
}

// createComponents initializes status bar components.
func (sb *StatusBar) createComponents() {
	sb.statusLabel = widget.NewLabel("Ready")
	sb.datasetInfo = widget.NewLabel("No file loaded")
	sb.staleNotice = widget.NewLabel("Source changed on disk")
	sb.staleNotice.Importance = widget.WarningImportance
	sb.staleNotice.Hide()
}

// buildLayout constructs the status bar layout.
func (sb *StatusBar) buildLayout() {
	sb.container = container.NewHBox(
		sb.statusLabel,
		widget.NewSeparator(),
		sb.datasetInfo,
		widget.NewSeparator(),
		sb.staleNotice,
	)
}

// SetStatus updates the main status message.
func (sb *StatusBar) SetStatus(status string) {
	fyne.Do(func() {
		sb.statusLabel.SetText(status)
	})
}

// GetStatus returns the current status message.
func (sb *StatusBar) GetStatus() string {
	return sb.statusLabel.Text
}

// SetDatasetInfo updates the dataset shape display.
func (sb *StatusBar) SetDatasetInfo(stats models.DatasetStats) {
	fyne.Do(func() {
		info := fmt.Sprintf("%s — %d rows × %d cols — %d missing cells",
			stats.SourceName, stats.Rows, stats.Cols, stats.MissingCells)
		sb.datasetInfo.SetText(info)
	})
}

// SetStale shows or hides the changed-on-disk notice.
func (sb *StatusBar) SetStale(stale bool) {
	fyne.Do(func() {
		if stale {
			sb.staleNotice.Show()
		} else {
			sb.staleNotice.Hide()
		}
	})
}

// Reset resets the status bar to initial state.
func (sb *StatusBar) Reset() {
	fyne.Do(func() {
		sb.statusLabel.SetText("Ready")
		sb.datasetInfo.SetText("No file loaded")
		sb.staleNotice.Hide()
	})
}

// GetContainer returns the status bar container.
func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}
