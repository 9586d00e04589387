package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

const (
	previewMinColumnWidth = 90.0
	previewMaxColumnWidth = 220.0
	previewCharWidth      = 9.0
)

// PreviewTable renders the leading rows of the loaded dataset in a grid.
type PreviewTable struct {
	table   *widget.Table
	columns []string
	rows    [][]string
}

// NewPreviewTable creates a new dataset preview component.
func NewPreviewTable() *PreviewTable {
	pt := &PreviewTable{}
	pt.table = widget.NewTable(pt.cellCount, pt.createCell, pt.updateCell)
	pt.table.ShowHeaderRow = true
	pt.table.CreateHeader = pt.createHeader
	pt.table.UpdateHeader = pt.updateHeader
	return pt
}

// cellCount reports the grid dimensions to the table widget.
func (pt *PreviewTable) cellCount() (int, int) {
	return len(pt.rows), len(pt.columns)
}

// createCell builds the template object used for every data cell.
func (pt *PreviewTable) createCell() fyne.CanvasObject {
	label := widget.NewLabel("")
	label.Truncation = fyne.TextTruncateEllipsis
	return label
}

// updateCell fills a data cell with the value at the given position.
func (pt *PreviewTable) updateCell(id widget.TableCellID, object fyne.CanvasObject) {
	label := object.(*widget.Label)
	if id.Row < 0 || id.Row >= len(pt.rows) {
		label.SetText("")
		return
	}
	row := pt.rows[id.Row]
	if id.Col < 0 || id.Col >= len(row) {
		label.SetText("")
		return
	}
	label.SetText(row[id.Col])
}

// createHeader builds the template object used for header cells.
func (pt *PreviewTable) createHeader() fyne.CanvasObject {
	label := widget.NewLabel("")
	label.TextStyle = fyne.TextStyle{Bold: true}
	label.Truncation = fyne.TextTruncateEllipsis
	return label
}

// updateHeader fills a header cell with the column name.
func (pt *PreviewTable) updateHeader(id widget.TableCellID, object fyne.CanvasObject) {
	label := object.(*widget.Label)
	if id.Col < 0 || id.Col >= len(pt.columns) {
		label.SetText("")
		return
	}
	label.SetText(pt.columns[id.Col])
}

// SetData replaces the displayed columns and rows.
// Must be called on the UI goroutine.
func (pt *PreviewTable) SetData(columns []string, rows [][]string) {
	pt.columns = columns
	pt.rows = rows
	for i, name := range columns {
		pt.table.SetColumnWidth(i, columnWidth(name))
	}
	pt.table.Refresh()
	pt.table.ScrollToTop()
}

// Clear removes all displayed data.
// Must be called on the UI goroutine.
func (pt *PreviewTable) Clear() {
	pt.columns = nil
	pt.rows = nil
	pt.table.Refresh()
}

// GetObject returns the preview table as a canvas object.
func (pt *PreviewTable) GetObject() fyne.CanvasObject {
	return pt.table
}

// columnWidth sizes a column to its header with sane bounds.
func columnWidth(name string) float32 {
	width := float32(len(name))*previewCharWidth + 24.0
	if width < previewMinColumnWidth {
		return previewMinColumnWidth
	}
	if width > previewMaxColumnWidth {
		return previewMaxColumnWidth
	}
	return width
}
