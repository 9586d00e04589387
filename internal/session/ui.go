package session

import (
	"image"
	"io"

	"datascope/internal/models"
)

// OpenedFile couples a readable stream with its source metadata.
type OpenedFile struct {
	Reader io.ReadCloser
	Path   string
	Name   string
}

// SavedFile couples a writable stream with its destination metadata.
type SavedFile struct {
	Writer io.WriteCloser
	Path   string
	Name   string
}

// Preview is the display snapshot pushed after every table change.
// Rows holds the stringified leading rows, capped by the session.
type Preview struct {
	Stats     models.DatasetStats
	Columns   []string
	Rows      [][]string
	Stale     bool
	Truncated bool
}

// UI is the interaction surface the session loop drives. Every method
// that returns a value blocks the calling goroutine until the user
// responds; implementations marshal onto their toolkit thread as
// needed. DatasetChanged is a non-blocking display refresh and must be
// safe to call from any goroutine.
type UI interface {
	// ChooseOpen presents a file-open dialog. ok is false when the
	// user cancelled.
	ChooseOpen() (opened OpenedFile, ok bool, err error)

	// ChooseSave presents a file-save dialog, suggesting a file name.
	// ok is false when the user cancelled.
	ChooseSave(suggested string) (saved SavedFile, ok bool, err error)

	// Prompt asks for one line of free text. ok is false when the
	// dialog was dismissed without confirming.
	Prompt(title, message string) (value string, ok bool)

	// ShowInfo displays an informational notification and blocks until
	// it is dismissed.
	ShowInfo(title, message string)

	// ShowWarning displays a warning notification and blocks until it
	// is dismissed.
	ShowWarning(title, message string)

	// ShowError displays an error notification and blocks until it is
	// dismissed.
	ShowError(err error)

	// ShowReport displays a monospace text report and blocks until it
	// is dismissed.
	ShowReport(title, body string)

	// ShowChart displays a rendered chart in its own window and blocks
	// until the window is closed.
	ShowChart(title string, img image.Image)

	// DatasetChanged refreshes the table display.
	DatasetChanged(preview Preview)
}
