package ui

import (
	"image"
	"sync"

	"datascope/internal/session"
	"datascope/internal/ui/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// delimitedExtensions lists the file types offered by the open and save dialogs.
var delimitedExtensions = []string{".csv", ".tsv", ".txt", ".dat"}

// Desktop implements the session's user interface on top of Fyne. Its
// blocking methods are called from the session goroutine; each queues work
// on the UI goroutine and waits for the user's response.
type Desktop struct {
	app  fyne.App
	view *MainView
}

// NewDesktop creates the desktop implementation of the session interface.
func NewDesktop(app fyne.App, view *MainView) *Desktop {
	return &Desktop{
		app:  app,
		view: view,
	}
}

var _ session.UI = (*Desktop)(nil)

// ChooseOpen presents the native open dialog and returns the chosen file.
func (d *Desktop) ChooseOpen() (session.OpenedFile, bool, error) {
	type openOutcome struct {
		file session.OpenedFile
		ok   bool
		err  error
	}
	outcome := make(chan openOutcome, 1)

	fyne.Do(func() {
		fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil {
				outcome <- openOutcome{err: err}
				return
			}
			if reader == nil {
				outcome <- openOutcome{}
				return
			}
			uri := reader.URI()
			outcome <- openOutcome{
				file: session.OpenedFile{Reader: reader, Path: uri.Path(), Name: uri.Name()},
				ok:   true,
			}
		}, d.view.GetWindow())
		fileDialog.SetFilter(storage.NewExtensionFileFilter(delimitedExtensions))
		fileDialog.Resize(fyne.NewSize(760, 520))
		fileDialog.Show()
	})

	result := <-outcome
	return result.file, result.ok, result.err
}

// ChooseSave presents the native save dialog and returns the chosen target.
func (d *Desktop) ChooseSave(suggested string) (session.SavedFile, bool, error) {
	type saveOutcome struct {
		file session.SavedFile
		ok   bool
		err  error
	}
	outcome := make(chan saveOutcome, 1)

	fyne.Do(func() {
		fileDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil {
				outcome <- saveOutcome{err: err}
				return
			}
			if writer == nil {
				outcome <- saveOutcome{}
				return
			}
			uri := writer.URI()
			outcome <- saveOutcome{
				file: session.SavedFile{Writer: writer, Path: uri.Path(), Name: uri.Name()},
				ok:   true,
			}
		}, d.view.GetWindow())
		if suggested != "" {
			fileDialog.SetFileName(suggested)
		}
		fileDialog.SetFilter(storage.NewExtensionFileFilter(delimitedExtensions))
		fileDialog.Resize(fyne.NewSize(760, 520))
		fileDialog.Show()
	})

	result := <-outcome
	return result.file, result.ok, result.err
}

// Prompt asks for one line of input and reports whether it was confirmed.
// Pressing Enter in the entry confirms like the OK button.
func (d *Desktop) Prompt(title, message string) (string, bool) {
	type promptOutcome struct {
		value string
		ok    bool
	}
	outcome := make(chan promptOutcome, 1)

	fyne.Do(func() {
		entry := widget.NewEntry()

		var once sync.Once
		send := func(value string, ok bool) {
			once.Do(func() {
				outcome <- promptOutcome{value: value, ok: ok}
			})
		}

		content := container.NewVBox(widget.NewLabel(message), entry)
		prompt := dialog.NewCustomConfirm(title, "OK", "Cancel", content, func(confirmed bool) {
			send(entry.Text, confirmed)
		}, d.view.GetWindow())
		entry.OnSubmitted = func(value string) {
			send(value, true)
			prompt.Hide()
		}
		prompt.Resize(fyne.NewSize(420, prompt.MinSize().Height))
		prompt.Show()
		d.view.GetWindow().Canvas().Focus(entry)
	})

	result := <-outcome
	return result.value, result.ok
}

// ShowInfo displays a notification and waits until it is dismissed.
func (d *Desktop) ShowInfo(title, message string) {
	d.showAndWait(func() dialog.Dialog {
		return dialog.NewInformation(title, message, d.view.GetWindow())
	})
}

// ShowWarning displays a warning notification and waits until it is dismissed.
func (d *Desktop) ShowWarning(title, message string) {
	d.showAndWait(func() dialog.Dialog {
		content := container.NewHBox(
			widget.NewIcon(theme.WarningIcon()),
			widget.NewLabel(message),
		)
		return dialog.NewCustom(title, "OK", content, d.view.GetWindow())
	})
}

// ShowError displays an error dialog and waits until it is dismissed.
func (d *Desktop) ShowError(err error) {
	d.showAndWait(func() dialog.Dialog {
		return dialog.NewError(err, d.view.GetWindow())
	})
}

// ShowReport displays preformatted text in a scrollable dialog.
func (d *Desktop) ShowReport(title, body string) {
	d.showAndWait(func() dialog.Dialog {
		text := widget.NewLabelWithStyle(body, fyne.TextAlignLeading, fyne.TextStyle{Monospace: true})
		scroll := container.NewScroll(text)
		scroll.SetMinSize(fyne.NewSize(620, 380))
		return dialog.NewCustom(title, "Close", scroll, d.view.GetWindow())
	})
}

// ShowChart opens the chart in its own window and waits until it is closed.
func (d *Desktop) ShowChart(title string, chart image.Image) {
	done := make(chan struct{})
	fyne.Do(func() {
		chartWindow := components.NewChartWindow(d.app, title, chart)
		chartWindow.SetOnClosed(func() {
			close(done)
		})
		chartWindow.Show()
	})
	<-done
}

// DatasetChanged refreshes the dataset preview. Safe from any goroutine.
func (d *Desktop) DatasetChanged(preview session.Preview) {
	d.view.ApplyPreview(preview)
}

// showAndWait displays a dialog on the UI goroutine and blocks until closed.
func (d *Desktop) showAndWait(build func() dialog.Dialog) {
	done := make(chan struct{})
	fyne.Do(func() {
		shown := build()
		shown.SetOnClosed(func() {
			close(done)
		})
		shown.Show()
	})
	<-done
}
