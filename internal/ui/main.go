package ui

import (
	"fmt"

	"datascope/internal/session"
	"datascope/internal/ui/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// MainView handles the main window layout and components.
type MainView struct {
	window    fyne.Window
	baseTitle string

	// UI components
	preview   *components.PreviewTable
	statusBar *components.StatusBar

	mainContainer *fyne.Container
}

// NewMainView creates a new main view with all components.
func NewMainView(window fyne.Window) *MainView {
	view := &MainView{
		window:    window,
		baseTitle: window.Title(),
	}
	view.initializeComponents()
	view.buildLayout()
	return view
}

// initializeComponents creates all UI components.
func (mv *MainView) initializeComponents() {
	mv.preview = components.NewPreviewTable()
	mv.statusBar = components.NewStatusBar()
}

// buildLayout constructs the main window layout.
func (mv *MainView) buildLayout() {
	mv.mainContainer = container.NewBorder(
		nil,                         // top
		mv.statusBar.GetContainer(), // bottom
		nil, nil,                    // left, right
		container.NewPadded(mv.preview.GetObject()),
	)
	mv.window.SetContent(mv.mainContainer)
}

// SetupMainMenu installs the application menu bar.
func (mv *MainView) SetupMainMenu(appName, version string) {
	quitItem := fyne.NewMenuItem("Quit", func() {
		mv.window.Close()
	})
	quitItem.IsQuit = true

	aboutItem := fyne.NewMenuItem("About", func() {
		mv.ShowAbout(appName, version)
	})

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu("File", quitItem),
		fyne.NewMenu("Help", aboutItem),
	)
	mv.window.SetMainMenu(mainMenu)
}

// UI update methods - called by the session through the desktop bridge

// ApplyPreview updates the preview grid, status bar and window title.
func (mv *MainView) ApplyPreview(preview session.Preview) {
	fyne.Do(func() {
		mv.preview.SetData(preview.Columns, preview.Rows)
		if preview.Truncated {
			mv.statusBar.SetStatus(fmt.Sprintf("Showing first %d rows", len(preview.Rows)))
		} else {
			mv.statusBar.SetStatus("Ready")
		}
		mv.statusBar.SetDatasetInfo(preview.Stats)
		mv.statusBar.SetStale(preview.Stale)
		mv.window.SetTitle(fmt.Sprintf("%s — %s", mv.baseTitle, preview.Stats.SourceName))
	})
}

// UpdateStatus sets the status bar message.
func (mv *MainView) UpdateStatus(status string) {
	mv.statusBar.SetStatus(status)
}

// Dialog display methods

// ShowAbout displays the about dialog.
func (mv *MainView) ShowAbout(appName, version string) {
	fyne.Do(func() {
		content := container.NewVBox(
			widget.NewLabelWithStyle(appName, fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
			widget.NewLabel("Version "+version),
			widget.NewLabel("Interactive exploration for delimited data files."),
		)
		dialog.ShowCustom("About", "Close", content, mv.window)
	})
}

// ShowConfirm displays a confirmation dialog.
func (mv *MainView) ShowConfirm(title, message string, callback func(bool)) {
	fyne.Do(func() {
		dialog.ShowConfirm(title, message, callback, mv.window)
	})
}

// Show displays the main window.
func (mv *MainView) Show() {
	mv.window.Show()
}

// GetWindow returns the underlying window.
func (mv *MainView) GetWindow() fyne.Window {
	return mv.window
}
