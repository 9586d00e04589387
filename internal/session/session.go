package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"datascope/internal/analysis"
	"datascope/internal/charts"
	"datascope/internal/dataio"
	"datascope/internal/logger"
	"datascope/internal/models"
	"datascope/internal/transform"
)

const (
	actionPrompt  = "Choose an action (info, summary, missing, filter, save, plot, exit):"
	missingPrompt = "Choose action for missing data (drop, fill, cancel):"
	fillPrompt    = "Enter value to fill missing data:"
	plotPrompt    = "Enter plot type (simple, pairplot, histogram, heatmap, exit):"

	previewRowLimit = 100
)

// Session owns the single mutable dataset and drives the interactive
// loop: one load, then free-text actions until exit. It runs strictly
// sequentially on its own goroutine, blocking on every prompt,
// notification and chart window.
type Session struct {
	ui     UI
	loader *dataio.Loader
	saver  *dataio.Saver
	charts *charts.Manager
	repo   *models.DatasetRepository
	log    logger.Logger

	ctx     context.Context
	watcher *dataio.Watcher
	onExit  func()
}

// NewSession creates a session over the given collaborators.
func NewSession(
	ui UI,
	loader *dataio.Loader,
	saver *dataio.Saver,
	chartManager *charts.Manager,
	repo *models.DatasetRepository,
	log logger.Logger,
) *Session {
	return &Session{
		ui:     ui,
		loader: loader,
		saver:  saver,
		charts: chartManager,
		repo:   repo,
		log:    log,
		ctx:    context.Background(),
	}
}

// SetContext sets the context file operations run under. Canceling it
// aborts any load or save that has not started writing yet.
func (s *Session) SetContext(ctx context.Context) {
	if ctx != nil {
		s.ctx = ctx
	}
}

// SetWatcher attaches the optional source-file watcher; the session
// points it at the loaded file.
func (s *Session) SetWatcher(watcher *dataio.Watcher) {
	s.watcher = watcher
}

// SetExitHandler sets the callback invoked when the session ends.
func (s *Session) SetExitHandler(handler func()) {
	s.onExit = handler
}

// Run executes the session until the user exits. It must run off the
// UI thread.
func (s *Session) Run() {
	defer s.exit()

	s.log.Info("session", "application started", nil)

	if !s.loadInitial() {
		return
	}

	for {
		raw, _ := s.ui.Prompt("Action", actionPrompt)
		action := strings.TrimSpace(raw)

		switch action {
		case "info":
			s.handleInfo()
		case "summary":
			s.handleSummary()
		case "missing":
			s.handleMissing()
		case "filter":
			s.handleFilter()
		case "save":
			s.handleSave()
		case "plot":
			s.handlePlot()
		case "exit":
			return
		default:
			s.log.Warning("session", "invalid action", map[string]interface{}{
				"input": raw,
			})
			s.ui.ShowWarning("Invalid input", "Please enter a valid action.")
		}
	}
}

// HandleSourceChanged marks the dataset stale after an external file
// change and refreshes the display. Safe to call from any goroutine.
func (s *Session) HandleSourceChanged(path string) {
	s.repo.MarkStale()
	s.refreshDisplay()
}

func (s *Session) exit() {
	s.log.Info("session", "application ended", nil)
	if s.onExit != nil {
		s.onExit()
	}
}

// loadInitial performs the one-time startup load. Returns false when
// the session should end without entering the action loop.
func (s *Session) loadInitial() bool {
	opened, ok, err := s.ui.ChooseOpen()
	if err != nil {
		s.fail("open", fmt.Errorf("could not load file: %w", err))
		return false
	}
	if !ok {
		s.log.Info("session", "no file selected", nil)
		return false
	}
	defer opened.Reader.Close()

	s.log.Info("session", "file selected", map[string]interface{}{
		"path": opened.Path,
	})

	dataset, err := s.loader.Load(s.ctx, opened.Reader, opened.Path, opened.Name)
	if err != nil {
		s.fail("load", fmt.Errorf("could not load file: %w", err))
		return false
	}

	s.repo.Set(dataset)
	s.refreshDisplay()

	if s.watcher != nil && opened.Path != "" {
		if err := s.watcher.Watch(opened.Path); err != nil {
			s.log.Warning("session", "source watch unavailable", map[string]interface{}{
				"path":  opened.Path,
				"error": err.Error(),
			})
		}
	}

	return true
}

func (s *Session) handleInfo() {
	dataset := s.repo.Get()
	infos := analysis.Info(dataset)

	s.log.Info("session", "displayed dataset information", map[string]interface{}{
		"rows": dataset.Rows(),
		"cols": dataset.Cols(),
	})
	s.ui.ShowReport("Info", formatInfo(dataset, infos))
}

func (s *Session) handleSummary() {
	dataset := s.repo.Get()

	summaries, err := analysis.Describe(dataset)
	if err != nil {
		s.fail("summary", fmt.Errorf("could not display summary: %w", err))
		return
	}

	s.log.Info("session", "displayed statistical summary", map[string]interface{}{
		"numeric_columns": len(summaries),
	})
	s.ui.ShowReport("Summary", formatSummary(summaries))
}

func (s *Session) handleMissing() {
	raw, _ := s.ui.Prompt("Missing Data", missingPrompt)

	switch strings.TrimSpace(raw) {
	case "drop":
		s.handleDrop()
	case "fill":
		s.handleFill()
	case "cancel":
		s.log.Info("session", "missing data handling canceled", nil)
	default:
		s.log.Warning("session", "invalid missing-data choice", map[string]interface{}{
			"input": raw,
		})
		s.ui.ShowWarning("Invalid input", "Please enter a valid action.")
	}
}

func (s *Session) handleDrop() {
	dataset := s.repo.Get()

	result, dropped, err := transform.DropMissing(dataset)
	if err != nil {
		s.fail("drop", fmt.Errorf("could not drop missing data: %w", err))
		return
	}

	s.repo.Set(result)
	s.refreshDisplay()

	s.log.Info("session", "missing data rows dropped", map[string]interface{}{
		"rows_dropped": dropped,
		"rows_left":    result.Rows(),
	})
	s.ui.ShowInfo("Success", "Rows with missing data were dropped.")
}

func (s *Session) handleFill() {
	literal, ok := s.ui.Prompt("Fill Missing Data", fillPrompt)
	if !ok {
		s.fail("fill", errors.New("could not fill missing data: no fill value provided"))
		return
	}

	dataset := s.repo.Get()
	result, filled, err := transform.FillMissing(dataset, literal)
	if err != nil {
		s.fail("fill", fmt.Errorf("could not fill missing data: %w", err))
		return
	}

	s.repo.Set(result)
	s.refreshDisplay()

	s.log.Info("session", "missing data filled", map[string]interface{}{
		"fill_value":   literal,
		"cells_filled": filled,
	})
	s.ui.ShowInfo("Success", fmt.Sprintf("Missing data filled with '%s'.", literal))
}

func (s *Session) handleFilter() {
	column, ok := s.ui.Prompt("Filter", "Enter column name to filter:")
	if !ok {
		s.log.Info("session", "filter canceled", nil)
		return
	}

	dataset := s.repo.Get()
	if !slices.Contains(dataset.Columns(), column) {
		s.log.Warning("session", "filter rejected", map[string]interface{}{
			"column": column,
		})
		s.ui.ShowError(errors.New("column not found"))
		return
	}

	value, ok := s.ui.Prompt("Filter", fmt.Sprintf("Enter value to filter %s:", column))
	if !ok {
		s.log.Info("session", "filter canceled", nil)
		return
	}

	result, err := transform.FilterEqual(dataset, column, value)
	if err != nil {
		s.fail("filter", fmt.Errorf("could not filter data: %w", err))
		return
	}

	s.repo.Set(result)
	s.refreshDisplay()

	s.log.Info("session", "data filtered", map[string]interface{}{
		"column":    column,
		"value":     value,
		"rows_left": result.Rows(),
	})
	s.ui.ShowInfo("Filter", fmt.Sprintf("%d rows match %s = %s.", result.Rows(), column, value))
}

func (s *Session) handleSave() {
	dataset := s.repo.Get()

	saved, ok, err := s.ui.ChooseSave(dataset.SourceName)
	if err != nil {
		s.fail("save", fmt.Errorf("could not save file: %w", err))
		return
	}
	if !ok {
		s.log.Info("session", "save operation canceled", nil)
		return
	}
	defer saved.Writer.Close()

	if err := s.saver.Save(s.ctx, saved.Writer, dataset, saved.Name); err != nil {
		s.fail("save", fmt.Errorf("could not save file: %w", err))
		return
	}

	s.ui.ShowInfo("Success", fmt.Sprintf("File saved successfully to %s", saved.Name))
}

func (s *Session) handlePlot() {
	for {
		raw, _ := s.ui.Prompt("Input", plotPrompt)
		kind := strings.TrimSpace(raw)

		if kind == "exit" {
			return
		}

		builder, known := s.charts.Lookup(kind)
		if !known {
			s.log.Warning("session", "invalid plot type", map[string]interface{}{
				"input": raw,
			})
			s.ui.ShowWarning("Invalid input", "Please enter a valid plot type.")
			continue
		}

		img, err := builder.Build(s.repo.Get())
		if err != nil {
			s.fail("plot", fmt.Errorf("could not plot data: %w", err))
			continue
		}

		s.log.Info("session", "chart rendered", map[string]interface{}{
			"plot_type": kind,
		})
		s.ui.ShowChart(fmt.Sprintf("Plot — %s", kind), img)
	}
}

// fail reports an operation error through the log and a blocking error
// dialog; control then returns to the enclosing prompt.
func (s *Session) fail(op string, err error) {
	s.log.Error("session", err, map[string]interface{}{
		"op": op,
	})
	s.ui.ShowError(err)
}

func (s *Session) refreshDisplay() {
	dataset := s.repo.Get()
	if dataset == nil {
		return
	}
	s.ui.DatasetChanged(s.buildPreview(dataset))
}

func (s *Session) buildPreview(dataset *models.Dataset) Preview {
	records := dataset.Frame.Records()

	rows := [][]string{}
	if len(records) > 1 {
		rows = records[1:]
	}
	truncated := false
	if len(rows) > previewRowLimit {
		rows = rows[:previewRowLimit]
		truncated = true
	}

	return Preview{
		Stats:     dataset.Stats(),
		Columns:   dataset.Columns(),
		Rows:      rows,
		Stale:     s.repo.IsStale(),
		Truncated: truncated,
	}
}
