package main

import (
	"log"
	"os"
	"runtime"

	"datascope/internal/charts"
	"datascope/internal/dataio"
	"datascope/internal/logger"
	"datascope/internal/models"
	"datascope/internal/session"
	"datascope/internal/shutdown"
	"datascope/internal/ui"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

const (
	AppName    = "DataScope"
	AppID      = "com.dataanalysis.datascope"
	AppVersion = "1.0.0"
)

// Application wires the session, the data services and the desktop UI.
type Application struct {
	// Core components
	fyneApp fyne.App
	window  fyne.Window
	logger  logger.Logger

	// UI
	view    *ui.MainView
	desktop *ui.Desktop

	// Session and services
	sess    *session.Session
	loader  *dataio.Loader
	saver   *dataio.Saver
	watcher *dataio.Watcher

	// Models/Repositories
	datasetRepo  *models.DatasetRepository
	chartManager *charts.Manager

	// Lifecycle management
	shutdownManager *shutdown.Manager
}

func main() {
	configureRuntime()

	application, err := NewApplication()
	if err != nil {
		log.Fatalf("Application initialization failed: %v", err)
	}

	application.Run()

	log.Println("Application terminated successfully")
}

// configureRuntime prepares the Go runtime before the UI starts.
func configureRuntime() {
	runtime.GOMAXPROCS(runtime.NumCPU())

	log.Printf("Runtime configured: GOMAXPROCS=%d", runtime.NumCPU())
}

// NewApplication creates and initializes the application using dependency injection.
func NewApplication() (*Application, error) {
	app.SetMetadata(fyne.AppMetadata{
		ID:      AppID,
		Name:    AppName,
		Version: AppVersion,
	})
	fyneApp := app.NewWithID(AppID)

	window := fyneApp.NewWindow(AppName)
	window.Resize(defaultWindowSize())
	window.CenterOnScreen()

	logLevel := determineLogLevel()
	appLogger := logger.NewConsoleLogger(logLevel)

	appLogger.Info("main", "application starting", map[string]interface{}{
		"version":    AppVersion,
		"go_version": runtime.Version(),
		"num_cpu":    runtime.NumCPU(),
		"log_level":  logLevel.String(),
	})

	// Repositories and services
	datasetRepo := models.NewDatasetRepository()
	loader := dataio.NewLoader(appLogger)
	saver := dataio.NewSaver(appLogger)
	chartManager := charts.NewManager()

	// UI components
	mainView := ui.NewMainView(window)
	mainView.SetupMainMenu(AppName, AppVersion)
	desktop := ui.NewDesktop(fyneApp, mainView)

	// Session over the UI and services
	sess := session.NewSession(desktop, loader, saver, chartManager, datasetRepo, appLogger)

	// Lifecycle management
	shutdownManager := shutdown.NewManager(appLogger)
	shutdownManager.Register("dataset repository", datasetRepo)

	watcher, err := dataio.NewWatcher(appLogger, sess.HandleSourceChanged)
	if err != nil {
		appLogger.Warning("main", "file watcher unavailable", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		sess.SetWatcher(watcher)
		shutdownManager.Register("file watcher", watcher)
	}

	sess.SetContext(shutdownManager.Context())
	sess.SetExitHandler(shutdownManager.Initiate)
	shutdownManager.Listen()

	application := &Application{
		fyneApp:         fyneApp,
		window:          window,
		logger:          appLogger,
		view:            mainView,
		desktop:         desktop,
		sess:            sess,
		loader:          loader,
		saver:           saver,
		watcher:         watcher,
		datasetRepo:     datasetRepo,
		chartManager:    chartManager,
		shutdownManager: shutdownManager,
	}

	application.setupWindowEvents()

	appLogger.Info("main", "application initialized", map[string]interface{}{
		"charts": chartManager.Available(),
	})

	return application, nil
}

// Run starts the session loop and blocks on the UI event loop.
func (app *Application) Run() {
	app.logger.Info("main", "starting application UI", nil)

	fyne.Do(func() {
		app.view.Show()
	})

	// Quit the UI loop once shutdown is initiated, whether by the exit
	// action, the window close confirmation or a termination signal.
	go func() {
		<-app.shutdownManager.Done()
		fyne.Do(func() {
			app.fyneApp.Quit()
		})
	}()

	go app.sess.Run()

	app.fyneApp.Run()

	app.shutdownManager.Shutdown()
}

// setupWindowEvents configures window lifecycle events.
func (app *Application) setupWindowEvents() {
	app.window.SetCloseIntercept(func() {
		app.logger.Info("main", "window close requested", nil)

		app.view.ShowConfirm(
			"Exit Application",
			"Are you sure you want to exit?",
			func(confirmed bool) {
				if confirmed {
					app.shutdownManager.Initiate()
				}
			},
		)
	})

	app.window.SetOnClosed(func() {
		app.logger.Info("main", "main window closed", nil)
		app.shutdownManager.Initiate()
	})
}

// defaultWindowSize determines the initial window size.
func defaultWindowSize() fyne.Size {
	return fyne.NewSize(1000, 640)
}

// determineLogLevel determines the log level from the environment.
func determineLogLevel() logger.LogLevel {
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		return logger.DebugLevel
	case "info":
		return logger.InfoLevel
	case "warn":
		return logger.WarnLevel
	case "error":
		return logger.ErrorLevel
	default:
		if os.Getenv("DEBUG") == "1" {
			return logger.DebugLevel
		}
		return logger.InfoLevel
	}
}
