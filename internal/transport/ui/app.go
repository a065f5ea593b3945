// Package ui provides the GUI implementation using Fyne.
// It only handles I/O and user interaction; request logic lives in the controller.
package ui

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/whhaicheng/AverageCalc/internal/app/usecase"
	"github.com/whhaicheng/AverageCalc/internal/transport/ui/pages"
)

// AppID identifies the application to Fyne preferences storage.
const AppID = "com.averagecalc.app"

// Application represents the Fyne GUI application.
type Application struct {
	app  fyne.App
	ctrl *usecase.RequestController
}

// NewApplication creates a new Fyne application.
func NewApplication(ctrl *usecase.RequestController) *Application {
	return newApplication(app.NewWithID(AppID), ctrl)
}

func newApplication(a fyne.App, ctrl *usecase.RequestController) *Application {
	return &Application{app: a, ctrl: ctrl}
}

// buildWindow creates the main window and issues the initial request.
func (a *Application) buildWindow() (fyne.Window, *pages.AveragePage) {
	window := a.app.NewWindow("Average Calculator")
	window.Resize(fyne.NewSize(640, 480))
	window.SetMaster()

	page, content := pages.NewAveragePage(window, a.ctrl)
	window.SetContent(content)

	window.SetCloseIntercept(func() {
		page.Close()
		a.ctrl.Close()
		a.app.Quit()
	})

	if err := a.ctrl.Start(); err != nil {
		slog.Error("UI: failed to start initial request", "error", err)
	}
	return window, page
}

// Run starts the application and blocks until the window is closed.
func (a *Application) Run() {
	window, _ := a.buildWindow()
	window.ShowAndRun()
}
