// Package pages provides GUI pages for AverageCalc.
package pages

import (
	"errors"
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/whhaicheng/AverageCalc/internal/app/usecase"
	"github.com/whhaicheng/AverageCalc/internal/domain/execution"
	domainreport "github.com/whhaicheng/AverageCalc/internal/domain/report"
	"github.com/whhaicheng/AverageCalc/internal/domain/sequence"
	"github.com/whhaicheng/AverageCalc/internal/infra/report"
)

const (
	calculateText = "Calculate Average"
	loadingText   = "Loading..."
)

// AveragePage is the single calculator page. All state lives in the
// controller; the page only renders snapshots and forwards input.
type AveragePage struct {
	win  fyne.Window
	ctrl *usecase.RequestController

	kindSelect   *widget.Select
	countEntry   *widget.Entry
	calcButton   *widget.Button
	reportButton *widget.Button
	errorLabel   *widget.Label
	inputLabel   *widget.Label
	numbersLabel *widget.Label
	averageLabel *widget.Label
	results      *fyne.Container

	unsubscribe func()
}

// NewAveragePage creates the page and subscribes it to ctrl.
func NewAveragePage(win fyne.Window, ctrl *usecase.RequestController) (*AveragePage, fyne.CanvasObject) {
	page := &AveragePage{
		win:  win,
		ctrl: ctrl,
	}

	kind, count := ctrl.Params()

	// Number type selector
	page.kindSelect = widget.NewSelect(sequence.Labels(), nil)
	page.kindSelect.SetSelected(kind.Label())
	page.kindSelect.OnChanged = page.onKindChanged

	// Count entry
	page.countEntry = widget.NewEntry()
	page.countEntry.SetText(fmt.Sprintf("%d", count))
	page.countEntry.OnChanged = page.onCountChanged

	page.calcButton = widget.NewButton(calculateText, page.onCalculate)
	page.calcButton.Importance = widget.HighImportance
	page.reportButton = widget.NewButton("Show Report", page.onShowReport)
	page.reportButton.Disable()

	page.inputLabel = widget.NewLabel("")
	page.inputLabel.Hide()
	page.errorLabel = widget.NewLabel("")
	page.errorLabel.Importance = widget.DangerImportance
	page.errorLabel.Hide()

	// Results table
	page.numbersLabel = widget.NewLabel("")
	page.numbersLabel.Wrapping = fyne.TextWrapWord
	page.averageLabel = widget.NewLabel("")
	page.results = container.NewGridWithColumns(2,
		widget.NewLabelWithStyle("Fetched Numbers", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Average", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		page.numbersLabel,
		page.averageLabel,
	)
	page.results.Hide()

	form := &widget.Form{
		Items: []*widget.FormItem{
			widget.NewFormItem("Number Type", page.kindSelect),
			widget.NewFormItem("Count", page.countEntry),
		},
	}

	content := container.NewVBox(
		widget.NewCard("Average Calculator", "", container.NewPadded(form)),
		page.inputLabel,
		container.NewHBox(page.calcButton, page.reportButton),
		page.errorLabel,
		widget.NewSeparator(),
		page.results,
	)

	page.unsubscribe = ctrl.Subscribe(func(snap execution.Snapshot) {
		fyne.Do(func() {
			page.render(snap)
		})
	})
	page.render(ctrl.State())

	return page, content
}

// Refresh renders the controller's current state.
func (p *AveragePage) Refresh() {
	p.render(p.ctrl.State())
}

// Close stops receiving state updates.
func (p *AveragePage) Close() {
	if p.unsubscribe != nil {
		p.unsubscribe()
		p.unsubscribe = nil
	}
}

// render applies a snapshot to the widgets. Must run on the UI thread.
func (p *AveragePage) render(snap execution.Snapshot) {
	if snap.IsLoading() {
		p.calcButton.SetText(loadingText)
		p.calcButton.Disable()
	} else {
		p.calcButton.SetText(calculateText)
		p.calcButton.Enable()
	}

	if snap.State.IsTerminal() {
		p.reportButton.Enable()
	} else {
		p.reportButton.Disable()
	}

	if msg := snap.Message(); msg != "" {
		p.errorLabel.SetText(msg)
		p.errorLabel.Show()
	} else {
		p.errorLabel.SetText("")
		p.errorLabel.Hide()
	}

	res := snap.Display()
	if res == nil || res.Sequence.Len() == 0 {
		p.results.Hide()
		return
	}
	p.numbersLabel.SetText(res.Sequence.String())
	p.averageLabel.SetText(domainreport.FormatAverage(res.Average))
	p.results.Show()
}

// onKindChanged forwards a selector change.
func (p *AveragePage) onKindChanged(label string) {
	kind, err := sequence.ParseKind(label)
	if err != nil {
		slog.Warn("AveragePage: unknown number type selected", "label", label, "error", err)
		return
	}
	if err := p.ctrl.SetSourceKind(kind); err != nil {
		if errors.Is(err, sequence.ErrCountTooLarge) {
			// The current count is above this kind's cap; keep the old kind.
			p.showInputError(err.Error())
			current, _ := p.ctrl.Params()
			p.kindSelect.SetSelected(current.Label())
			return
		}
		slog.Error("AveragePage: failed to set number type", "kind", kind, "error", err)
	}
}

// onCountChanged validates the entry text before it reaches the controller.
func (p *AveragePage) onCountChanged(text string) {
	count, err := sequence.ParseCount(text)
	if err != nil {
		p.showInputError("Please enter a whole number")
		return
	}
	if err := p.ctrl.SetRequestedCount(count); err != nil {
		if errors.Is(err, sequence.ErrCountTooLarge) {
			p.showInputError(err.Error())
			return
		}
		slog.Error("AveragePage: failed to set count", "count", count, "error", err)
		return
	}
	p.inputLabel.Hide()
}

func (p *AveragePage) showInputError(msg string) {
	p.inputLabel.SetText(msg)
	p.inputLabel.Show()
}

// onCalculate re-runs the current request.
func (p *AveragePage) onCalculate() {
	if _, err := p.ctrl.Trigger(); err != nil {
		slog.Error("AveragePage: failed to trigger request", "error", err)
	}
}

// onShowReport previews a Markdown report of the settled request.
func (p *AveragePage) onShowReport() {
	rep, err := report.Render(p.ctrl.State(), domainreport.DefaultConfig(domainreport.FormatMarkdown))
	if err != nil {
		dialog.ShowError(err, p.win)
		return
	}
	dialog.ShowCustom("Report", "Close", widget.NewRichTextFromMarkdown(string(rep.Content)), p.win)
}
