// Package gui implements the desktop presenter: a small always-visible
// window showing the latest usage summary and spike alerts.
package gui

import (
	"context"
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/p-reiter/usagewatch/internal/config"
	"github.com/p-reiter/usagewatch/internal/render"
	"github.com/p-reiter/usagewatch/internal/services"
	"github.com/p-reiter/usagewatch/internal/services/poller"
)

// Window is the desktop presenter. Present may be called from any
// goroutine; updates are marshalled onto the Fyne event loop.
type Window struct {
	app fyne.App
	win fyne.Window
	mgr *services.Manager

	table      binding.String
	windowLine binding.String
	statusLine binding.String
	alertLine  binding.String
}

// New creates the desktop window for the given manager.
func New(mgr *services.Manager, cfg *config.Config) *Window {
	a := fyneapp.NewWithID("com.usagewatch.monitor")
	win := a.NewWindow("usagewatch")
	win.Resize(fyne.NewSize(560, 320))

	w := &Window{
		app:        a,
		win:        win,
		mgr:        mgr,
		table:      binding.NewString(),
		windowLine: binding.NewString(),
		statusLine: binding.NewString(),
		alertLine:  binding.NewString(),
	}

	_ = w.statusLine.Set(fmt.Sprintf("Watching %s, polling every %s",
		cfg.MaskedKeyID(), cfg.PollInterval))
	_ = w.windowLine.Set("Waiting for first poll...")

	win.SetContent(w.buildUI())
	return w
}

// buildUI constructs the Fyne layout.
func (w *Window) buildUI() fyne.CanvasObject {
	windowLbl := widget.NewLabelWithData(w.windowLine)
	windowLbl.TextStyle = fyne.TextStyle{Italic: true}

	tableLbl := widget.NewLabelWithData(w.table)
	tableLbl.TextStyle = fyne.TextStyle{Monospace: true}

	alertLbl := widget.NewLabelWithData(w.alertLine)
	alertLbl.Wrapping = fyne.TextWrapWord

	statusLbl := widget.NewLabelWithData(w.statusLine)
	statusLbl.TextStyle = fyne.TextStyle{Italic: true}

	refreshBtn := widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), func() {
		go w.doRefresh()
	})
	refreshBtn.Importance = widget.LowImportance

	footer := container.NewHBox(statusLbl, layout.NewSpacer(), refreshBtn)

	content := container.NewVBox(
		windowLbl,
		tableLbl,
		alertLbl,
	)

	return container.NewBorder(nil, footer, nil, nil, container.NewVScroll(content))
}

func (w *Window) doRefresh() {
	fyne.Do(func() { _ = w.statusLine.Set("Refreshing...") })
	if !w.mgr.RefreshNow(context.Background()) {
		fyne.Do(func() { _ = w.statusLine.Set("Refresh already in progress") })
	}
}

// Present implements poller.Presenter.
func (w *Window) Present(result poller.Result) {
	windowLine := fmt.Sprintf("Window %s (polled %s)",
		result.Window.RangeUTC(), render.Timestamp(result.At))

	if result.Err != nil {
		fyne.Do(func() {
			_ = w.windowLine.Set(windowLine)
			_ = w.statusLine.Set(fmt.Sprintf("Poll failed: %v", result.Err))
		})
		return
	}

	table := render.PlainTable(result.Summary)

	var alerts string
	if len(result.Alerts) > 0 {
		lines := make([]string, 0, len(result.Alerts))
		for _, alert := range result.Alerts {
			lines = append(lines, "!! "+alert.Message)
		}
		alerts = strings.Join(lines, "\n")
	}

	status := fmt.Sprintf("%s tokens, %s estimated",
		render.Comma(result.Summary.Totals.TotalTokens()),
		render.Money(result.Summary.Totals.Cost))

	fyne.Do(func() {
		_ = w.windowLine.Set(windowLine)
		_ = w.table.Set(table)
		_ = w.alertLine.Set(alerts)
		_ = w.statusLine.Set(status)
	})
}

// ShowAndRun displays the window and blocks until it is closed.
func (w *Window) ShowAndRun() {
	w.win.Show()
	w.app.Run()
}
