// Package gui is the desktop surface: a window list with the same
// enumerator/actuator operations the CLI exposes, plus a monitor toggle.
package gui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/cursortools/cursorctl/internal/bridge"
	"github.com/cursortools/cursorctl/internal/logger"
	"github.com/cursortools/cursorctl/internal/monitor"
	"github.com/cursortools/cursorctl/internal/winctl"
)

// Controller owns the window state shown by the GUI. All bridge calls are
// serialized: button handlers run on the event thread and the monitor runs
// on one background goroutine at a time.
type Controller struct {
	manager  *winctl.Manager
	interval time.Duration

	mu       sync.Mutex
	windows  []winctl.Snapshot
	selected int

	fyneApp    fyne.App
	win        fyne.Window
	list       *widget.List
	details    *widget.Label
	status     *widget.Label
	monitorBtn *widget.Button

	xEntry, yEntry *widget.Entry
	wEntry, hEntry *widget.Entry

	stopMonitor context.CancelFunc
}

// Run builds the GUI and blocks until the window is closed.
func Run(manager *winctl.Manager, interval time.Duration) {
	c := &Controller{
		manager:  manager,
		interval: interval,
		selected: -1,
	}
	c.fyneApp = app.New()
	c.win = c.fyneApp.NewWindow(fmt.Sprintf("%s Window Controller", manager.App()))
	c.win.Resize(fyne.NewSize(800, 600))
	c.win.SetContent(c.buildUI())
	c.refresh()
	c.win.ShowAndRun()
}

func (c *Controller) buildUI() fyne.CanvasObject {
	c.list = widget.NewList(
		func() int {
			c.mu.Lock()
			defer c.mu.Unlock()
			return len(c.windows)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("window")
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			c.mu.Lock()
			defer c.mu.Unlock()
			if id >= len(c.windows) {
				return
			}
			w := c.windows[id]
			status := "active"
			if w.Minimized {
				status = "minimized"
			}
			obj.(*widget.Label).SetText(fmt.Sprintf("Window %d: %s [%s]", w.Index, w.Title, status))
		},
	)
	c.list.OnSelected = func(id widget.ListItemID) {
		c.mu.Lock()
		c.selected = id
		var detail string
		if id < len(c.windows) {
			w := c.windows[id]
			detail = fmt.Sprintf("Title: %s\nPosition: %s\nSize: %s\nMinimized: %v",
				w.Title, describePoint(w.Position), describeSize(w.Size), w.Minimized)
		}
		c.mu.Unlock()
		c.details.SetText(detail)
	}

	c.details = widget.NewLabel("Select a window to see details")
	c.status = widget.NewLabel("Ready")
	c.monitorBtn = widget.NewButton("Start Monitor", c.toggleMonitor)

	top := container.NewHBox(
		widget.NewButton("Refresh", c.refresh),
		c.monitorBtn,
	)

	actions := container.NewHBox(
		widget.NewButton("Focus", func() { c.withSelected("Focused", c.manager.Focus) }),
		widget.NewButton("Minimize", func() { c.withSelected("Minimized", c.manager.Minimize) }),
		widget.NewButton("Unminimize", func() { c.withSelected("Unminimized", c.manager.Unminimize) }),
		widget.NewButton("Close", c.closeSelected),
	)

	c.xEntry = newNumberEntry("X")
	c.yEntry = newNumberEntry("Y")
	c.wEntry = newNumberEntry("W")
	c.hEntry = newNumberEntry("H")

	moveRow := container.NewHBox(
		widget.NewLabel("Move to:"), c.xEntry, c.yEntry,
		widget.NewButton("Move", c.moveSelected),
	)
	resizeRow := container.NewHBox(
		widget.NewLabel("Resize to:"), c.wEntry, c.hEntry,
		widget.NewButton("Resize", c.resizeSelected),
	)

	bottom := container.NewVBox(c.details, actions, moveRow, resizeRow, c.status)
	return container.NewBorder(top, bottom, nil, nil, c.list)
}

func newNumberEntry(placeholder string) *widget.Entry {
	e := widget.NewEntry()
	e.SetPlaceHolder(placeholder)
	return e
}

// refresh re-enumerates windows and repaints the list.
func (c *Controller) refresh() {
	windows, err := c.manager.ListWindows(context.Background())
	if err != nil {
		c.showError(err)
		return
	}
	c.mu.Lock()
	c.windows = windows
	c.selected = -1
	c.mu.Unlock()

	c.list.UnselectAll()
	c.list.Refresh()
	c.details.SetText("Select a window to see details")
	c.status.SetText(fmt.Sprintf("Found %d window(s)", len(windows)))
}

// selectedWindow returns the index of the selected window, or 0 with a
// status hint when nothing is selected.
func (c *Controller) selectedWindow() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected < 0 || c.selected >= len(c.windows) {
		c.status.SetText("Select a window first")
		return 0
	}
	return c.windows[c.selected].Index
}

func (c *Controller) withSelected(verb string, action func(ctx context.Context, index int) error) {
	index := c.selectedWindow()
	if index == 0 {
		return
	}
	if err := action(context.Background(), index); err != nil {
		c.showError(err)
		return
	}
	c.status.SetText(fmt.Sprintf("%s window %d", verb, index))
	c.refresh()
}

func (c *Controller) closeSelected() {
	index := c.selectedWindow()
	if index == 0 {
		return
	}
	dialog.ShowConfirm("Close Window",
		fmt.Sprintf("Close window %d of %s?", index, c.manager.App()),
		func(confirmed bool) {
			if !confirmed {
				return
			}
			if err := c.manager.Close(context.Background(), index); err != nil {
				c.showError(err)
				return
			}
			c.status.SetText(fmt.Sprintf("Closed window %d", index))
			c.refresh()
		}, c.win)
}

func (c *Controller) moveSelected() {
	index := c.selectedWindow()
	if index == 0 {
		return
	}
	x, errX := strconv.Atoi(c.xEntry.Text)
	y, errY := strconv.Atoi(c.yEntry.Text)
	if errX != nil || errY != nil {
		dialog.ShowInformation("Invalid input", "X and Y must be integers", c.win)
		return
	}
	if err := c.manager.Move(context.Background(), index, x, y); err != nil {
		c.showError(err)
		return
	}
	c.status.SetText(fmt.Sprintf("Moved window %d to (%d, %d)", index, x, y))
	c.refresh()
}

func (c *Controller) resizeSelected() {
	index := c.selectedWindow()
	if index == 0 {
		return
	}
	w, errW := strconv.Atoi(c.wEntry.Text)
	h, errH := strconv.Atoi(c.hEntry.Text)
	if errW != nil || errH != nil || w < 1 || h < 1 {
		dialog.ShowInformation("Invalid input", "Width and height must be positive integers", c.win)
		return
	}
	if err := c.manager.Resize(context.Background(), index, w, h); err != nil {
		c.showError(err)
		return
	}
	c.status.SetText(fmt.Sprintf("Resized window %d to %dx%d", index, w, h))
	c.refresh()
}

// toggleMonitor starts or stops the background poller. The cancellation is
// cooperative: the poller observes it at the top of its next iteration.
func (c *Controller) toggleMonitor() {
	c.mu.Lock()
	if c.stopMonitor != nil {
		c.stopMonitor()
		c.stopMonitor = nil
		c.mu.Unlock()
		c.monitorBtn.SetText("Start Monitor")
		c.status.SetText("Monitoring stopped")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.stopMonitor = cancel
	c.mu.Unlock()
	c.monitorBtn.SetText("Stop Monitor")
	c.status.SetText("Monitoring...")

	p := &monitor.Poller{
		Interval: c.interval,
		List:     c.manager.ListWindows,
		OnChange: func(windows []winctl.Snapshot) {
			c.mu.Lock()
			c.windows = windows
			c.mu.Unlock()
			c.list.Refresh()
			c.status.SetText(fmt.Sprintf("[%s] Window state changed (%d windows)",
				time.Now().Format("15:04:05"), len(windows)))
		},
	}

	go func() {
		err := p.Run(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Errorf("monitor stopped: %v", err)
			c.mu.Lock()
			c.stopMonitor = nil
			c.mu.Unlock()
			c.showError(err)
			c.monitorBtn.SetText("Start Monitor")
			c.status.SetText("Monitoring stopped")
		}
	}()
}

// showError surfaces an error as a modal; permission denial carries its own
// remediation instructions.
func (c *Controller) showError(err error) {
	if errors.Is(err, bridge.ErrAssistiveAccess) {
		dialog.ShowError(bridge.ErrAssistiveAccess, c.win)
		return
	}
	dialog.ShowError(err, c.win)
}

func describePoint(p *winctl.Point) string {
	if p == nil {
		return "Unknown"
	}
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

func describeSize(s *winctl.Size) string {
	if s == nil {
		return "Unknown"
	}
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}
