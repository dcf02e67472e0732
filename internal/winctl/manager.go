// Package winctl enumerates and controls the windows of a single application
// process through the scripting bridge.
package winctl

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cursortools/cursorctl/internal/bridge"
	"github.com/cursortools/cursorctl/internal/logger"
)

// UnknownTitle is the placeholder used when a window's title query fails.
const UnknownTitle = "Unknown"

// Manager performs window queries and actions for one target process.
type Manager struct {
	runner bridge.Runner
	app    string
}

// New returns a Manager bound to the named application process.
func New(runner bridge.Runner, app string) *Manager {
	return &Manager{runner: runner, app: app}
}

// App returns the target process name.
func (m *Manager) App() string { return m.app }

// Running reports whether the target process exists.
func (m *Manager) Running(ctx context.Context) (bool, error) {
	out, err := m.runner.Run(ctx, bridge.ProcessRunning(m.app))
	if err != nil {
		if errors.Is(err, bridge.ErrAssistiveAccess) {
			return false, err
		}
		return false, nil
	}
	return out == "true", nil
}

// ListWindows enumerates the target's windows. A process that is not running
// or an unobtainable window count yields an empty list, not an error; only
// permission denial is fatal. Individual field queries that fail leave
// placeholder values. There is no atomicity across the per-field queries —
// a window may change between them.
func (m *Manager) ListWindows(ctx context.Context) ([]Snapshot, error) {
	running, err := m.Running(ctx)
	if err != nil {
		return nil, err
	}
	if !running {
		logger.Debugf("%s is not running", m.app)
		return []Snapshot{}, nil
	}

	out, err := m.runner.Run(ctx, bridge.CountWindows(m.app))
	if err != nil {
		if errors.Is(err, bridge.ErrAssistiveAccess) {
			return nil, err
		}
		logger.Debugf("window count unobtainable for %s: %v", m.app, err)
		return []Snapshot{}, nil
	}
	count, err := strconv.Atoi(out)
	if err != nil || count < 0 {
		logger.Debugf("window count unobtainable for %s: %q", m.app, out)
		return []Snapshot{}, nil
	}

	windows := make([]Snapshot, 0, count)
	for i := 1; i <= count; i++ {
		win, err := m.windowInfo(ctx, i)
		if err != nil {
			return nil, err
		}
		windows = append(windows, win)
	}
	return windows, nil
}

// windowInfo queries one window's fields independently; failures degrade to
// placeholders rather than aborting the enumeration.
func (m *Manager) windowInfo(ctx context.Context, index int) (Snapshot, error) {
	win := Snapshot{Index: index, Title: UnknownTitle}

	title, err := m.runner.Run(ctx, bridge.WindowTitle(m.app, index))
	if errors.Is(err, bridge.ErrAssistiveAccess) {
		return win, err
	}
	if err == nil && title != "" {
		win.Title = title
	}

	if pos, err := m.runner.Run(ctx, bridge.WindowPosition(m.app, index)); err == nil {
		if x, y, ok := parsePair(pos); ok {
			win.Position = &Point{X: x, Y: y}
		}
	}

	if size, err := m.runner.Run(ctx, bridge.WindowSize(m.app, index)); err == nil {
		if w, h, ok := parsePair(size); ok {
			win.Size = &Size{Width: w, Height: h}
		}
	}

	if minimized, err := m.runner.Run(ctx, bridge.WindowMinimized(m.app, index)); err == nil {
		win.Minimized = minimized == "true"
	}

	return win, nil
}

// Focus brings window index to the foreground.
func (m *Manager) Focus(ctx context.Context, index int) error {
	if _, err := m.runner.Run(ctx, bridge.RaiseWindow(m.app, index)); err != nil {
		return fmt.Errorf("focus window %d: %w", index, err)
	}
	return nil
}

// Minimize minimizes window index.
func (m *Manager) Minimize(ctx context.Context, index int) error {
	if _, err := m.runner.Run(ctx, bridge.SetWindowMinimized(m.app, index, true)); err != nil {
		return fmt.Errorf("minimize window %d: %w", index, err)
	}
	return nil
}

// Unminimize restores window index from the Dock.
func (m *Manager) Unminimize(ctx context.Context, index int) error {
	if _, err := m.runner.Run(ctx, bridge.SetWindowMinimized(m.app, index, false)); err != nil {
		return fmt.Errorf("unminimize window %d: %w", index, err)
	}
	return nil
}

// Close clicks the close button of window index. Callers own any
// confirmation step; autonomous paths must not call this.
func (m *Manager) Close(ctx context.Context, index int) error {
	if _, err := m.runner.Run(ctx, bridge.CloseWindow(m.app, index)); err != nil {
		return fmt.Errorf("close window %d: %w", index, err)
	}
	return nil
}

// Move sets the position of window index.
func (m *Manager) Move(ctx context.Context, index, x, y int) error {
	if _, err := m.runner.Run(ctx, bridge.MoveWindow(m.app, index, x, y)); err != nil {
		return fmt.Errorf("move window %d: %w", index, err)
	}
	return nil
}

// Resize sets the size of window index.
func (m *Manager) Resize(ctx context.Context, index, width, height int) error {
	if _, err := m.runner.Run(ctx, bridge.ResizeWindow(m.app, index, width, height)); err != nil {
		return fmt.Errorf("resize window %d: %w", index, err)
	}
	return nil
}

// parsePair parses a System Events "x, y" list result.
func parsePair(s string) (int, int, bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, false
	}
	a, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	b, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}
	return a, b, true
}
