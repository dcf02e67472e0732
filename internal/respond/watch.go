package respond

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cursortools/cursorctl/internal/bridge"
	"github.com/cursortools/cursorctl/internal/detect"
	"github.com/cursortools/cursorctl/internal/inspect"
	"github.com/cursortools/cursorctl/internal/logger"
	"github.com/cursortools/cursorctl/internal/winctl"
)

// Watcher repeatedly scans the target's windows, inspects their content, and
// fires the responder when a trigger phrase coincides with an options menu
// not yet handled. It never closes windows.
type Watcher struct {
	manager   *winctl.Manager
	inspector inspect.Inspector
	responder *Responder

	// seen holds content keys already answered, pruned each cycle to keys
	// whose window is still listed. Keys survive failed or negative
	// inspections of a listed window, so a transient miss cannot re-answer
	// an unchanged menu.
	seen map[string]bool
	// announced tracks windows already reported as containing the trigger,
	// to keep the log quiet across cycles.
	announced map[int]bool
}

// NewWatcher wires a scan loop from its parts.
func NewWatcher(manager *winctl.Manager, inspector inspect.Inspector, responder *Responder) *Watcher {
	return &Watcher{
		manager:   manager,
		inspector: inspector,
		responder: responder,
		seen:      make(map[string]bool),
		announced: make(map[int]bool),
	}
}

// Run scans every interval until ctx is cancelled. Permission denial is
// fatal; every other failure is retried on the next tick.
func (w *Watcher) Run(ctx context.Context, interval time.Duration) error {
	logger.Infof("watching %s windows with the %s inspector (interval %s)",
		w.manager.App(), w.inspector.Name(), interval)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := w.ScanOnce(ctx); err != nil {
			if errors.Is(err, bridge.ErrAssistiveAccess) {
				return err
			}
			logger.Debugf("scan failed: %v", err)
		}

		time.Sleep(interval)
	}
}

// ScanOnce performs one enumeration-and-inspection pass. Transient
// per-window inspection failures are swallowed; enumeration failure is
// returned.
func (w *Watcher) ScanOnce(ctx context.Context) error {
	windows, err := w.manager.ListWindows(ctx)
	if err != nil {
		return err
	}

	for _, win := range windows {
		if win.Minimized {
			continue
		}

		res, err := w.inspector.Inspect(ctx, win)
		if err != nil {
			logger.Debugf("inspect window %d: %v", win.Index, err)
			continue
		}
		if res.Skipped || !res.Trigger {
			continue
		}

		if !w.announced[win.Index] {
			logger.Infof("trigger detected in window %d: %s", win.Index, win.Title)
			w.announced[win.Index] = true
		}

		key := detect.Key(win.Index, win.Title, len(res.Text))
		if !res.Menu || w.seen[key] {
			continue
		}

		logger.Infof("options menu detected in window %d, selecting option %s",
			win.Index, w.responder.Option)
		if err := w.responder.SelectOption(ctx, win.Index); err != nil {
			logger.Error("autoresponse failed", err)
			continue
		}
		w.seen[key] = true
	}

	// Prune keys whose window left the list; keys for listed windows are
	// kept regardless of how this cycle's inspection went.
	prefixes := make([]string, 0, len(windows))
	for _, win := range windows {
		prefixes = append(prefixes, detect.KeyPrefix(win.Index, win.Title))
	}
	for key := range w.seen {
		if !listedKey(key, prefixes) {
			delete(w.seen, key)
		}
	}
	return nil
}

func listedKey(key string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}
