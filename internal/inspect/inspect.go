// Package inspect extracts window content and classifies it. Two independent
// strategies exist: an accessibility-tree text dump and screen capture with
// on-device OCR. Both feed the same matchers in the detect package.
package inspect

import (
	"context"

	"github.com/cursortools/cursorctl/internal/winctl"
)

// Result is one inspection pass over a window.
type Result struct {
	// Trigger is true when the content mentions a trigger phrase.
	Trigger bool
	// Menu is true when the content looks like a numbered options menu.
	Menu bool
	// Text is the extracted content the classification was based on.
	Text string
	// Skipped is true when the window was not inspected at all (e.g. too
	// small to capture).
	Skipped bool
}

// Inspector extracts and classifies one window's content.
type Inspector interface {
	// Inspect examines the window. Errors are transient: callers retry on
	// the next poll cycle.
	Inspect(ctx context.Context, win winctl.Snapshot) (Result, error)

	// Name identifies the strategy for logging.
	Name() string
}
