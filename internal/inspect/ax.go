package inspect

import (
	"context"
	"fmt"

	"github.com/cursortools/cursorctl/internal/bridge"
	"github.com/cursortools/cursorctl/internal/detect"
	"github.com/cursortools/cursorctl/internal/winctl"
)

// AXInspector dumps a window's entire accessibility element subtree as text.
// The dump is coarse and the title is folded in, since the trigger phrase
// sometimes only appears there.
type AXInspector struct {
	runner bridge.Runner
	app    string
}

// NewAXInspector returns an accessibility-tree inspector for the named
// process.
func NewAXInspector(runner bridge.Runner, app string) *AXInspector {
	return &AXInspector{runner: runner, app: app}
}

func (a *AXInspector) Name() string { return "ax" }

func (a *AXInspector) Inspect(ctx context.Context, win winctl.Snapshot) (Result, error) {
	contents, err := a.runner.Run(ctx, bridge.WindowContents(a.app, win.Index))
	if err != nil {
		return Result{}, fmt.Errorf("dump window %d contents: %w", win.Index, err)
	}

	text := win.Title + "\n" + contents
	return Result{
		Trigger: detect.ContainsTrigger(text),
		Menu:    detect.IsOptionsMenu(contents),
		Text:    contents,
	}, nil
}
