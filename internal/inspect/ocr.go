package inspect

import (
	"context"
	"fmt"
	"os"

	"github.com/cursortools/cursorctl/internal/bridge"
	"github.com/cursortools/cursorctl/internal/detect"
	"github.com/cursortools/cursorctl/internal/winctl"
)

// Windows smaller than this are degenerate capture regions and are skipped
// without a capture attempt.
const (
	MinCaptureWidth  = 200
	MinCaptureHeight = 100
)

// OCRInspector captures the window's screen region and runs the system text
// recognizer over the bitmap. More reliable than the accessibility tree for
// terminal panes, at the cost of a slower pass.
type OCRInspector struct {
	runner   bridge.Runner
	capturer Capturer
}

// NewOCRInspector returns a screen-capture inspector.
func NewOCRInspector(runner bridge.Runner, capturer Capturer) *OCRInspector {
	return &OCRInspector{runner: runner, capturer: capturer}
}

func (o *OCRInspector) Name() string { return "ocr" }

func (o *OCRInspector) Inspect(ctx context.Context, win winctl.Snapshot) (Result, error) {
	if win.Position == nil || win.Size == nil {
		return Result{Skipped: true}, nil
	}
	if win.Size.Width < MinCaptureWidth || win.Size.Height < MinCaptureHeight {
		return Result{Skipped: true}, nil
	}

	tmp, err := os.CreateTemp("", "cursorctl-ocr-*.png")
	if err != nil {
		return Result{}, fmt.Errorf("create capture file: %w", err)
	}
	path := tmp.Name()
	tmp.Close()
	defer os.Remove(path)

	if err := o.capturer.CaptureRegion(ctx, win.Position.X, win.Position.Y,
		win.Size.Width, win.Size.Height, path); err != nil {
		return Result{}, err
	}

	text, err := o.runner.Run(ctx, bridge.RecognizeText(path))
	if err != nil {
		return Result{}, fmt.Errorf("recognize text: %w", err)
	}

	return Result{
		Trigger: detect.ContainsTrigger(text),
		Menu:    detect.IsOptionsMenu(text),
		Text:    text,
	}, nil
}
