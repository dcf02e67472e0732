package inspect

import (
	"context"
	"strings"
	"testing"

	"github.com/cursortools/cursorctl/internal/bridge"
	"github.com/cursortools/cursorctl/internal/winctl"
)

type scriptedRunner struct {
	out   string
	err   error
	calls []string
}

func (s *scriptedRunner) Run(_ context.Context, script bridge.Script) (string, error) {
	s.calls = append(s.calls, script.Text())
	return s.out, s.err
}

type recordingCapturer struct {
	calls int
	fail  error
}

func (r *recordingCapturer) CaptureRegion(_ context.Context, x, y, w, h int, outPath string) error {
	r.calls++
	return r.fail
}

func window(w, h int) winctl.Snapshot {
	return winctl.Snapshot{
		Index:    1,
		Title:    "terminal",
		Position: &winctl.Point{X: 0, Y: 25},
		Size:     &winctl.Size{Width: w, Height: h},
	}
}

func TestAXInspector_ClassifiesDump(t *testing.T) {
	runner := &scriptedRunner{out: "Select a model:\n1. sonnet\n2. claude-4\n3. haiku"}
	ax := NewAXInspector(runner, "Cursor")

	res, err := ax.Inspect(context.Background(), window(800, 600))
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if !res.Trigger || !res.Menu {
		t.Errorf("trigger=%v menu=%v, want both true", res.Trigger, res.Menu)
	}
	if len(runner.calls) != 1 || !strings.Contains(runner.calls[0], "get entire contents") {
		t.Errorf("expected one entire-contents dump, got %v", runner.calls)
	}
}

func TestAXInspector_TriggerInTitleOnly(t *testing.T) {
	runner := &scriptedRunner{out: "plain editor contents"}
	ax := NewAXInspector(runner, "Cursor")

	win := window(800, 600)
	win.Title = "chat — Claude 4"
	res, err := ax.Inspect(context.Background(), win)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if !res.Trigger {
		t.Error("trigger phrase in the window title should count")
	}
	if res.Menu {
		t.Error("no menu in contents, menu should be false")
	}
}

func TestOCRInspector_SkipsSmallWindows(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		skip bool
	}{
		{"narrow", 199, 600, true},
		{"short", 800, 99, true},
		{"boundary", 200, 100, false},
		{"large", 1440, 875, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			capturer := &recordingCapturer{}
			runner := &scriptedRunner{out: ""}
			ocr := NewOCRInspector(runner, capturer)

			res, err := ocr.Inspect(context.Background(), window(tt.w, tt.h))
			if err != nil {
				t.Fatalf("Inspect: %v", err)
			}
			if res.Skipped != tt.skip {
				t.Errorf("skipped = %v, want %v", res.Skipped, tt.skip)
			}
			wantCalls := 1
			if tt.skip {
				wantCalls = 0
			}
			if capturer.calls != wantCalls {
				t.Errorf("capture attempts = %d, want %d", capturer.calls, wantCalls)
			}
		})
	}
}

func TestOCRInspector_SkipsUnknownBounds(t *testing.T) {
	capturer := &recordingCapturer{}
	ocr := NewOCRInspector(&scriptedRunner{}, capturer)

	res, err := ocr.Inspect(context.Background(), winctl.Snapshot{Index: 1, Title: "x"})
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if !res.Skipped || capturer.calls != 0 {
		t.Errorf("window with unknown bounds must be skipped without capture, got skipped=%v calls=%d",
			res.Skipped, capturer.calls)
	}
}

func TestOCRInspector_ClassifiesRecognizedText(t *testing.T) {
	runner := &scriptedRunner{out: "Available models\n1 sonnet\n2 opus-4\n3 haiku\nselect one"}
	ocr := NewOCRInspector(runner, &recordingCapturer{})

	res, err := ocr.Inspect(context.Background(), window(800, 600))
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if !res.Trigger || !res.Menu {
		t.Errorf("trigger=%v menu=%v, want both true", res.Trigger, res.Menu)
	}
	if res.Text != runner.out {
		t.Errorf("result text should carry the recognized text")
	}
	if len(runner.calls) != 1 || !strings.Contains(runner.calls[0], "VNRecognizeTextRequest") {
		t.Errorf("expected one Vision pass, got %d calls", len(runner.calls))
	}
}
