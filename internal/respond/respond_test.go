package respond

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cursortools/cursorctl/internal/bridge"
	"github.com/cursortools/cursorctl/internal/inspect"
	"github.com/cursortools/cursorctl/internal/winctl"
)

type fakeRunner struct {
	responses map[string]string
	calls     []string
}

func (f *fakeRunner) Run(_ context.Context, s bridge.Script) (string, error) {
	f.calls = append(f.calls, s.Text())
	return f.responses[s.Text()], nil
}

func (f *fakeRunner) countCalls(sub string) int {
	n := 0
	for _, c := range f.calls {
		if strings.Contains(c, sub) {
			n++
		}
	}
	return n
}

func stubResponder(runner bridge.Runner, app string) *Responder {
	r := NewResponder(runner, app)
	r.sleep = func(time.Duration) {}
	return r
}

func TestResponder_KeystrokeSequence(t *testing.T) {
	f := &fakeRunner{responses: map[string]string{}}
	r := stubResponder(f, "Cursor")

	if err := r.SelectOption(context.Background(), 2); err != nil {
		t.Fatalf("SelectOption: %v", err)
	}

	if len(f.calls) != 3 {
		t.Fatalf("expected 3 bridge calls, got %d: %v", len(f.calls), f.calls)
	}
	if !strings.Contains(f.calls[0], "click window 2") {
		t.Errorf("first call should raise the window, got %q", f.calls[0])
	}
	if !strings.Contains(f.calls[1], `keystroke "2"`) {
		t.Errorf("second call should type the option, got %q", f.calls[1])
	}
	if !strings.Contains(f.calls[2], "key code 36") {
		t.Errorf("third call should press return, got %q", f.calls[2])
	}
}

func TestResponder_CustomOption(t *testing.T) {
	f := &fakeRunner{responses: map[string]string{}}
	r := stubResponder(f, "Cursor")
	r.Option = "3"

	if err := r.SelectOption(context.Background(), 1); err != nil {
		t.Fatalf("SelectOption: %v", err)
	}
	if f.countCalls(`keystroke "3"`) != 1 {
		t.Errorf("expected option 3 keystroke, calls: %v", f.calls)
	}
}

// oneWindowRunner answers manager queries for a single unminimized window.
func oneWindowRunner(app, title string) *fakeRunner {
	return &fakeRunner{responses: map[string]string{
		bridge.ProcessRunning(app).Text():     "true",
		bridge.CountWindows(app).Text():       "1",
		bridge.WindowTitle(app, 1).Text():     title,
		bridge.WindowPosition(app, 1).Text():  "0, 25",
		bridge.WindowSize(app, 1).Text():      "1440, 875",
		bridge.WindowMinimized(app, 1).Text(): "false",
	}}
}

type fakeInspector struct {
	results   map[int]inspect.Result
	errs      map[int]error
	inspected []int
}

func (f *fakeInspector) Name() string { return "fake" }

func (f *fakeInspector) Inspect(_ context.Context, win winctl.Snapshot) (inspect.Result, error) {
	f.inspected = append(f.inspected, win.Index)
	if err := f.errs[win.Index]; err != nil {
		return inspect.Result{}, err
	}
	return f.results[win.Index], nil
}

func TestWatcher_RespondsOncePerContent(t *testing.T) {
	runner := oneWindowRunner("Cursor", "terminal")
	insp := &fakeInspector{results: map[int]inspect.Result{
		1: {Trigger: true, Menu: true, Text: "claude-4\n1 a\n2 b\n3 c\nselect"},
	}}
	w := NewWatcher(winctl.New(runner, "Cursor"), insp, stubResponder(runner, "Cursor"))

	for i := 0; i < 3; i++ {
		if err := w.ScanOnce(context.Background()); err != nil {
			t.Fatalf("scan %d: %v", i, err)
		}
	}

	if got := runner.countCalls("keystroke"); got != 1 {
		t.Errorf("same content across scans answered %d times, want 1", got)
	}
}

func TestWatcher_ChangedContentBecomesEligibleAgain(t *testing.T) {
	runner := oneWindowRunner("Cursor", "terminal")
	insp := &fakeInspector{results: map[int]inspect.Result{
		1: {Trigger: true, Menu: true, Text: "claude-4 select 1 2 3"},
	}}
	w := NewWatcher(winctl.New(runner, "Cursor"), insp, stubResponder(runner, "Cursor"))

	if err := w.ScanOnce(context.Background()); err != nil {
		t.Fatal(err)
	}
	// Longer content means a different key.
	insp.results[1] = inspect.Result{Trigger: true, Menu: true, Text: "claude-4 select 1 2 3 again"}
	if err := w.ScanOnce(context.Background()); err != nil {
		t.Fatal(err)
	}

	if got := runner.countCalls("keystroke"); got != 2 {
		t.Errorf("changed content answered %d times, want 2", got)
	}
}

func TestWatcher_TriggerWithoutMenuDoesNotRespond(t *testing.T) {
	runner := oneWindowRunner("Cursor", "terminal")
	insp := &fakeInspector{results: map[int]inspect.Result{
		1: {Trigger: true, Menu: false, Text: "claude-4 is thinking"},
	}}
	w := NewWatcher(winctl.New(runner, "Cursor"), insp, stubResponder(runner, "Cursor"))

	if err := w.ScanOnce(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := runner.countCalls("keystroke"); got != 0 {
		t.Errorf("responded %d times without a menu, want 0", got)
	}
}

func TestWatcher_SkipsMinimizedWindows(t *testing.T) {
	runner := oneWindowRunner("Cursor", "terminal")
	runner.responses[bridge.WindowMinimized("Cursor", 1).Text()] = "true"
	insp := &fakeInspector{results: map[int]inspect.Result{
		1: {Trigger: true, Menu: true, Text: "claude-4 select 1 2 3"},
	}}
	w := NewWatcher(winctl.New(runner, "Cursor"), insp, stubResponder(runner, "Cursor"))

	if err := w.ScanOnce(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(insp.inspected) != 0 {
		t.Errorf("minimized window was inspected %d times, want 0", len(insp.inspected))
	}
}

func TestWatcher_SameMenuReappearingIsNotReanswered(t *testing.T) {
	runner := oneWindowRunner("Cursor", "terminal")
	menu := inspect.Result{Trigger: true, Menu: true, Text: "claude-4 select 1 2 3"}
	insp := &fakeInspector{results: map[int]inspect.Result{1: menu}}
	w := NewWatcher(winctl.New(runner, "Cursor"), insp, stubResponder(runner, "Cursor"))

	if err := w.ScanOnce(context.Background()); err != nil {
		t.Fatal(err)
	}
	// The window stays listed while its content briefly reads as empty,
	// then the same menu is read again.
	insp.results[1] = inspect.Result{Trigger: false}
	if err := w.ScanOnce(context.Background()); err != nil {
		t.Fatal(err)
	}
	insp.results[1] = menu
	if err := w.ScanOnce(context.Background()); err != nil {
		t.Fatal(err)
	}

	if got := runner.countCalls("keystroke"); got != 1 {
		t.Errorf("unchanged menu in a listed window answered %d times, want 1", got)
	}
}

func TestWatcher_RetainsSeenAcrossInspectionFailure(t *testing.T) {
	runner := oneWindowRunner("Cursor", "terminal")
	menu := inspect.Result{Trigger: true, Menu: true, Text: "claude-4 select 1 2 3"}
	insp := &fakeInspector{
		results: map[int]inspect.Result{1: menu},
		errs:    map[int]error{},
	}
	w := NewWatcher(winctl.New(runner, "Cursor"), insp, stubResponder(runner, "Cursor"))

	if err := w.ScanOnce(context.Background()); err != nil {
		t.Fatal(err)
	}
	// One failed inspection, then the same menu is read again.
	insp.errs[1] = errors.New("text recognition failed")
	if err := w.ScanOnce(context.Background()); err != nil {
		t.Fatal(err)
	}
	insp.errs = map[int]error{}
	if err := w.ScanOnce(context.Background()); err != nil {
		t.Fatal(err)
	}

	if got := runner.countCalls("keystroke"); got != 1 {
		t.Errorf("unchanged menu answered %d times across a failed inspection, want 1", got)
	}
}

func TestWatcher_PrunesSeenWhenWindowDisappears(t *testing.T) {
	runner := oneWindowRunner("Cursor", "terminal")
	menu := inspect.Result{Trigger: true, Menu: true, Text: "claude-4 select 1 2 3"}
	insp := &fakeInspector{results: map[int]inspect.Result{1: menu}}
	w := NewWatcher(winctl.New(runner, "Cursor"), insp, stubResponder(runner, "Cursor"))

	if err := w.ScanOnce(context.Background()); err != nil {
		t.Fatal(err)
	}
	// The window closes for a cycle, then a window with the same index,
	// title, and content is listed again.
	runner.responses[bridge.CountWindows("Cursor").Text()] = "0"
	if err := w.ScanOnce(context.Background()); err != nil {
		t.Fatal(err)
	}
	runner.responses[bridge.CountWindows("Cursor").Text()] = "1"
	if err := w.ScanOnce(context.Background()); err != nil {
		t.Fatal(err)
	}

	if got := runner.countCalls("keystroke"); got != 2 {
		t.Errorf("menu in a relisted window answered %d times, want 2", got)
	}
}
