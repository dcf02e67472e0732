package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cursortools/cursorctl/internal/bridge"
	"github.com/cursortools/cursorctl/internal/inspect"
	"github.com/cursortools/cursorctl/internal/respond"
	"github.com/cursortools/cursorctl/internal/winctl"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Autonomously answer model-selection menus",
	Long: `Continuously inspect the target's windows for a trigger model name together
with a numbered 1/2/3 menu, and answer the menu by focusing the window and
typing the configured option followed by Return.

By default window content is read from the accessibility element tree. With
--ocr each window's screen region is captured and run through the system text
recognizer instead, which is more reliable for terminal panes. Windows
smaller than 200x100 are never captured.

The watch loop never closes windows. Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().Bool("ocr", false, "Use screen capture + OCR instead of the accessibility tree")
	watchCmd.Flags().Int("interval", 0, "Scan interval in seconds (default from config: 2 for tree, 3 for OCR)")
	watchCmd.Flags().String("option", "", "Digit typed to answer the menu (default from config, else 2)")
	watchCmd.Flags().Bool("diagnostic", false, "Run a single inspection pass and report per-window results")
}

func runWatch(cmd *cobra.Command, args []string) error {
	useOCR, _ := cmd.Flags().GetBool("ocr")
	intervalSec, _ := cmd.Flags().GetInt("interval")
	option, _ := cmd.Flags().GetString("option")
	diagnostic, _ := cmd.Flags().GetBool("diagnostic")

	if intervalSec <= 0 {
		if useOCR {
			intervalSec = cfg.OCRInterval
		} else {
			intervalSec = cfg.WatchInterval
		}
	}
	if option == "" {
		option = cfg.Option
	}
	if len(option) != 1 || option[0] < '1' || option[0] > '9' {
		return fmt.Errorf("option must be a single digit 1-9, got %q", option)
	}

	runner := bridge.Osascript{}
	m := manager()

	var inspector inspect.Inspector
	if useOCR {
		inspector = inspect.NewOCRInspector(runner, inspect.Screencapture{})
	} else {
		inspector = inspect.NewAXInspector(runner, cfg.App)
	}

	if diagnostic {
		return runDiagnostic(cmd.Context(), m, inspector)
	}

	responder := respond.NewResponder(runner, cfg.App)
	responder.Option = option
	watcher := respond.NewWatcher(m, inspector, responder)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	err := watcher.Run(ctx, time.Duration(intervalSec)*time.Second)
	if errors.Is(err, context.Canceled) {
		fmt.Println("\nWatching stopped.")
		return nil
	}
	return err
}

// runDiagnostic inspects up to two windows once and prints what the
// detectors see, for checking permissions and OCR quality.
func runDiagnostic(ctx context.Context, m *winctl.Manager, inspector inspect.Inspector) error {
	windows, err := m.ListWindows(ctx)
	if err != nil {
		return err
	}
	if len(windows) == 0 {
		fmt.Printf("No %s windows found.\n", m.App())
		return nil
	}

	fmt.Printf("Found %d %s window(s); inspecting with the %s strategy:\n\n",
		len(windows), m.App(), inspector.Name())

	if len(windows) > 2 {
		windows = windows[:2]
	}
	for _, win := range windows {
		fmt.Printf("Window %d: %s\n", win.Index, win.Title)
		fmt.Printf("  Position: %s  Size: %s\n", formatPoint(win.Position), formatSize(win.Size))

		res, err := inspector.Inspect(ctx, win)
		if err != nil {
			fmt.Printf("  Error: %v\n\n", err)
			continue
		}
		if res.Skipped {
			fmt.Printf("  Skipped (window too small or bounds unknown)\n\n")
			continue
		}
		fmt.Printf("  Trigger detected: %v\n", res.Trigger)
		fmt.Printf("  Options menu detected: %v\n", res.Menu)
		fmt.Printf("  Text preview:\n")
		for _, line := range previewLines(res.Text, 5) {
			fmt.Printf("    %s\n", line)
		}
		fmt.Println()
	}
	return nil
}

func previewLines(text string, n int) []string {
	if len(text) > 300 {
		text = text[:300] + "..."
	}
	lines := strings.Split(text, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return lines
}
