package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cursortools/cursorctl/internal/inspect"
	"github.com/cursortools/cursorctl/internal/output"
)

// ScreenshotResult is the output of a successful capture.
type ScreenshotResult struct {
	OK     bool   `yaml:"ok"     json:"ok"`
	Action string `yaml:"action" json:"action"`
	Window int    `yaml:"window" json:"window"`
	Path   string `yaml:"path"   json:"path"`
}

var screenshotCmd = &cobra.Command{
	Use:   "screenshot <index>",
	Short: "Capture a window's screen region to a PNG",
	Long:  "Capture the pixel rectangle bounded by the window's reported position and size. Minimized windows and windows with unknown bounds cannot be captured.",
	Args:  cobra.ExactArgs(1),
	RunE:  runScreenshot,
}

func init() {
	rootCmd.AddCommand(screenshotCmd)
	screenshotCmd.Flags().String("output", "", "Output file path (default: window-<index>.png)")
	screenshotCmd.Flags().Float64("scale", 1.0, "Downscale factor in (0, 1]; 1.0 keeps full resolution")
}

func runScreenshot(cmd *cobra.Command, args []string) error {
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	outPath, _ := cmd.Flags().GetString("output")
	scale, _ := cmd.Flags().GetFloat64("scale")
	if outPath == "" {
		outPath = fmt.Sprintf("window-%d.png", index)
	}
	if scale <= 0 || scale > 1 {
		return fmt.Errorf("scale must be in (0, 1], got %g", scale)
	}

	windows, err := manager().ListWindows(cmd.Context())
	if err != nil {
		return err
	}

	for _, win := range windows {
		if win.Index != index {
			continue
		}
		if win.Minimized {
			return fmt.Errorf("window %d is minimized and has no screen region", index)
		}
		if err := inspect.CaptureWindowPNG(cmd.Context(), inspect.Screencapture{}, win, outPath, scale); err != nil {
			return err
		}
		return output.Print(ScreenshotResult{
			OK:     true,
			Action: "screenshot",
			Window: index,
			Path:   outPath,
		})
	}
	return fmt.Errorf("no window with index %d (found %d windows)", index, len(windows))
}
