package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/cursortools/cursorctl/internal/logger"
	"github.com/cursortools/cursorctl/internal/monitor"
	"github.com/cursortools/cursorctl/internal/winctl"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Watch for window changes and print each new state",
	Long: `Poll the target's window list on a fixed interval and print the full list
whenever it differs from the previous poll. Stop with Ctrl+C or --duration.`,
	Args: cobra.NoArgs,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)
	monitorCmd.Flags().Int("interval", 0, "Polling interval in seconds (default from config, else 1)")
	monitorCmd.Flags().Int("duration", 0, "Max seconds to monitor (0 = until Ctrl+C)")
}

func runMonitor(cmd *cobra.Command, args []string) error {
	intervalSec, _ := cmd.Flags().GetInt("interval")
	durationSec, _ := cmd.Flags().GetInt("duration")
	if intervalSec <= 0 {
		intervalSec = cfg.MonitorInterval
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	if durationSec > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(durationSec)*time.Second)
		defer cancel()
	}

	logger.Infof("monitoring %s windows every %ds, Ctrl+C to stop", cfg.App, intervalSec)

	p := &monitor.Poller{
		Interval: time.Duration(intervalSec) * time.Second,
		List:     manager().ListWindows,
		OnChange: printWindowState,
		OnError: func(err error) {
			logger.Debugf("poll failed: %v", err)
		},
	}

	err := p.Run(ctx)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		fmt.Println("\nMonitoring stopped.")
		return nil
	}
	return err
}

func printWindowState(windows []winctl.Snapshot) {
	fmt.Printf("\n[%s] Window state changed:\n", time.Now().Format("15:04:05"))
	if len(windows) == 0 {
		fmt.Println("  (no windows)")
		return
	}
	for _, w := range windows {
		status := "active"
		if w.Minimized {
			status = "minimized"
		}
		fmt.Printf("  Window %d: %s [%s]\n", w.Index, w.Title, status)
		fmt.Printf("     Position: %s\n", formatPoint(w.Position))
		fmt.Printf("     Size: %s\n", formatSize(w.Size))
	}
}

func formatPoint(p *winctl.Point) string {
	if p == nil {
		return "Unknown"
	}
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

func formatSize(s *winctl.Size) string {
	if s == nil {
		return "Unknown"
	}
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}
