package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/cursortools/cursorctl/internal/gui"
)

var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Open the desktop window controller",
	Long: `Open a desktop surface with the window list and the same operations the
CLI exposes: focus, minimize, unminimize, close, move and resize, plus a
background monitor toggle.`,
	Args: cobra.NoArgs,
	RunE: runGUI,
}

func init() {
	rootCmd.AddCommand(guiCmd)
	guiCmd.Flags().Int("interval", 0, "Monitor polling interval in seconds (default from config, else 1)")
}

func runGUI(cmd *cobra.Command, args []string) error {
	intervalSec, _ := cmd.Flags().GetInt("interval")
	if intervalSec <= 0 {
		intervalSec = cfg.MonitorInterval
	}
	gui.Run(manager(), time.Duration(intervalSec)*time.Second)
	return nil
}
