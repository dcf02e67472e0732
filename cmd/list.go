package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cursortools/cursorctl/internal/output"
	"github.com/cursortools/cursorctl/internal/winctl"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the target application's windows",
	Long:  "List the target's windows with their index, title, position, size, and minimized state. An application that is not running yields an empty list.",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	windows, err := manager().ListWindows(cmd.Context())
	if err != nil {
		return err
	}
	if windows == nil {
		windows = []winctl.Snapshot{}
	}
	return output.Print(windows)
}
