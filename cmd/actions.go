package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var focusCmd = &cobra.Command{
	Use:   "focus <index>",
	Short: "Bring a window to the foreground",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		if err := manager().Focus(cmd.Context(), index); err != nil {
			return err
		}
		return printAction("focus", index)
	},
}

var minimizeCmd = &cobra.Command{
	Use:   "minimize <index>",
	Short: "Minimize a window to the Dock",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		if err := manager().Minimize(cmd.Context(), index); err != nil {
			return err
		}
		return printAction("minimize", index)
	},
}

var unminimizeCmd = &cobra.Command{
	Use:   "unminimize <index>",
	Short: "Restore a minimized window",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		if err := manager().Unminimize(cmd.Context(), index); err != nil {
			return err
		}
		return printAction("unminimize", index)
	},
}

var closeCmd = &cobra.Command{
	Use:   "close <index>",
	Short: "Close a window (asks for confirmation)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirm(fmt.Sprintf("Close window %d of %s?", index, cfg.App)) {
			fmt.Println("Aborted.")
			return nil
		}
		if err := manager().Close(cmd.Context(), index); err != nil {
			return err
		}
		return printAction("close", index)
	},
}

var moveCmd = &cobra.Command{
	Use:   "move <index> <x> <y>",
	Short: "Move a window to a screen position",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		x, y, err := parseCoords(args[1], args[2], "coordinates")
		if err != nil {
			return err
		}
		if err := manager().Move(cmd.Context(), index, x, y); err != nil {
			return err
		}
		return printAction("move", index)
	},
}

var resizeCmd = &cobra.Command{
	Use:   "resize <index> <width> <height>",
	Short: "Resize a window",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		w, h, err := parseCoords(args[1], args[2], "dimensions")
		if err != nil {
			return err
		}
		if err := manager().Resize(cmd.Context(), index, w, h); err != nil {
			return err
		}
		return printAction("resize", index)
	},
}

func init() {
	closeCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(focusCmd, minimizeCmd, unminimizeCmd, closeCmd, moveCmd, resizeCmd)
}

func parseCoords(a, b, what string) (int, int, error) {
	var x, y int
	if _, err := fmt.Sscanf(a+" "+b, "%d %d", &x, &y); err != nil {
		return 0, 0, fmt.Errorf("%s must be integers, got %q %q", what, a, b)
	}
	return x, y, nil
}

// confirm prompts on stdin and accepts y/yes.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
