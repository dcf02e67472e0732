package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cursortools/cursorctl/internal/bridge"
	"github.com/cursortools/cursorctl/internal/config"
	"github.com/cursortools/cursorctl/internal/logger"
	"github.com/cursortools/cursorctl/internal/output"
	"github.com/cursortools/cursorctl/internal/version"
	"github.com/cursortools/cursorctl/internal/winctl"
)

// cfg is loaded once per invocation; flags override file values.
var cfg = config.Default()

var rootCmd = &cobra.Command{
	Use:   "cursorctl",
	Short: "Inspect and control Cursor windows on macOS",
	Long: `A CLI tool that lists, monitors, and manipulates the windows of a single
macOS application (Cursor by default) through the System Events scripting
bridge, with an autonomous watch mode that answers model-selection menus.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("app", "", "Target application process (default: Cursor, or the config file's app)")
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			logger.Warnf("config not loaded: %v", err)
		}
		cfg = loaded

		if app, _ := rootCmd.PersistentFlags().GetString("app"); app != "" {
			cfg.App = app
		}

		verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
		logger.SetDebug(verbose)

		format, _ := rootCmd.PersistentFlags().GetString("format")
		switch format {
		case "yaml":
			output.OutputFormat = output.FormatYAML
		case "json":
			output.OutputFormat = output.FormatJSON
		default:
			return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
		}
		return nil
	}
}

// manager returns a window manager for the configured target over the live
// osascript bridge.
func manager() *winctl.Manager {
	return winctl.New(bridge.Osascript{}, cfg.App)
}

// parseIndex converts a positional window-index argument.
func parseIndex(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("window index must be a positive integer, got %q", arg)
	}
	return n, nil
}

// ActionResult is the output of a window action command.
type ActionResult struct {
	OK     bool   `yaml:"ok"               json:"ok"`
	Action string `yaml:"action"           json:"action"`
	Window int    `yaml:"window,omitempty" json:"window,omitempty"`
	App    string `yaml:"app"              json:"app"`
}

func printAction(action string, index int) error {
	return output.Print(ActionResult{
		OK:     true,
		Action: action,
		Window: index,
		App:    cfg.App,
	})
}
