package bridge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrAssistiveAccess is returned when System Events refuses automation
// because the calling process lacks accessibility permission.
var ErrAssistiveAccess = errors.New(
	"assistive access required\n\n" +
		"Grant permission at: System Settings > Privacy & Security > Accessibility\n" +
		"Add your terminal app (e.g. Terminal.app, iTerm2, or the IDE running this command).\n" +
		"Then restart the terminal and try again.")

// Runner executes a Script and returns its trimmed stdout.
type Runner interface {
	Run(ctx context.Context, s Script) (string, error)
}

// Osascript runs scripts through the osascript binary, one subprocess per
// request.
type Osascript struct{}

func (Osascript) Run(ctx context.Context, s Script) (string, error) {
	cmd := exec.CommandContext(ctx, "osascript", "-e", s.Text())

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if DeniedAssistiveAccess(stderr.String()) {
			return "", ErrAssistiveAccess
		}
		return "", fmt.Errorf("osascript: %w: %s", err, firstLine(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()), nil
}

// DeniedAssistiveAccess reports whether osascript stderr indicates an
// accessibility permission denial.
func DeniedAssistiveAccess(stderr string) bool {
	s := strings.ToLower(stderr)
	return strings.Contains(s, "assistive access") ||
		strings.Contains(s, "not allowed assistive")
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
