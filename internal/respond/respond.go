// Package respond answers detected option menus with a keystroke sequence
// and tracks which windows have already been handled.
package respond

import (
	"context"
	"fmt"
	"time"

	"github.com/cursortools/cursorctl/internal/bridge"
)

// Responder types an option digit followed by Return into a focused window.
// The response is blind: nothing verifies the menu actually selected the
// intended option.
type Responder struct {
	runner bridge.Runner
	app    string

	// Option is the digit typed, "2" by default.
	Option string
	// FocusDelay is how long to wait after raising the window before
	// typing, so focus can settle.
	FocusDelay time.Duration
	// KeyDelay separates the digit from the Return press.
	KeyDelay time.Duration

	sleep func(time.Duration)
}

// NewResponder returns a Responder targeting the named process with the
// stock delays.
func NewResponder(runner bridge.Runner, app string) *Responder {
	return &Responder{
		runner:     runner,
		app:        app,
		Option:     "2",
		FocusDelay: 500 * time.Millisecond,
		KeyDelay:   100 * time.Millisecond,
		sleep:      time.Sleep,
	}
}

// SelectOption focuses window index, waits for focus to settle, types the
// option digit, and presses Return.
func (r *Responder) SelectOption(ctx context.Context, index int) error {
	if _, err := r.runner.Run(ctx, bridge.RaiseWindow(r.app, index)); err != nil {
		return fmt.Errorf("focus window %d: %w", index, err)
	}
	r.sleep(r.FocusDelay)

	if _, err := r.runner.Run(ctx, bridge.Keystroke(r.Option)); err != nil {
		return fmt.Errorf("type option %q: %w", r.Option, err)
	}
	r.sleep(r.KeyDelay)

	if _, err := r.runner.Run(ctx, bridge.KeyCode(bridge.ReturnKeyCode)); err != nil {
		return fmt.Errorf("press return: %w", err)
	}
	return nil
}
