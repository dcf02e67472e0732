// Package monitor polls window snapshots on a fixed interval and reports
// wholesale changes. Cancellation is cooperative: the context is checked at
// the top of each iteration, so a scan plus sleep already in flight
// completes first.
package monitor

import (
	"context"
	"errors"
	"time"

	"github.com/cursortools/cursorctl/internal/bridge"
	"github.com/cursortools/cursorctl/internal/logger"
	"github.com/cursortools/cursorctl/internal/winctl"
)

// ListFunc produces the current window list.
type ListFunc func(ctx context.Context) ([]winctl.Snapshot, error)

// Poller re-enumerates windows every Interval and invokes OnChange whenever
// the list differs structurally from the previous one.
type Poller struct {
	Interval time.Duration
	List     ListFunc
	// OnChange receives the new window list. Called once per distinct
	// state, never for identical consecutive lists.
	OnChange func(windows []winctl.Snapshot)
	// OnError receives transient enumeration errors; the poll continues.
	// Permission denial is fatal and ends the run instead.
	OnError func(err error)
}

// Run polls until ctx is cancelled, returning ctx.Err() on cancellation or
// the error on permission denial.
func (p *Poller) Run(ctx context.Context) error {
	var prev []winctl.Snapshot

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		windows, err := p.List(ctx)
		switch {
		case err != nil:
			if errors.Is(err, bridge.ErrAssistiveAccess) {
				return err
			}
			if p.OnError != nil {
				p.OnError(err)
			} else {
				logger.Debugf("poll failed: %v", err)
			}
		case !Equal(prev, windows):
			p.OnChange(windows)
			prev = windows
		}

		time.Sleep(p.Interval)
	}
}

// Equal reports structural equality of two window lists: same length, same
// order, and every field of every snapshot identical.
func Equal(a, b []winctl.Snapshot) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !snapshotEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func snapshotEqual(a, b winctl.Snapshot) bool {
	if a.Index != b.Index || a.Title != b.Title || a.Minimized != b.Minimized {
		return false
	}
	if !pointEqual(a.Position, b.Position) {
		return false
	}
	return sizeEqual(a.Size, b.Size)
}

func pointEqual(a, b *winctl.Point) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func sizeEqual(a, b *winctl.Size) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
