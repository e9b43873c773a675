// Package status exposes the latest committed controller state to
// observers without blocking the writer path.
package status

import (
	"fmt"
	"io"

	"github.com/renoua/potato/internal/pad"
)

// Line formats a state the way the console sink prints it.
func Line(s pad.State) string {
	return fmt.Sprintf("%d W → Trigger: %.2f", s.Watts, s.Trigger)
}

// Publisher reads snapshots from the state sync on demand. Reads may be
// slightly stale; they never tear.
type Publisher struct {
	sync *pad.Sync
}

// NewPublisher creates a publisher over the given sync.
func NewPublisher(s *pad.Sync) *Publisher {
	return &Publisher{sync: s}
}

// Snapshot returns the latest committed state.
func (p *Publisher) Snapshot() pad.State {
	return p.sync.Snapshot()
}

// Console writes one status line per update.
type Console struct {
	pub *Publisher
	w   io.Writer
}

// NewConsole creates a console sink over the given publisher.
func NewConsole(pub *Publisher, w io.Writer) *Console {
	return &Console{pub: pub, w: w}
}

// Publish prints the current snapshot.
func (c *Console) Publish() {
	fmt.Fprintln(c.w, Line(c.pub.Snapshot()))
}
