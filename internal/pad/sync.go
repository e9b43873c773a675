package pad

import (
	"sync"

	"github.com/renoua/potato/internal/power"
)

// State is a point-in-time view of the virtual controller.
// It is a value type — safe to use after the lock is released.
type State struct {
	Watts   int
	Trigger float64
	Buttons ButtonMask
}

// Sync is the sole owner of the controller state. Sensor notifications and
// keyboard edges land here from independent goroutines; every mutation and
// the forwarding Apply call happen inside one critical section, so the
// device never observes a half-written trigger+buttons combination.
type Sync struct {
	mu    sync.RWMutex
	dev   Device
	state State
}

// NewSync creates a Sync driving the given device. Initial state is
// trigger 0 with no buttons held.
func NewSync(dev Device) *Sync {
	return &Sync{dev: dev}
}

// SubmitTrigger replaces the trigger ratio and forwards the full state to
// the device. Last writer wins under concurrent calls. An Apply failure is
// returned to the caller; the in-memory state keeps the new value.
func (s *Sync) SubmitTrigger(watts int, ratio float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Watts = watts
	s.state.Trigger = ratio
	return s.dev.Apply(power.TriggerByte(ratio), s.state.Buttons)
}

// SubmitButton adds or removes a button from the held set and forwards the
// full state. Repeated press edges are idempotent on the set but still
// produce an Apply call.
func (s *Sync) SubmitButton(b Button, pressed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pressed {
		s.state.Buttons = s.state.Buttons.with(b)
	} else {
		s.state.Buttons = s.state.Buttons.without(b)
	}
	return s.dev.Apply(power.TriggerByte(s.state.Trigger), s.state.Buttons)
}

// Snapshot returns a copy of the latest committed state. Readers may see a
// slightly stale snapshot rather than contend with the writer path.
func (s *Sync) Snapshot() State {
	s.mu.RLock()
	st := s.state
	s.mu.RUnlock()
	return st
}

// Close releases the underlying device.
func (s *Sync) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dev.Close()
}
