package pad

import "sync"

// AppliedState records one Apply call as seen by the fake device.
type AppliedState struct {
	Trigger uint8
	Buttons ButtonMask
}

// FakeDevice is a test double that records every Apply call.
type FakeDevice struct {
	mu sync.Mutex

	// ApplyError, if set, is returned by Apply (the call is still recorded).
	ApplyError error

	applied []AppliedState
	closed  bool
}

// Apply records the forwarded state.
func (f *FakeDevice) Apply(trigger uint8, buttons ButtonMask) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.applied = append(f.applied, AppliedState{Trigger: trigger, Buttons: buttons})
	return f.ApplyError
}

// Close marks the device as closed.
func (f *FakeDevice) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// Applied returns a copy of all recorded Apply calls.
func (f *FakeDevice) Applied() []AppliedState {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]AppliedState, len(f.applied))
	copy(out, f.applied)
	return out
}

// Last returns the most recent Apply call and whether one exists.
func (f *FakeDevice) Last() (AppliedState, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.applied) == 0 {
		return AppliedState{}, false
	}
	return f.applied[len(f.applied)-1], true
}

// Closed reports whether Close was called.
func (f *FakeDevice) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}
