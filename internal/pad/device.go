package pad

// Device is the virtual HID endpoint the bridge drives. Apply forwards a
// complete controller state: an analog trigger deflection (0-255) and the
// full button mask. Implementations may fail transiently (driver error,
// device unplugged); callers decide whether to keep submitting.
type Device interface {
	Apply(trigger uint8, buttons ButtonMask) error
	Close() error
}

// Discard is a Device that accepts every state and does nothing. Used when
// running without a virtual gamepad driver (demo mode).
type Discard struct{}

func (Discard) Apply(uint8, ButtonMask) error { return nil }
func (Discard) Close() error { return nil }
