// Package pad owns the virtual gamepad state and serializes all writers
// through a single synchronization point.
package pad

// Button identifies one virtual gamepad button as a single mask bit.
// Bit positions follow the XUSB wire layout used by Xbox 360 controllers.
type Button uint16

const (
	DpadLeft      Button = 0x0004
	DpadRight     Button = 0x0008
	LeftShoulder  Button = 0x0100
	RightShoulder Button = 0x0200
	A             Button = 0x1000
	B             Button = 0x2000
	X             Button = 0x4000
	Y             Button = 0x8000
)

func (b Button) String() string {
	switch b {
	case DpadLeft:
		return "DPAD_LEFT"
	case DpadRight:
		return "DPAD_RIGHT"
	case LeftShoulder:
		return "LB"
	case RightShoulder:
		return "RB"
	case A:
		return "A"
	case B:
		return "B"
	case X:
		return "X"
	case Y:
		return "Y"
	}
	return "UNKNOWN"
}

// ButtonMask is the set of currently held buttons.
type ButtonMask uint16

// Has reports whether b is held in the mask.
func (m ButtonMask) Has(b Button) bool {
	return m&ButtonMask(b) != 0
}

func (m ButtonMask) with(b Button) ButtonMask {
	return m | ButtonMask(b)
}

func (m ButtonMask) without(b Button) ButtonMask {
	return m &^ ButtonMask(b)
}
