//go:build !linux

package pad

import "errors"

// ErrUnsupported is returned when no virtual gamepad backend exists for
// this platform.
var ErrUnsupported = errors.New("virtual gamepad is only supported on linux")

// UInput is unavailable on this platform.
type UInput struct{}

func NewUInput() (*UInput, error) { return nil, ErrUnsupported }

func (*UInput) Apply(uint8, ButtonMask) error { return ErrUnsupported }

func (*UInput) Close() error { return nil }
