//go:build !linux

package keys

import (
	"context"
	"errors"
)

// ErrNoKeyboard is returned on platforms without an evdev hook.
var ErrNoKeyboard = errors.New("keyboard hook is only supported on linux")

// EvdevHook is unavailable on this platform.
type EvdevHook struct{}

func NewEvdevHook(string) (*EvdevHook, error) { return nil, ErrNoKeyboard }

func (*EvdevHook) OnKeyDown(string, func()) {}

func (*EvdevHook) OnKeyUp(string, func()) {}

func (*EvdevHook) Run(context.Context) error { return ErrNoKeyboard }
