//go:build linux

package pad

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// uinput ioctl requests and event codes. See linux/uinput.h, linux/input-event-codes.h.
const (
	uiSetEvBit   = 0x40045564
	uiSetKeyBit  = 0x40045565
	uiSetAbsBit  = 0x40045567
	uiDevCreate  = 0x5501
	uiDevDestroy = 0x5502

	evSyn = 0x00
	evKey = 0x01
	evAbs = 0x03

	synReport = 0x00
	absRZ     = 0x05

	btnA         = 0x130
	btnB         = 0x131
	btnX         = 0x133
	btnY         = 0x134
	btnTL        = 0x136
	btnTR        = 0x137
	btnDpadLeft  = 0x222
	btnDpadRight = 0x223
)

// buttonCodes maps mask bits to evdev key codes.
var buttonCodes = []struct {
	button Button
	code   uint16
}{
	{DpadLeft, btnDpadLeft},
	{DpadRight, btnDpadRight},
	{LeftShoulder, btnTL},
	{RightShoulder, btnTR},
	{A, btnA},
	{B, btnB},
	{X, btnX},
	{Y, btnY},
}

// uinputUserDev mirrors struct uinput_user_dev from linux/uinput.h.
type uinputUserDev struct {
	Name         [80]byte
	BusType      uint16
	Vendor       uint16
	Product      uint16
	Version      uint16
	FFEffectsMax uint32
	AbsMax       [64]int32
	AbsMin       [64]int32
	AbsFuzz      [64]int32
	AbsFlat      [64]int32
}

// inputEvent mirrors struct input_event on 64-bit Linux.
type inputEvent struct {
	Sec   int64
	Usec  int64
	Type  uint16
	Code  uint16
	Value int32
}

// UInput is a virtual Xbox-style gamepad backed by /dev/uinput, exposing
// the eight bridge buttons and the right analog trigger (ABS_RZ, 0-255).
type UInput struct {
	file *os.File
}

// NewUInput registers the virtual gamepad with the kernel. Requires write
// access to /dev/uinput.
func NewUInput() (*UInput, error) {
	f, err := os.OpenFile("/dev/uinput", os.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("open /dev/uinput: %w", err)
	}

	if err := setupUInput(f); err != nil {
		_ = f.Close()
		return nil, err
	}

	return &UInput{file: f}, nil
}

func setupUInput(f *os.File) error {
	if err := ioctlInt(f, uiSetEvBit, evKey); err != nil {
		return err
	}
	if err := ioctlInt(f, uiSetEvBit, evAbs); err != nil {
		return err
	}
	for _, bc := range buttonCodes {
		if err := ioctlInt(f, uiSetKeyBit, int(bc.code)); err != nil {
			return err
		}
	}
	if err := ioctlInt(f, uiSetAbsBit, absRZ); err != nil {
		return err
	}

	ud := uinputUserDev{
		BusType: unix.BUS_USB,
		Vendor:  0x045e,
		Product: 0x028e,
		Version: 1,
	}
	copy(ud.Name[:], "Potato Virtual Gamepad")
	ud.AbsMax[absRZ] = 255

	if err := binary.Write(f, binary.LittleEndian, &ud); err != nil {
		return fmt.Errorf("write uinput device descriptor: %w", err)
	}
	if err := ioctlInt(f, uiDevCreate, 0); err != nil {
		return fmt.Errorf("create uinput device: %w", err)
	}
	return nil
}

// Apply writes the complete controller state as one event batch: every
// button level, the trigger axis, and a SYN_REPORT frame marker.
func (u *UInput) Apply(trigger uint8, buttons ButtonMask) error {
	var buf bytes.Buffer
	for _, bc := range buttonCodes {
		val := int32(0)
		if buttons.Has(bc.button) {
			val = 1
		}
		writeEvent(&buf, evKey, bc.code, val)
	}
	writeEvent(&buf, evAbs, absRZ, int32(trigger))
	writeEvent(&buf, evSyn, synReport, 0)

	if _, err := u.file.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("apply gamepad state: %w", err)
	}
	return nil
}

// Close destroys the virtual device.
func (u *UInput) Close() error {
	if err := ioctlInt(u.file, uiDevDestroy, 0); err != nil {
		_ = u.file.Close()
		return err
	}
	return u.file.Close()
}

func writeEvent(buf *bytes.Buffer, typ, code uint16, value int32) {
	_ = binary.Write(buf, binary.LittleEndian, inputEvent{Type: typ, Code: code, Value: value})
}

func ioctlInt(f *os.File, request int, value int) error {
	_, _, errno := syscall.Syscall(syscall.SYS_IOCTL,
		f.Fd(),
		uintptr(request),
		uintptr(value),
	)
	if errno != 0 {
		return fmt.Errorf("ioctl 0x%x: %w", request, errno)
	}
	return nil
}
