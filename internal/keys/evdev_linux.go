//go:build linux

package keys

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrNoKeyboard is returned when no keyboard event device can be located
// under /dev/input.
var ErrNoKeyboard = errors.New("no keyboard event device found")

const (
	evKey      = 0x01
	keyPress   = 1
	keyRelease = 0
)

// keyNames maps the evdev codes this bridge cares about to the key names
// used in the binding table.
var keyNames = map[uint16]string{
	105: "left",  // KEY_LEFT
	106: "right", // KEY_RIGHT
	102: "home",  // KEY_HOME
	107: "end",   // KEY_END
	28:  "enter", // KEY_ENTER
	42:  "shift", // KEY_LEFTSHIFT
	13:  "=",     // KEY_EQUAL
	74:  "kp-",   // KEY_KPMINUS
}

// keyEvent mirrors struct input_event on 64-bit Linux.
type keyEvent struct {
	Sec   int64
	Usec  int64
	Type  uint16
	Code  uint16
	Value int32
}

// EvdevHook reads key edges from a Linux event device and dispatches them
// to registered handlers. It runs in its own goroutine; handlers execute
// serially in device order.
type EvdevHook struct {
	mu    sync.Mutex
	path  string
	downs map[string]func()
	ups   map[string]func()
}

// NewEvdevHook opens a hook on the given event device. An empty path
// auto-detects the first keyboard under /dev/input/by-id or by-path.
func NewEvdevHook(devicePath string) (*EvdevHook, error) {
	if devicePath == "" {
		var err error
		devicePath, err = findKeyboard()
		if err != nil {
			return nil, err
		}
	}
	return &EvdevHook{
		path:  devicePath,
		downs: make(map[string]func()),
		ups:   make(map[string]func()),
	}, nil
}

func (h *EvdevHook) OnKeyDown(key string, fn func()) {
	h.mu.Lock()
	h.downs[key] = fn
	h.mu.Unlock()
}

func (h *EvdevHook) OnKeyUp(key string, fn func()) {
	h.mu.Lock()
	h.ups[key] = fn
	h.mu.Unlock()
}

// Run reads events until the context is cancelled or the device goes away.
func (h *EvdevHook) Run(ctx context.Context) error {
	f, err := os.Open(h.path)
	if err != nil {
		return fmt.Errorf("open keyboard device: %w", err)
	}

	go func() {
		<-ctx.Done()
		_ = f.Close()
	}()

	for {
		var e keyEvent
		if err := binary.Read(f, binary.LittleEndian, &e); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read keyboard event: %w", err)
		}
		if e.Type != evKey {
			continue
		}
		name, ok := keyNames[e.Code]
		if !ok {
			continue
		}
		h.dispatch(name, e.Value)
	}
}

func (h *EvdevHook) dispatch(name string, value int32) {
	h.mu.Lock()
	var fn func()
	switch value {
	case keyPress:
		fn = h.downs[name]
	case keyRelease:
		fn = h.ups[name]
	}
	h.mu.Unlock()

	// Auto-repeat (value 2) and unbound keys fall through.
	if fn != nil {
		fn()
	}
}

// findKeyboard looks for a "-event-kbd" symlink, the stable name udev gives
// keyboard event devices.
func findKeyboard() (string, error) {
	for _, dir := range []string{"/dev/input/by-id", "/dev/input/by-path"} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if strings.HasSuffix(entry.Name(), "-event-kbd") {
				return filepath.Join(dir, entry.Name()), nil
			}
		}
	}
	return "", ErrNoKeyboard
}
