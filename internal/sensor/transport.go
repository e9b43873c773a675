// Package sensor owns the connection lifecycle to the BLE power meter and
// feeds parsed notifications into the gamepad state sync.
package sensor

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrDeviceNotFound means the scan window closed with no name match.
	ErrDeviceNotFound = errors.New("no matching power meter found")

	// ErrNotConnected means a subscribe was attempted before connecting.
	ErrNotConnected = errors.New("peripheral is not connected")

	// ErrNoPowerService means the peripheral lacks the Cycling Power
	// service or its measurement characteristic.
	ErrNoPowerService = errors.New("peripheral does not expose cycling power measurement")
)

// Transport discovers power meters. The BLE stack is an external
// collaborator; the mock implementation stands in for it in tests and
// demo mode.
type Transport interface {
	// Enable initializes the underlying radio.
	Enable() error

	// Scan returns the first advertising peripheral whose name contains
	// nameSubstr (case-insensitive). The scan is abandoned, not merely
	// logged, once ctx expires.
	Scan(ctx context.Context, nameSubstr string) (Peripheral, error)
}

// Peripheral is a discovered power meter.
type Peripheral interface {
	Name() string
	Connect() error

	// Subscribe registers notify for the power measurement characteristic.
	// notify runs on the transport's goroutine, serially per notification.
	Subscribe(notify func([]byte)) error

	Disconnect() error
}

func matchesName(localName, substr string) bool {
	if localName == "" {
		return false
	}
	return strings.Contains(strings.ToUpper(localName), strings.ToUpper(substr))
}
