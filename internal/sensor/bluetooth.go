package sensor

import (
	"context"
	"fmt"

	"tinygo.org/x/bluetooth"
)

// BLETransport scans and connects through the default system adapter.
type BLETransport struct {
	adapter *bluetooth.Adapter
}

// NewBLETransport creates a transport on the default Bluetooth adapter.
func NewBLETransport() *BLETransport {
	return &BLETransport{adapter: bluetooth.DefaultAdapter}
}

// Enable powers up the adapter.
func (t *BLETransport) Enable() error {
	if err := t.adapter.Enable(); err != nil {
		return fmt.Errorf("enable bluetooth adapter: %w", err)
	}
	return nil
}

// Scan runs the adapter scan until a name match arrives or ctx expires.
func (t *BLETransport) Scan(ctx context.Context, nameSubstr string) (Peripheral, error) {
	found := make(chan bluetooth.ScanResult, 1)
	scanErr := make(chan error, 1)

	go func() {
		scanErr <- t.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
			if !matchesName(result.LocalName(), nameSubstr) {
				return
			}
			select {
			case found <- result:
			default:
			}
		})
	}()

	select {
	case <-ctx.Done():
		_ = t.adapter.StopScan()
		return nil, ErrDeviceNotFound
	case err := <-scanErr:
		if err != nil {
			return nil, fmt.Errorf("ble scan: %w", err)
		}
		return nil, ErrDeviceNotFound
	case result := <-found:
		_ = t.adapter.StopScan()
		return &blePeripheral{adapter: t.adapter, result: result}, nil
	}
}

type blePeripheral struct {
	adapter   *bluetooth.Adapter
	result    bluetooth.ScanResult
	device    bluetooth.Device
	connected bool
}

func (p *blePeripheral) Name() string {
	return p.result.LocalName()
}

func (p *blePeripheral) Connect() error {
	device, err := p.adapter.Connect(p.result.Address, bluetooth.ConnectionParams{})
	if err != nil {
		return fmt.Errorf("connect %s: %w", p.result.Address.String(), err)
	}
	p.device = device
	p.connected = true
	return nil
}

func (p *blePeripheral) Subscribe(notify func([]byte)) error {
	if !p.connected {
		return ErrNotConnected
	}

	srvs, err := p.device.DiscoverServices([]bluetooth.UUID{bluetooth.ServiceUUIDCyclingPower})
	if err != nil {
		return fmt.Errorf("discover cycling power service: %w", err)
	}
	if len(srvs) == 0 {
		return ErrNoPowerService
	}

	chars, err := srvs[0].DiscoverCharacteristics([]bluetooth.UUID{bluetooth.CharacteristicUUIDCyclingPowerMeasurement})
	if err != nil {
		return fmt.Errorf("discover power measurement characteristic: %w", err)
	}
	if len(chars) == 0 {
		return ErrNoPowerService
	}

	if err := chars[0].EnableNotifications(notify); err != nil {
		return fmt.Errorf("enable power notifications: %w", err)
	}
	return nil
}

func (p *blePeripheral) Disconnect() error {
	if !p.connected {
		return nil
	}
	p.connected = false
	return p.device.Disconnect()
}
