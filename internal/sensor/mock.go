package sensor

import (
	"context"
	"encoding/binary"
	"math"
	"math/rand"
	"time"

	"github.com/renoua/potato/internal/config"
)

// MockTransport fabricates a trainer for demo mode: power swings
// sinusoidally around a base wattage with a little noise, packed into real
// Cycling Power Measurement frames so the full parse path is exercised.
type MockTransport struct {
	name     string
	base     float64
	swing    float64
	interval time.Duration
}

// NewMockTransport creates a demo transport advertising the given name.
func NewMockTransport(name string) *MockTransport {
	return &MockTransport{
		name:     name,
		base:     config.DemoBasePower,
		swing:    config.DemoSwing,
		interval: config.DemoNotifyInterval,
	}
}

func (t *MockTransport) Enable() error { return nil }

// Scan yields the fake trainer immediately when its name matches, and
// honors the timeout otherwise so not-found behavior stays testable.
func (t *MockTransport) Scan(ctx context.Context, nameSubstr string) (Peripheral, error) {
	if !matchesName(t.name, nameSubstr) {
		<-ctx.Done()
		return nil, ErrDeviceNotFound
	}
	return &mockPeripheral{transport: t, stop: make(chan struct{})}, nil
}

type mockPeripheral struct {
	transport *MockTransport
	stop      chan struct{}
}

func (p *mockPeripheral) Name() string { return p.transport.name }

func (p *mockPeripheral) Connect() error { return nil }

func (p *mockPeripheral) Subscribe(notify func([]byte)) error {
	go p.loop(notify)
	return nil
}

func (p *mockPeripheral) loop(notify func([]byte)) {
	ticker := time.NewTicker(p.transport.interval)
	defer ticker.Stop()

	phase := rand.Float64() * 2 * math.Pi
	t := 0.0
	for {
		select {
		case <-p.stop:
			return
		case <-ticker.C:
			t += p.transport.interval.Seconds()
			watts := p.transport.base +
				p.transport.swing*math.Sin(t/4+phase) +
				(rand.Float64()-0.5)*10
			if watts < 0 {
				watts = 0
			}

			buf := make([]byte, 4)
			binary.LittleEndian.PutUint16(buf[2:4], uint16(int16(watts)))
			notify(buf)
		}
	}
}

func (p *mockPeripheral) Disconnect() error {
	select {
	case <-p.stop:
	default:
		close(p.stop)
	}
	return nil
}
