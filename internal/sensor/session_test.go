package sensor

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/renoua/potato/internal/pad"
	"github.com/renoua/potato/internal/power"
)

type fakeTransport struct {
	enableErr  error
	scanErr    error
	peripheral *fakePeripheral
}

func (t *fakeTransport) Enable() error { return t.enableErr }

func (t *fakeTransport) Scan(ctx context.Context, nameSubstr string) (Peripheral, error) {
	if t.scanErr != nil {
		return nil, t.scanErr
	}
	if t.peripheral == nil || !matchesName(t.peripheral.name, nameSubstr) {
		<-ctx.Done()
		return nil, ErrDeviceNotFound
	}
	return t.peripheral, nil
}

type fakePeripheral struct {
	name         string
	connectErr   error
	subscribeErr error
	notify       func([]byte)
	disconnected bool
}

func (p *fakePeripheral) Name() string { return p.name }

func (p *fakePeripheral) Connect() error { return p.connectErr }

func (p *fakePeripheral) Subscribe(notify func([]byte)) error {
	if p.subscribeErr != nil {
		return p.subscribeErr
	}
	p.notify = notify
	return nil
}

func (p *fakePeripheral) Disconnect() error {
	p.disconnected = true
	return nil
}

func testCurve(t *testing.T) power.Curve {
	t.Helper()
	c, err := power.NewCurve(230, 0)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func waitForState(t *testing.T, s *Session, want ConnectionState) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if s.State() == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("session state = %v, want %v", s.State(), want)
}

func TestRunDeliversNotifications(t *testing.T) {
	peripheral := &fakePeripheral{name: "KICKR CORE 1234"}
	transport := &fakeTransport{peripheral: peripheral}
	dev := &pad.FakeDevice{}
	stateSync := pad.NewSync(dev)

	session := NewSession(transport, testCurve(t), stateSync, Config{
		DeviceName:  "kickr",
		ScanTimeout: time.Second,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- session.Run(ctx) }()

	waitForState(t, session, Subscribed)

	// 300 W packet: 0x012C little-endian at bytes [2,4).
	peripheral.notify([]byte{0x00, 0x00, 0x2C, 0x01})

	snap := stateSync.Snapshot()
	if snap.Watts != 300 {
		t.Errorf("watts = %d, want 300", snap.Watts)
	}
	wantRatio := math.Tanh(math.Atanh(0.75) / 230 * 300)
	if math.Abs(snap.Trigger-wantRatio) > 1e-12 {
		t.Errorf("trigger = %f, want %f", snap.Trigger, wantRatio)
	}
	last, ok := dev.Last()
	if !ok {
		t.Fatal("no state forwarded to device")
	}
	if want := power.TriggerByte(wantRatio); last.Trigger != want {
		t.Errorf("applied trigger byte = %d, want %d", last.Trigger, want)
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run returned %v after cancel, want nil", err)
	}
	if !peripheral.disconnected {
		t.Error("peripheral not disconnected at shutdown")
	}
	if session.State() != Disconnected {
		t.Errorf("final state = %v, want Disconnected", session.State())
	}
}

func TestRunShortPacketYieldsZero(t *testing.T) {
	peripheral := &fakePeripheral{name: "KICKR"}
	transport := &fakeTransport{peripheral: peripheral}
	dev := &pad.FakeDevice{}
	stateSync := pad.NewSync(dev)

	session := NewSession(transport, testCurve(t), stateSync, Config{
		DeviceName:  "KICKR",
		ScanTimeout: time.Second,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = session.Run(ctx) }()
	waitForState(t, session, Subscribed)

	peripheral.notify([]byte{0x00, 0x00})

	snap := stateSync.Snapshot()
	if snap.Watts != 0 || snap.Trigger != 0 {
		t.Errorf("snapshot = %+v, want zero watts and trigger", snap)
	}
	if last, ok := dev.Last(); !ok || last.Trigger != 0 {
		t.Errorf("applied = %+v (ok=%v), want trigger byte 0", last, ok)
	}
}

func TestRunScanTimeout(t *testing.T) {
	transport := &fakeTransport{} // nothing advertising
	session := NewSession(transport, testCurve(t), pad.NewSync(&pad.FakeDevice{}), Config{
		DeviceName:  "KICKR",
		ScanTimeout: 10 * time.Millisecond,
	})

	err := session.Run(context.Background())
	if !errors.Is(err, ErrDeviceNotFound) {
		t.Errorf("Run error = %v, want ErrDeviceNotFound", err)
	}
	if session.State() != Disconnected {
		t.Errorf("state = %v, want Disconnected", session.State())
	}
}

func TestRunConnectFailure(t *testing.T) {
	connectErr := errors.New("link layer says no")
	transport := &fakeTransport{peripheral: &fakePeripheral{name: "KICKR", connectErr: connectErr}}
	session := NewSession(transport, testCurve(t), pad.NewSync(&pad.FakeDevice{}), Config{
		DeviceName:  "KICKR",
		ScanTimeout: time.Second,
	})

	err := session.Run(context.Background())
	if !errors.Is(err, connectErr) {
		t.Errorf("Run error = %v, want wrapped connect error", err)
	}
	if session.State() != Disconnected {
		t.Errorf("state = %v, want Disconnected", session.State())
	}
}

func TestRunSubscribeFailure(t *testing.T) {
	peripheral := &fakePeripheral{name: "KICKR", subscribeErr: ErrNoPowerService}
	transport := &fakeTransport{peripheral: peripheral}
	session := NewSession(transport, testCurve(t), pad.NewSync(&pad.FakeDevice{}), Config{
		DeviceName:  "KICKR",
		ScanTimeout: time.Second,
	})

	err := session.Run(context.Background())
	if !errors.Is(err, ErrNoPowerService) {
		t.Errorf("Run error = %v, want ErrNoPowerService", err)
	}
	if !peripheral.disconnected {
		t.Error("peripheral should be disconnected after subscribe failure")
	}
}

func TestOnUpdateObservesEveryNotification(t *testing.T) {
	peripheral := &fakePeripheral{name: "KICKR"}
	transport := &fakeTransport{peripheral: peripheral}

	var updates []int
	session := NewSession(transport, testCurve(t), pad.NewSync(&pad.FakeDevice{}), Config{
		DeviceName:  "KICKR",
		ScanTimeout: time.Second,
		OnUpdate:    func(watts int, ratio float64) { updates = append(updates, watts) },
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = session.Run(ctx) }()
	waitForState(t, session, Subscribed)

	// Notifications arrive serially on the transport goroutine; here the
	// test goroutine plays that role.
	peripheral.notify([]byte{0x00, 0x00, 0x64, 0x00}) // 100 W
	peripheral.notify([]byte{0x00, 0x00, 0xC8, 0x00}) // 200 W

	if len(updates) != 2 || updates[0] != 100 || updates[1] != 200 {
		t.Errorf("updates = %v, want [100 200]", updates)
	}
}

func TestMatchesName(t *testing.T) {
	tests := []struct {
		local, substr string
		want          bool
	}{
		{"KICKR CORE 1234", "KICKR", true},
		{"kickr core", "KICKR", true},
		{"KICKR", "kickr core", false},
		{"Wahoo KICKR SNAP", "kickr", true},
		{"TACX NEO", "KICKR", false},
		{"", "KICKR", false},
	}
	for _, tt := range tests {
		if got := matchesName(tt.local, tt.substr); got != tt.want {
			t.Errorf("matchesName(%q, %q) = %v, want %v", tt.local, tt.substr, got, tt.want)
		}
	}
}

func TestMockTransportScan(t *testing.T) {
	transport := NewMockTransport("KICKR SIM")
	if err := transport.Enable(); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	p, err := transport.Scan(ctx, "kickr")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if p.Name() != "KICKR SIM" {
		t.Errorf("Name() = %q, want KICKR SIM", p.Name())
	}

	if _, err := transport.Scan(ctx, "TACX"); !errors.Is(err, ErrDeviceNotFound) {
		t.Errorf("Scan for wrong name error = %v, want ErrDeviceNotFound", err)
	}
}

func TestMockPeripheralNotifies(t *testing.T) {
	transport := NewMockTransport("KICKR SIM")
	transport.interval = 5 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	p, err := transport.Scan(ctx, "KICKR")
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Connect(); err != nil {
		t.Fatal(err)
	}

	got := make(chan int, 1)
	err = p.Subscribe(func(buf []byte) {
		select {
		case got <- power.ParsePower(buf):
		default:
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = p.Disconnect() }()

	select {
	case watts := <-got:
		if watts < 0 || watts > 1000 {
			t.Errorf("synthetic watts = %d, want plausible trainer output", watts)
		}
	case <-time.After(time.Second):
		t.Fatal("no synthetic notification arrived")
	}
}
