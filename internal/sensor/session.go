package sensor

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/renoua/potato/internal/pad"
	"github.com/renoua/potato/internal/power"
)

// ConnectionState tracks where the session is in its lifecycle.
type ConnectionState int

const (
	Disconnected ConnectionState = iota
	Scanning
	Connected
	Subscribed
)

func (s ConnectionState) String() string {
	switch s {
	case Scanning:
		return "SCANNING"
	case Connected:
		return "CONNECTED"
	case Subscribed:
		return "SUBSCRIBED"
	default:
		return "DISCONNECTED"
	}
}

// UpdateFunc observes each processed notification. Used for the console
// status line or to feed the TUI.
type UpdateFunc func(watts int, ratio float64)

// Config holds the session parameters.
type Config struct {
	// DeviceName is the case-insensitive substring matched against
	// advertised names.
	DeviceName string

	// ScanTimeout bounds device discovery.
	ScanTimeout time.Duration

	// OnUpdate, if set, runs after every submitted trigger update.
	OnUpdate UpdateFunc
}

// Session drives one scan → connect → subscribe attempt and then stays
// alive delivering notifications until its context is cancelled. There is
// no retry loop; a supervisor restarts the process if it wants one.
type Session struct {
	transport Transport
	curve     power.Curve
	sync      *pad.Sync
	cfg       Config

	mu    sync.Mutex
	state ConnectionState
}

// NewSession creates a session feeding the given state sync.
func NewSession(t Transport, curve power.Curve, s *pad.Sync, cfg Config) *Session {
	return &Session{
		transport: t,
		curve:     curve,
		sync:      s,
		cfg:       cfg,
	}
}

// State returns the current lifecycle state.
func (s *Session) State() ConnectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) setState(st ConnectionState) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// Run performs the full lifecycle once. On success it blocks until ctx is
// cancelled so the notification callback keeps firing. Transport failures
// are returned after resetting to Disconnected; they never panic.
func (s *Session) Run(ctx context.Context) error {
	if err := s.transport.Enable(); err != nil {
		return err
	}

	s.setState(Scanning)
	log.Printf("scanning for %q (timeout %s)", s.cfg.DeviceName, s.cfg.ScanTimeout)

	scanCtx, cancel := context.WithTimeout(ctx, s.cfg.ScanTimeout)
	defer cancel()

	peripheral, err := s.transport.Scan(scanCtx, s.cfg.DeviceName)
	if err != nil {
		s.setState(Disconnected)
		return fmt.Errorf("scan: %w", err)
	}
	log.Printf("found %s, connecting", peripheral.Name())

	if err := peripheral.Connect(); err != nil {
		s.setState(Disconnected)
		return fmt.Errorf("connect: %w", err)
	}
	s.setState(Connected)

	if err := peripheral.Subscribe(s.handleNotification); err != nil {
		_ = peripheral.Disconnect()
		s.setState(Disconnected)
		return fmt.Errorf("subscribe: %w", err)
	}
	s.setState(Subscribed)
	log.Printf("receiving power notifications from %s", peripheral.Name())

	<-ctx.Done()
	_ = peripheral.Disconnect()
	s.setState(Disconnected)
	return nil
}

// handleNotification runs on the transport goroutine for every packet:
// parse watts, map to a ratio, submit the trigger.
func (s *Session) handleNotification(buf []byte) {
	watts := power.ParsePower(buf)
	ratio := s.curve.Ratio(watts)

	if err := s.sync.SubmitTrigger(watts, ratio); err != nil {
		log.Printf("apply trigger: %v", err)
	}

	if s.cfg.OnUpdate != nil {
		s.cfg.OnUpdate(watts, ratio)
	}
}
