// Package keys routes physical key edges to virtual gamepad buttons.
package keys

import (
	"log"

	"github.com/renoua/potato/internal/pad"
)

// Hook delivers press/release edges for named keys. The OS-level hook is an
// external collaborator; implementations register one handler pair per key.
type Hook interface {
	OnKeyDown(key string, fn func())
	OnKeyUp(key string, fn func())
}

// Bindings returns the static key-to-button table. These match the Zwift
// Play companion layout: arrows steer via the D-pad, the remaining keys
// cover the face and shoulder buttons.
func Bindings() map[string]pad.Button {
	return map[string]pad.Button{
		"left":  pad.DpadLeft,
		"right": pad.DpadRight,
		"home":  pad.A,
		"shift": pad.B,
		"enter": pad.X,
		"end":   pad.Y,
		"=":     pad.RightShoulder,
		"kp-":   pad.LeftShoulder,
	}
}

// Router submits button edges for bound keys. Unbound keys are never
// registered, so they are ignored at the hook level.
type Router struct {
	sync     *pad.Sync
	bindings map[string]pad.Button
}

// NewRouter creates a router submitting to the given state sync.
func NewRouter(s *pad.Sync, bindings map[string]pad.Button) *Router {
	return &Router{sync: s, bindings: bindings}
}

// Attach registers an independent press/release handler pair for every
// bound key. Simultaneously held keys each keep their own set membership.
// Device-apply failures are logged and do not stop further edges.
func (r *Router) Attach(h Hook) {
	for key, button := range r.bindings {
		b := button
		h.OnKeyDown(key, func() {
			if err := r.sync.SubmitButton(b, true); err != nil {
				log.Printf("press %s: %v", b, err)
			}
		})
		h.OnKeyUp(key, func() {
			if err := r.sync.SubmitButton(b, false); err != nil {
				log.Printf("release %s: %v", b, err)
			}
		})
	}
}
