package app

import "time"

// TickMsg triggers a snapshot refresh and redraw.
type TickMsg time.Time

// SessionDoneMsg reports that the sensor session ended.
type SessionDoneMsg struct {
	Err error
}
