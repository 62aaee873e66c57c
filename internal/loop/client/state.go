package client

import "time"

// ClientState holds per-connection bookkeeping outside the simulation.
type ClientState struct {
	Running    bool
	lastInput  time.Time
	isInactive bool // Idle warning is showing
}

// NewClientState creates the state of a fresh connection.
func NewClientState(now time.Time) *ClientState {
	return &ClientState{
		Running:   true,
		lastInput: now,
	}
}
