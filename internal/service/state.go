// Package service probes and controls a single named systemd service.
package service

import (
	"errors"
	"strings"
)

// State is the lifecycle state of a service at the instant it was probed.
type State string

const (
	StateRunning         State = "running"
	StateStopped         State = "stopped"
	StateStartPending    State = "start-pending"
	StateStopPending     State = "stop-pending"
	StatePaused          State = "paused"
	StatePausePending    State = "pause-pending"
	StateContinuePending State = "continue-pending"
	StateUnknown         State = "unknown"
)

// AllStates lists every State in declaration order.
var AllStates = []State{
	StateRunning,
	StateStopped,
	StateStartPending,
	StateStopPending,
	StatePaused,
	StatePausePending,
	StateContinuePending,
	StateUnknown,
}

// IsRunning reports whether the state counts as running.
// Only StateRunning does; transitional and paused states do not.
func (s State) IsRunning() bool {
	return s == StateRunning
}

// IsStopped reports whether the state is StateStopped.
func (s State) IsStopped() bool {
	return s == StateStopped
}

func (s State) String() string {
	if s == "" {
		return string(StateUnknown)
	}
	return string(s)
}

// Identity names the service targeted by a run.
// An empty Host addresses the local machine.
type Identity struct {
	Name string
	Host string
}

// NewIdentity returns an Identity after validating the service name.
func NewIdentity(name, host string) (Identity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Identity{}, errors.New("service: name is required")
	}
	return Identity{Name: name, Host: strings.TrimSpace(host)}, nil
}

// IsLocal reports whether the identity addresses the local machine.
func (id Identity) IsLocal() bool {
	return id.Host == ""
}

func (id Identity) String() string {
	if id.IsLocal() {
		return id.Name + "@local"
	}
	return id.Name + "@" + id.Host
}
