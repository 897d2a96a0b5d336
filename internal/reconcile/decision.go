// Package reconcile decides whether a service needs intervention and drives
// the resulting stop or restart transition under a deadline.
package reconcile

import (
	"fmt"

	"github.com/plexsphere/keepitup/internal/service"
)

// Intent is what the caller wants the service to look like after the run.
type Intent int

const (
	// IntentEnsureRunning keeps the service running, restarting it if needed.
	IntentEnsureRunning Intent = iota
	// IntentForceStop stops a running service.
	IntentForceStop
)

func (i Intent) String() string {
	switch i {
	case IntentEnsureRunning:
		return "ensure-running"
	case IntentForceStop:
		return "force-stop"
	default:
		return fmt.Sprintf("intent(%d)", int(i))
	}
}

// Action is the transition chosen by Decide.
type Action int

const (
	ActionNone Action = iota
	ActionStop
	ActionRestart
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionStop:
		return "stop"
	case ActionRestart:
		return "restart"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Outcome is the externally observable result of a run.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeWarning
	OutcomeError
)

// ExitCode maps the outcome to the process exit code.
func (o Outcome) ExitCode() int {
	switch o {
	case OutcomeSuccess:
		return 0
	case OutcomeWarning:
		return 1
	default:
		return 2
	}
}

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeWarning:
		return "warning"
	default:
		return "error"
	}
}

// Decide maps the probed state and the intent to an action.
//
//	running  + ensure-running -> none
//	running  + force-stop     -> stop
//	!running + ensure-running -> restart
//	!running + force-stop     -> none
func Decide(state service.State, intent Intent) Action {
	running := state.IsRunning()
	switch {
	case running && intent == IntentForceStop:
		return ActionStop
	case !running && intent == IntentEnsureRunning:
		return ActionRestart
	default:
		return ActionNone
	}
}
