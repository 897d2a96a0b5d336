package reconcile

import (
	"testing"

	"github.com/plexsphere/keepitup/internal/service"
)

func TestDecide_Table(t *testing.T) {
	for _, state := range service.AllStates {
		for _, intent := range []Intent{IntentEnsureRunning, IntentForceStop} {
			var want Action
			switch {
			case state == service.StateRunning && intent == IntentEnsureRunning:
				want = ActionNone
			case state == service.StateRunning && intent == IntentForceStop:
				want = ActionStop
			case intent == IntentEnsureRunning:
				want = ActionRestart
			default:
				want = ActionNone
			}
			if got := Decide(state, intent); got != want {
				t.Errorf("Decide(%v, %v) = %v, want %v", state, intent, got, want)
			}
		}
	}
}

func TestOutcome_ExitCode(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    int
	}{
		{OutcomeSuccess, 0},
		{OutcomeWarning, 1},
		{OutcomeError, 2},
	}
	for _, tt := range tests {
		if got := tt.outcome.ExitCode(); got != tt.want {
			t.Errorf("%v.ExitCode() = %d, want %d", tt.outcome, got, tt.want)
		}
	}
}

func TestStringers(t *testing.T) {
	if IntentForceStop.String() != "force-stop" {
		t.Errorf("IntentForceStop.String() = %q", IntentForceStop.String())
	}
	if ActionRestart.String() != "restart" {
		t.Errorf("ActionRestart.String() = %q", ActionRestart.String())
	}
	if Action(42).String() != "action(42)" {
		t.Errorf("Action(42).String() = %q", Action(42).String())
	}
}
