package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/looplab/fsm"

	"github.com/plexsphere/keepitup/internal/service"
)

// Phase names a single primitive driven by the reconciler.
type Phase string

const (
	PhaseStop  Phase = "stop"
	PhaseStart Phase = "start"
)

// Transition states.
const (
	TransitionStateIdle      = "idle"
	TransitionStateRequested = "transition_requested"
	TransitionStatePolling   = "polling"
	TransitionStateSucceeded = "succeeded"
	TransitionStateTimedOut  = "timed_out"
	TransitionStateFailed    = "transition_error"
)

// Transition events.
const (
	eventRequest = "request"
	eventPoll    = "poll"
	eventSucceed = "succeed"
	eventTimeOut = "time_out"
	eventFail    = "fail"
)

// ErrTimedOut is returned when the deadline elapses before the target state is observed.
var ErrTimedOut = errors.New("timed out waiting for target state")

// TransitionError is returned when a primitive rejects the command or the
// state can no longer be polled.
type TransitionError struct {
	Phase Phase
	Err   error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("reconcile: %s: %v", e.Phase, e.Err)
}

func (e *TransitionError) Unwrap() error {
	return e.Err
}

// transition tracks one phase through
// idle -> transition_requested -> polling -> {succeeded, timed_out, transition_error}.
type transition struct {
	phase  Phase
	fsm    *fsm.FSM
	logger *slog.Logger
}

func newTransition(phase Phase, logger *slog.Logger) *transition {
	t := &transition{phase: phase, logger: logger}
	t.fsm = fsm.NewFSM(
		TransitionStateIdle,
		fsm.Events{
			{Name: eventRequest, Src: []string{TransitionStateIdle}, Dst: TransitionStateRequested},
			{Name: eventPoll, Src: []string{TransitionStateRequested}, Dst: TransitionStatePolling},
			{Name: eventSucceed, Src: []string{TransitionStatePolling}, Dst: TransitionStateSucceeded},
			{Name: eventTimeOut, Src: []string{TransitionStateRequested, TransitionStatePolling}, Dst: TransitionStateTimedOut},
			{Name: eventFail, Src: []string{TransitionStateRequested, TransitionStatePolling}, Dst: TransitionStateFailed},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				t.logger.Debug("transition state changed",
					"phase", t.phase,
					"from", e.Src,
					"to", e.Dst,
				)
			},
		},
	)
	return t
}

// Current returns the current transition state.
func (t *transition) Current() string {
	return t.fsm.Current()
}

// run invokes the primitive once, waits for the target state, and returns
// nil on success, a *TransitionError, or an error wrapping ErrTimedOut.
func (t *transition) run(ctx context.Context, invoke func(context.Context) error, wait func(context.Context) (WaitResult, service.State, error)) (service.State, error) {
	t.fire(ctx, eventRequest)
	if err := invoke(ctx); err != nil {
		// A primitive killed by the transition deadline is a timeout, not a rejection.
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			t.fire(ctx, eventTimeOut)
			return service.StateUnknown, fmt.Errorf("reconcile: %s: %w (primitive did not return)", t.phase, ErrTimedOut)
		}
		t.fire(ctx, eventFail)
		return service.StateUnknown, &TransitionError{Phase: t.phase, Err: err}
	}

	t.fire(ctx, eventPoll)
	result, last, err := wait(ctx)
	switch result {
	case WaitSucceeded:
		t.fire(ctx, eventSucceed)
		return last, nil
	case WaitTimedOut:
		t.fire(ctx, eventTimeOut)
		return last, fmt.Errorf("reconcile: %s: %w (last state %s)", t.phase, ErrTimedOut, last)
	default:
		t.fire(ctx, eventFail)
		return last, &TransitionError{Phase: t.phase, Err: err}
	}
}

// fire advances the state machine. The transition deadline must not cut the
// bookkeeping short, so events run on a context without cancellation.
func (t *transition) fire(ctx context.Context, event string) {
	if err := t.fsm.Event(context.WithoutCancel(ctx), event); err != nil {
		t.logger.Error("invalid transition event",
			"phase", t.phase,
			"event", event,
			"state", t.fsm.Current(),
			"error", err,
		)
	}
}
