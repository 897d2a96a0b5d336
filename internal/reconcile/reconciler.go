package reconcile

import (
	"context"
	"log/slog"
	"time"

	"github.com/plexsphere/keepitup/internal/service"
)

// Result records what a single reconciliation run observed and did.
type Result struct {
	Outcome Outcome
	Action  Action

	// State is the probed state the decision was made on.
	State service.State
	// Final is the last state observed, equal to State when nothing was driven.
	Final service.State

	// Phases lists the primitives issued, in order.
	Phases []Phase

	// Err is the ConnectError, TransitionError or ErrTimedOut that caused
	// OutcomeError, nil otherwise.
	Err error
}

// Reconciler compares the observed state of one service against an intent
// and drives at most one transition to close the gap.
type Reconciler struct {
	ctrl   service.Controller
	cfg    Config
	clock  Clock
	logger *slog.Logger
}

// NewReconciler creates a new Reconciler with the given configuration.
// Config defaults are applied automatically.
func NewReconciler(ctrl service.Controller, cfg Config, logger *slog.Logger) *Reconciler {
	cfg.ApplyDefaults()
	return &Reconciler{
		ctrl:   ctrl,
		cfg:    cfg,
		clock:  realClock{},
		logger: logger.With("component", "reconcile"),
	}
}

// Run probes the service and reconciles it against intent.
// The probe is bounded by the same timeout as a transition. A probe failure
// yields OutcomeError without issuing any primitive.
func (r *Reconciler) Run(ctx context.Context, id service.Identity, intent Intent) Result {
	pctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	state, err := service.Probe(pctx, r.ctrl, id)
	cancel()
	if err != nil {
		r.logger.Error("reconciliation failed",
			"service", id.String(),
			"phase", "connect",
			"error", err,
		)
		return Result{
			Outcome: OutcomeError,
			State:   service.StateUnknown,
			Final:   service.StateUnknown,
			Err:     err,
		}
	}
	return r.Reconcile(ctx, id, state, intent)
}

// Reconcile decides on an action for the probed state and drives it.
// Reconcile on an already satisfied state is a no-op returning OutcomeSuccess.
func (r *Reconciler) Reconcile(ctx context.Context, id service.Identity, state service.State, intent Intent) Result {
	action := Decide(state, intent)
	res := Result{
		Action: action,
		State:  state,
		Final:  state,
	}

	logger := r.logger.With("service", id.String())
	logger.Debug("reconciliation decided",
		"state", state,
		"intent", intent,
		"action", action,
	)

	if action == ActionNone {
		res.Outcome = OutcomeSuccess
		return res
	}

	start := r.clock.Now()
	deadline := start.Add(r.cfg.Timeout)
	tctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	switch action {
	case ActionStop:
		res.Err = r.drive(tctx, id, PhaseStop, deadline, &res, logger)
	case ActionRestart:
		if !state.IsStopped() {
			res.Err = r.drive(tctx, id, PhaseStop, deadline, &res, logger)
		}
		if res.Err == nil {
			res.Err = r.drive(tctx, id, PhaseStart, deadline, &res, logger)
		}
	}

	if res.Err != nil {
		res.Outcome = OutcomeError
		logger.Error("reconciliation failed",
			"phase", res.Phases[len(res.Phases)-1],
			"last_state", res.Final,
			"error", res.Err,
		)
		return res
	}

	res.Outcome = OutcomeSuccess
	logger.Info("reconciliation completed",
		"action", action,
		"state", res.Final,
		"duration", r.clock.Now().Sub(start),
	)
	return res
}

// drive issues one primitive and waits for its target state until deadline.
func (r *Reconciler) drive(ctx context.Context, id service.Identity, phase Phase, deadline time.Time, res *Result, logger *slog.Logger) error {
	res.Phases = append(res.Phases, phase)

	invoke := r.ctrl.Stop
	target := service.State.IsStopped
	if phase == PhaseStart {
		invoke = r.ctrl.Start
		target = service.State.IsRunning
	}

	poll := func(ctx context.Context) (service.State, error) {
		return r.ctrl.Status(ctx, id)
	}

	logger.Debug("transition requested", "phase", phase, "deadline", deadline)

	t := newTransition(phase, logger)
	last, err := t.run(ctx,
		func(ctx context.Context) error { return invoke(ctx, id) },
		func(ctx context.Context) (WaitResult, service.State, error) {
			return WaitFor(ctx, poll, target, deadline, r.cfg.PollInterval, r.clock)
		},
	)
	if last != service.StateUnknown {
		res.Final = last
	}
	return err
}
