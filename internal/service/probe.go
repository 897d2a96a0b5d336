package service

import "context"

// Probe returns the current state of the service identified by id.
// Any failure is reported as a *ConnectError; Probe never retries.
func Probe(ctx context.Context, ctrl Controller, id Identity) (State, error) {
	state, err := ctrl.Status(ctx, id)
	if err != nil {
		return StateUnknown, &ConnectError{Identity: id, Err: err}
	}
	return state, nil
}
