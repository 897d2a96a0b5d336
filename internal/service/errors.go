package service

import (
	"errors"
	"fmt"
)

// ErrServiceNotFound indicates that systemd has no unit with the requested name.
var ErrServiceNotFound = errors.New("service does not exist")

// ConnectError is returned by Probe when the service cannot be located or
// queried on the target host. It is terminal for a run.
type ConnectError struct {
	Identity Identity
	Err      error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("service: connect %s: %v", e.Identity, e.Err)
}

func (e *ConnectError) Unwrap() error {
	return e.Err
}
