package service

import "context"

// Controller abstracts service control for testability.
// Start and Stop only enqueue the request; callers observe completion by
// polling Status.
type Controller interface {
	// Status returns the current state of the service.
	Status(ctx context.Context, id Identity) (State, error)

	// Start requests the service to start.
	Start(ctx context.Context, id Identity) error

	// Stop requests the service to stop.
	Stop(ctx context.Context, id Identity) error
}

// RootChecker abstracts privilege checking for testability.
type RootChecker interface {
	// IsRoot returns true if the current process has root privileges.
	IsRoot() bool
}
