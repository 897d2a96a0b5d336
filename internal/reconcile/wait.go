package reconcile

import (
	"context"
	"errors"
	"time"

	"github.com/plexsphere/keepitup/internal/service"
)

// Clock abstracts time for the poll loop so tests can simulate it.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// WaitResult is the terminal classification of a wait.
type WaitResult int

const (
	WaitSucceeded WaitResult = iota
	WaitTimedOut
	WaitFailed
)

func (r WaitResult) String() string {
	switch r {
	case WaitSucceeded:
		return "succeeded"
	case WaitTimedOut:
		return "timed_out"
	default:
		return "failed"
	}
}

// PollFunc returns the current state of the service.
type PollFunc func(ctx context.Context) (service.State, error)

// WaitFor polls until target reports true for the observed state or the
// deadline passes. It returns the classification, the last observed state,
// and the poll error for WaitFailed.
//
// Each iteration polls first and checks the deadline second, and the final
// sleep is clamped to the time remaining, so a target reached exactly at the
// deadline is observed.
func WaitFor(ctx context.Context, poll PollFunc, target func(service.State) bool, deadline time.Time, interval time.Duration, clock Clock) (WaitResult, service.State, error) {
	last := service.StateUnknown
	for {
		state, err := poll(ctx)
		if err != nil {
			// A probe killed by the transition deadline is a timeout, not a rejection.
			if errors.Is(ctx.Err(), context.DeadlineExceeded) || !clock.Now().Before(deadline) {
				return WaitTimedOut, last, nil
			}
			return WaitFailed, last, err
		}
		last = state
		if target(state) {
			return WaitSucceeded, state, nil
		}

		remaining := deadline.Sub(clock.Now())
		if remaining <= 0 {
			return WaitTimedOut, state, nil
		}
		clock.Sleep(min(interval, remaining))
	}
}
