package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter is returned by NewSimulator when the run
	// configuration is unusable. No simulation work happens in that case.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidTime is returned when an event would be scheduled before the
	// current clock. It always indicates a causality bug in a handler.
	ErrInvalidTime = errors.New("invalid event time")

	// ErrAlreadyRun is returned by Simulator.Run on a second invocation.
	ErrAlreadyRun = errors.New("simulation already run")
)

// RunError reports a fault raised by an event handler. The run loop stops at
// the first fault; history recorded up to Clock is kept.
type RunError struct {
	Clock float64
	Kind  EventKind
	Err   error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("simulation failed at t=%g while executing %s: %v", e.Clock, e.Kind, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}
