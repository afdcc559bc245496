// Package lifecycle runs the start, step and close sequence shared by the
// readers, writers and servers of this module.
package lifecycle

import "errors"

// ErrPanic wraps a value recovered from a panicking Step.
var ErrPanic = errors.New("lifecycle: step panicked")

type Instance interface {
	Close_()
	String() string
}

// AsyncInstance is driven by an AsyncManager: Step is called in a loop until
// it returns an error or panics. A *BreakError ends the loop without failure.
type AsyncInstance interface {
	Instance
	Step(stopChan <-chan struct{}) error
}

type Manager[T Instance] interface {
	Start(func(T) error) error
	Close()
}

type AsyncManager[T AsyncInstance] interface {
	Manager[T]
	Done() <-chan struct{}
	Err() error // Error that ended the loop, valid once Done is closed.
}

type BreakError struct{}

func (*BreakError) Error() string {
	return "break"
}

type StartedAlreadyError struct{}

func (*StartedAlreadyError) Error() string {
	return "started already"
}

type StartedAfterCloseError struct{}

func (*StartedAfterCloseError) Error() string {
	return "start after close"
}

var errBreak = &BreakError{}
