package tileworker

import (
	"errors"
	"fmt"
)

// Sentinel errors for the tileworker package.
var (
	// ErrWorkerClosed is reported via Parent.OnError when a Set*/On* call
	// reaches a Worker after Close.
	ErrWorkerClosed = errors.New("tileworker: worker is closed")
)

// HandlerError wraps an arbitrary panic value recovered while handling
// one inbound message, carried opaquely to the parent via onError (spec
// §4.5, §7: "any unexpected failure ... is captured and reported to the
// parent via onError(opaque); the worker does not distinguish kinds").
type HandlerError struct {
	Cause any
}

func newHandlerError(cause any) *HandlerError {
	return &HandlerError{Cause: cause}
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("tileworker: handler panic: %v", e.Cause)
}

// Unwrap supports errors.Is/errors.As against the recovered value when it
// was itself an error.
func (e *HandlerError) Unwrap() error {
	if err, ok := e.Cause.(error); ok {
		return err
	}
	return nil
}
