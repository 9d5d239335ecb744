package ctrl

import (
	"errors"
	"fmt"
)

// Sentinel errors for the control channel. Callers classify failures
// with errors.Is; parameterized cases below carry their detail in typed
// errors reachable with errors.As.
var (
	// ErrInterface means the control interface could not be created.
	ErrInterface = errors.New("failed to create control interface")

	// ErrFailed is the daemon's generic failure, and also covers an
	// attach/detach handshake whose reply was not "OK\n".
	ErrFailed = errors.New("control request failed")

	// ErrTimeout means the transport's request timeout elapsed before a
	// reply arrived.
	ErrTimeout = errors.New("control request timed out")

	// ErrClosed is returned by operations on a connection whose transport
	// has been closed or moved by a state transition.
	ErrClosed = errors.New("control connection is closed")
)

// UnknownStatusError carries a daemon status code outside the documented
// set, verbatim.
type UnknownStatusError struct {
	Code int
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("unknown control status %d", e.Code)
}

// DecodeError means a reply or event was not valid UTF-8.
type DecodeError struct {
	Op string // "request" or "recv"
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s reply is not valid UTF-8", e.Op)
}

// InvalidCommandError means the command text cannot be carried by the
// transport: it is empty or contains an embedded NUL byte.
type InvalidCommandError struct {
	Reason string
}

func (e *InvalidCommandError) Error() string {
	return fmt.Sprintf("invalid command: %s", e.Reason)
}
