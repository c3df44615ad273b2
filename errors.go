package diskdb

import (
	"errors"
	"fmt"
)

// Error types for specific failure scenarios
var (
	// ErrTimeout indicates a read deadline elapsed while waiting for a
	// single-line reply. During multi-value framing the same deadline expiry
	// is the normal end-of-frame signal and is never surfaced.
	ErrTimeout = errors.New("operation timed out")

	// ErrClosed indicates the connection was closed by the server while a
	// reply was still expected
	ErrClosed = errors.New("connection closed by server")

	// ErrInvalidConfig indicates invalid configuration options
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ConnectionError represents a connection-related error: the socket could
// not be established or has been lost. The client never retries on its own;
// reconnect policy belongs to the caller.
type ConnectionError struct {
	Addr string
	Err  error
}

// Error implements the error interface
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection error to %s: %v", e.Addr, e.Err)
}

// Unwrap returns the wrapped error
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// CommandError represents an explicit "ERROR:" reply from the server. The
// message is carried verbatim.
type CommandError struct {
	Message string
}

// Error implements the error interface
func (e *CommandError) Error() string {
	return fmt.Sprintf("server error: %s", e.Message)
}

// TypeMismatchError is the CommandError sub-kind reported when the server's
// message indicates a command/data-type conflict (a WRONGTYPE reply, e.g. a
// list operation on a string key). The protocol has no structured error
// codes, so the distinction rests on substring inspection of the message.
type TypeMismatchError struct {
	Message string
}

// Error implements the error interface
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: %s", e.Message)
}
