package protocol

import "fmt"

// ProtocolError represents a wire-format violation: a reply whose shape does
// not match what the issued command permits, or an argument the line protocol
// cannot carry. It is always surfaced, never silently repaired.
type ProtocolError struct {
	Message string
	Data    []byte
}

// Error implements the error interface
func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error: %s", e.Message)
}
