package resp

import (
	"errors"
	"fmt"
)

var (
	// ErrProtocol is wrapped by every ProtocolError.
	ErrProtocol = errors.New("resp: protocol error")
	// ErrLimitExceeded is returned when a declared length or nesting depth
	// exceeds the reader limits.
	ErrLimitExceeded = errors.New("resp: limit exceeded")
)

// ProtocolError describes malformed wire bytes. Msg is suitable for sending
// back to the peer as an error reply.
type ProtocolError struct {
	Msg string
}

func (e *ProtocolError) Error() string { return e.Msg }

// Unwrap returns ErrProtocol.
func (e *ProtocolError) Unwrap() error { return ErrProtocol }

func protocolErrorf(format string, args ...any) error {
	return &ProtocolError{Msg: fmt.Sprintf(format, args...)}
}

func limitErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrLimitExceeded}, args...)...)
}

// CommandError reports a request that decoded cleanly but does not have the
// shape of a command. The connection stays usable after it.
type CommandError struct {
	Msg string
}

func (e *CommandError) Error() string { return "ERR malformed command: " + e.Msg }

// IsDecodeError reports whether err means the byte stream itself is malformed
// or over limits, as opposed to an I/O failure or a malformed command.
func IsDecodeError(err error) bool {
	return errors.Is(err, ErrProtocol) || errors.Is(err, ErrLimitExceeded)
}
