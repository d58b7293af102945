package testutil

import (
	"errors"
	"net"
	"os"
	"syscall"
)

// TestError implements error interface for testing purposes
type TestError struct {
	message string
}

func (e *TestError) Error() string {
	return e.message
}

// NewTestError creates a new test error with the given message
func NewTestError(message string) error {
	return &TestError{message: message}
}

// ConnectionRefused is the error a dial to a closed port produces.
func ConnectionRefused() error {
	return &net.OpError{
		Op:   "dial",
		Net:  "tcp",
		Addr: &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 9},
		Err:  &os.SyscallError{Syscall: "connect", Err: syscall.ECONNREFUSED},
	}
}

// IsConnectionRefused reports whether err carries ECONNREFUSED.
func IsConnectionRefused(err error) bool {
	return errors.Is(err, syscall.ECONNREFUSED)
}
