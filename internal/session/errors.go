package session

import (
	"errors"
	"fmt"
)

// Sentinel errors for error type checking
var (
	// ErrAlreadyRunning indicates Start was called while a server is running
	ErrAlreadyRunning = errors.New("server is already running")

	// ErrNotRunning indicates Stop was called while no server is running
	ErrNotRunning = errors.New("server is not running")

	// ErrServerBind indicates the static server could not be started
	ErrServerBind = errors.New("failed to start server")
)

// AlreadyRunningError carries the port of the server that is already running
type AlreadyRunningError struct {
	Port int
}

func (e *AlreadyRunningError) Error() string {
	return fmt.Sprintf("server is already running at port %d", e.Port)
}

func (e *AlreadyRunningError) Unwrap() error {
	return ErrAlreadyRunning
}

// BindError wraps the collaborator's start failure
type BindError struct {
	Port int
	Err  error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("failed to start server at port %d: %v", e.Port, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause
func (e *BindError) Unwrap() []error {
	return []error{ErrServerBind, e.Err}
}
