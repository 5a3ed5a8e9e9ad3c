package live

import (
	"errors"
	"fmt"

	"bennypowers.dev/livesrv/internal/session"
)

// Sentinel errors for error type checking
var (
	// ErrNoActiveDocument indicates go-live was requested with no document open
	ErrNoActiveDocument = errors.New("no active document")

	// ErrVirtualRootMissing indicates the configured root does not exist.
	// It is non-fatal: the server starts from the workspace instead.
	ErrVirtualRootMissing = errors.New("virtual root does not exist")

	// ErrBrowserLaunch indicates the browser could not be opened.
	// The server keeps running.
	ErrBrowserLaunch = errors.New("failed to open browser")

	// Lifecycle errors, re-exported so callers need only this package
	ErrAlreadyRunning = session.ErrAlreadyRunning
	ErrNotRunning     = session.ErrNotRunning
	ErrServerBind     = session.ErrServerBind
)

// VirtualRootError names the configured root that could not be found
type VirtualRootError struct {
	Root     string
	Fallback string
}

func (e *VirtualRootError) Error() string {
	return fmt.Sprintf("virtual root %q does not exist, serving %s", e.Root, e.Fallback)
}

func (e *VirtualRootError) Unwrap() error {
	return ErrVirtualRootMissing
}

// BrowserLaunchError wraps a browser launcher failure
type BrowserLaunchError struct {
	URL string
	Err error
}

func (e *BrowserLaunchError) Error() string {
	return fmt.Sprintf("failed to open browser at %s: %v", e.URL, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause
func (e *BrowserLaunchError) Unwrap() []error {
	return []error{ErrBrowserLaunch, e.Err}
}
