// Package session tracks the single static server a process may run and
// guards it against double starts and double stops.
package session

import (
	"context"
	"fmt"
	"sync"

	"bennypowers.dev/livesrv/internal/log"
	"bennypowers.dev/livesrv/internal/staticserver"
)

// State is the lifecycle state of a Session
type State int

const (
	// Offline means no server is bound
	Offline State = iota
	// Running means a server is bound and serving
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "offline"
}

// Server is the static file server collaborator
type Server interface {
	Start(ctx context.Context, cfg staticserver.Config) (staticserver.Handle, error)
	Stop(ctx context.Context, h staticserver.Handle) error
}

// Session is the Offline/Running state machine around one Server.
// port and handle are set if and only if state is Running.
type Session struct {
	server Server

	// mu is held across the delegated Start/Stop so that a second request
	// observes the outcome of the first instead of racing it
	mu     sync.Mutex
	state  State
	port   int
	handle staticserver.Handle
}

// New creates an Offline session backed by server
func New(server Server) *Session {
	return &Session{server: server}
}

// Start binds the server with cfg.
// It returns *AlreadyRunningError while Running and *BindError if the
// collaborator fails; in both cases the state is unchanged.
// On success the bound port is returned, which differs from cfg.Port when
// cfg.Port is 0.
func (s *Session) Start(ctx context.Context, cfg staticserver.Config) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Running {
		return s.port, &AlreadyRunningError{Port: s.port}
	}

	handle, err := s.server.Start(ctx, cfg)
	if err != nil {
		return 0, &BindError{Port: cfg.Port, Err: err}
	}
	if handle == nil {
		return 0, &BindError{Port: cfg.Port, Err: fmt.Errorf("server returned no handle")}
	}

	s.state = Running
	s.handle = handle
	s.port = handle.Port()
	log.Debug("Session running on port %d (requested %d)", s.port, cfg.Port)
	return s.port, nil
}

// Stop shuts the server down.
// It returns ErrNotRunning while Offline. A stop error from the collaborator
// is returned, but the session is reset to Offline regardless.
func (s *Session) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Running {
		return ErrNotRunning
	}

	err := s.server.Stop(ctx, s.handle)

	s.state = Offline
	s.port = 0
	s.handle = nil
	log.Debug("Session offline")

	if err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}
	return nil
}

// CurrentPort returns the bound port while Running
func (s *Session) CurrentPort() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Running {
		return 0, false
	}
	return s.port, true
}

// State returns the current lifecycle state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsRunning reports whether the session is Running
func (s *Session) IsRunning() bool {
	return s.State() == Running
}
