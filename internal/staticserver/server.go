// Package staticserver serves a directory over HTTP for a go-live session.
package staticserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"bennypowers.dev/livesrv/internal/log"
	"github.com/julienschmidt/httprouter"
)

// DefaultHost listens on every interface so devices on the LAN can connect
const DefaultHost = "0.0.0.0"

// Config describes one static server
type Config struct {
	// Host to listen on, DefaultHost when empty
	Host string
	// Port to listen on; 0 picks an ephemeral port
	Port int
	// Root is the directory served at "/"
	Root string
	// Ignore holds absolute glob patterns of paths excluded from change
	// detection. Matching files are still served.
	Ignore []string
}

// Handle identifies a running server
type Handle interface {
	// Port is the port actually bound
	Port() int
}

type handle struct {
	srv  *http.Server
	ln   net.Listener
	port int
	done chan struct{}
}

func (h *handle) Port() int {
	return h.port
}

// Addr returns the listener address
func (h *handle) Addr() string {
	return h.ln.Addr().String()
}

// Server starts and stops static file servers
type Server struct {
	readHeaderTimeout time.Duration
}

// New creates a static server collaborator
func New() *Server {
	return &Server{readHeaderTimeout: 10 * time.Second}
}

// Start binds cfg.Host:cfg.Port and serves cfg.Root in the background
func (s *Server) Start(ctx context.Context, cfg Config) (Handle, error) {
	info, err := os.Stat(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("root %s: %w", cfg.Root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", cfg.Root)
	}

	host := cfg.Host
	if host == "" {
		host = DefaultHost
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(cfg.Port)))
	if err != nil {
		return nil, err
	}

	port := cfg.Port
	if tcpAddr, ok := ln.Addr().(*net.TCPAddr); ok {
		port = tcpAddr.Port
	}

	h := &handle{
		srv: &http.Server{
			Handler:           newRouter(cfg.Root, cfg.Ignore),
			ReadHeaderTimeout: s.readHeaderTimeout,
		},
		ln:   ln,
		port: port,
		done: make(chan struct{}),
	}

	go func() {
		defer close(h.done)
		if err := h.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Static server on port %d stopped: %v", port, err)
		}
	}()

	log.Info("Serving %s on %s", cfg.Root, h.Addr())
	return h, nil
}

// Stop gracefully shuts down a server started by Start
func (s *Server) Stop(ctx context.Context, h Handle) error {
	sh, ok := h.(*handle)
	if !ok || sh == nil {
		return fmt.Errorf("unknown server handle %T", h)
	}
	if err := sh.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}
	<-sh.done
	log.Info("Stopped server on port %d", sh.port)
	return nil
}

func newRouter(root string, ignore []string) http.Handler {
	router := httprouter.New()
	router.ServeFiles("/*filepath", http.Dir(root))
	return &unwatchedLogger{
		next:     router,
		root:     root,
		patterns: normalizePatterns(ignore),
	}
}
