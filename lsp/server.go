package lsp

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"bennypowers.dev/livesrv/internal/browser"
	"bennypowers.dev/livesrv/internal/config"
	"bennypowers.dev/livesrv/internal/documents"
	"bennypowers.dev/livesrv/internal/live"
	"bennypowers.dev/livesrv/internal/platform"
	"bennypowers.dev/livesrv/internal/session"
	"bennypowers.dev/livesrv/internal/staticserver"
	"bennypowers.dev/livesrv/lsp/methods/lifecycle"
	"bennypowers.dev/livesrv/lsp/methods/textDocument"
	"bennypowers.dev/livesrv/lsp/methods/workspace"
	"bennypowers.dev/livesrv/lsp/types"
	"github.com/gorilla/websocket"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

// Verify that Server implements ServerContext interface
var _ types.ServerContext = (*Server)(nil)

// Server represents the Live Server language server
type Server struct {
	documents         *documents.Manager
	coordinator       *live.Coordinator
	glspServer        *server.Server
	context           *glsp.Context
	platform          platform.Platform
	rootURI           string           // Workspace root URI
	rootPath          string           // Workspace root path (file system)
	workspaceSettings config.Overrides // From workspace files
	editorSettings    config.Overrides // From initializationOptions and didChangeConfiguration
	configMu          sync.RWMutex     // Protects root, settings and context from concurrent access
}

// NewServer creates a new Live Server LSP server that serves files over
// HTTP and opens the system browser
func NewServer() (*Server, error) {
	return newServer(staticserver.New(), browser.NewLauncher(runtime.GOOS), runtime.GOOS)
}

func newServer(static session.Server, opener live.BrowserOpener, goos string) (*Server, error) {
	s := &Server{
		documents: documents.NewManager(),
		platform:  platform.FromGOOS(goos),
	}
	s.coordinator = live.NewCoordinator(session.New(static), opener, &clientReporter{server: s}, goos)

	// Create the GLSP server with our handlers wrapped with middleware
	protocolHandler := protocol.Handler{
		Initialize:                      method(s, "initialize", lifecycle.Initialize),
		Initialized:                     notify(s, "initialized", lifecycle.Initialized),
		Shutdown:                        noParam(s, "shutdown", lifecycle.Shutdown),
		SetTrace:                        notify(s, "$/setTrace", lifecycle.SetTrace),
		WorkspaceDidChangeConfiguration: notify(s, "workspace/didChangeConfiguration", workspace.DidChangeConfiguration),
		WorkspaceDidChangeWatchedFiles:  notify(s, "workspace/didChangeWatchedFiles", workspace.DidChangeWatchedFiles),
		WorkspaceExecuteCommand:         method(s, "workspace/executeCommand", workspace.ExecuteCommand),
		TextDocumentDidOpen:             notify(s, "textDocument/didOpen", textDocument.DidOpen),
		TextDocumentDidChange:           notify(s, "textDocument/didChange", textDocument.DidChange),
		TextDocumentDidClose:            notify(s, "textDocument/didClose", textDocument.DidClose),
	}

	// The CustomHandler answers the liveServer/* requests, which
	// protocol.Handler has no fields for
	customHandler := &CustomHandler{
		Handler: &protocolHandler,
		server:  s,
	}

	s.glspServer = server.NewServer(customHandler, types.ServerName, false)

	return s, nil
}

// RunStdio starts the LSP server using stdio transport
func (s *Server) RunStdio() error {
	return s.glspServer.RunStdio()
}

// RunTCP accepts LSP connections on address until the listener fails
func (s *Server) RunTCP(address string) error {
	return s.glspServer.RunTCP(address)
}

// RunWebSocket serves LSP over WebSocket on address
func (s *Server) RunWebSocket(address string) error {
	return s.glspServer.RunWebSocket(address)
}

// ServeWebSocket speaks LSP on an upgraded connection until it closes
func (s *Server) ServeWebSocket(conn *websocket.Conn) {
	s.glspServer.ServeWebSocket(conn)
}

// Close stops the static server if it is still running.
// It is safe to call Close multiple times.
func (s *Server) Close() error {
	err := s.coordinator.Session().Stop(context.Background())
	if errors.Is(err, session.ErrNotRunning) {
		return nil
	}
	return err
}

// ServerContext interface implementation

// Document returns the document with the given URI
func (s *Server) Document(uri string) *documents.Document {
	return s.documents.Get(uri)
}

// DocumentManager returns the document manager
func (s *Server) DocumentManager() *documents.Manager {
	return s.documents
}

// AllDocuments returns all tracked documents
func (s *Server) AllDocuments() []*documents.Document {
	return s.documents.GetAll()
}

// RootURI returns the workspace root URI
func (s *Server) RootURI() string {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.rootURI
}

// RootPath returns the workspace root path
func (s *Server) RootPath() string {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.rootPath
}

// SetRootURI sets the workspace root URI
func (s *Server) SetRootURI(uri string) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.rootURI = uri
}

// SetRootPath sets the workspace root path
func (s *Server) SetRootPath(path string) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.rootPath = path
}

// Platform returns the path convention of the host
func (s *Server) Platform() platform.Platform {
	return s.platform
}

// Coordinator returns the live server coordinator
func (s *Server) Coordinator() *live.Coordinator {
	return s.coordinator
}

// GLSPContext returns the GLSP context.
// Access is protected by configMu to prevent concurrent races.
func (s *Server) GLSPContext() *glsp.Context {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.context
}

// SetGLSPContext sets the GLSP context.
// Access is protected by configMu to prevent concurrent races.
func (s *Server) SetGLSPContext(ctx *glsp.Context) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.context = ctx
}
