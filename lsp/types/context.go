package types

import (
	"bennypowers.dev/livesrv/internal/config"
	"bennypowers.dev/livesrv/internal/documents"
	"bennypowers.dev/livesrv/internal/live"
	"bennypowers.dev/livesrv/internal/platform"
	"github.com/tliron/glsp"
)

// ServerContext provides all dependencies needed for LSP handlers.
// This unified context eliminates the need for handler-specific interfaces
// and enables dependency injection for testing.
type ServerContext interface {
	// Document operations
	Document(uri string) *documents.Document
	DocumentManager() *documents.Manager
	AllDocuments() []*documents.Document

	// Workspace operations
	RootURI() string
	RootPath() string
	SetRootURI(uri string)
	SetRootPath(path string)
	Platform() platform.Platform

	// Configuration
	Settings() config.Settings
	SetEditorSettings(o config.Overrides)
	LoadWorkspaceConfig() error
	IsConfigFile(path string) bool

	// Workspace initialization (called by Initialized handler)
	RegisterFileWatchers(ctx *glsp.Context) error

	// Live server
	Coordinator() *live.Coordinator

	// LSP context (for notifications sent outside a request)
	GLSPContext() *glsp.Context
	SetGLSPContext(ctx *glsp.Context)
}
