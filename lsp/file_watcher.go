package lsp

import (
	"path/filepath"

	"bennypowers.dev/livesrv/internal/config"
	"bennypowers.dev/livesrv/internal/log"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// configWatcherID identifies the file watcher registration
const configWatcherID = "live-server-config-watcher"

// configWatchers returns one watcher per workspace configuration file
func (s *Server) configWatchers() []protocol.FileSystemWatcher {
	root := s.RootPath()
	if root == "" {
		return nil
	}

	files := config.WorkspaceFiles()
	watchers := make([]protocol.FileSystemWatcher, 0, len(files))
	for _, name := range files {
		// Glob patterns use forward-slash filesystem paths, not URIs
		watchers = append(watchers, protocol.FileSystemWatcher{
			GlobPattern: filepath.ToSlash(filepath.Join(root, name)),
		})
	}
	return watchers
}

// RegisterFileWatchers asks the client to report changes to the workspace
// configuration files
func (s *Server) RegisterFileWatchers(context *glsp.Context) error {
	// An empty context (created with &glsp.Context{}) won't have Call initialized
	if context == nil || context.Call == nil {
		log.Info("Skipping file watcher registration (no client context)")
		return nil
	}

	watchers := s.configWatchers()
	if len(watchers) == 0 {
		log.Info("No file watchers to register")
		return nil
	}

	params := protocol.RegistrationParams{
		Registrations: []protocol.Registration{
			{
				ID:     configWatcherID,
				Method: protocol.MethodWorkspaceDidChangeWatchedFiles,
				RegisterOptions: protocol.DidChangeWatchedFilesRegistrationOptions{
					Watchers: watchers,
				},
			},
		},
	}

	// client/registerCapability is a request. Calling it from inside the
	// initialized handler would block the message loop that must read the
	// response, so it is sent from a goroutine. glsp logs a rejected
	// registration; the server keeps working without reloads.
	go func(ctx *glsp.Context) {
		var result any
		ctx.Call(protocol.ServerClientRegisterCapability, params, &result)
		log.Info("File watcher registration completed")
	}(context)

	log.Info("Sent file watcher registration request (%d watchers)", len(watchers))
	return nil
}
