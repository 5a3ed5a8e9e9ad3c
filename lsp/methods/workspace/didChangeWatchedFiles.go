package workspace

import (
	"fmt"

	"bennypowers.dev/livesrv/internal/log"
	"bennypowers.dev/livesrv/internal/uriutil"
	"bennypowers.dev/livesrv/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DidChangeWatchedFiles handles the workspace/didChangeWatchedFiles notification.
// Any change to a workspace configuration file reloads all of them.
func DidChangeWatchedFiles(req *types.RequestContext, params *protocol.DidChangeWatchedFilesParams) error {
	log.Debug("Watched files changed: %d files", len(params.Changes))

	needsReload := false
	for _, change := range params.Changes {
		path := uriutil.URIToPath(change.URI, req.Server.Platform())
		log.Debug("File change: %s (type: %d)", path, change.Type)
		if req.Server.IsConfigFile(path) {
			needsReload = true
		}
	}

	if !needsReload {
		return nil
	}

	log.Info("Reloading workspace settings")
	if err := req.Server.LoadWorkspaceConfig(); err != nil {
		req.AddWarning(fmt.Errorf("failed to reload workspace settings: %w", err))
	}
	return nil
}
