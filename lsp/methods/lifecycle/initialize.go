package lifecycle

import (
	"fmt"

	"bennypowers.dev/livesrv/internal/config"
	"bennypowers.dev/livesrv/internal/log"
	"bennypowers.dev/livesrv/internal/uriutil"
	"bennypowers.dev/livesrv/internal/version"
	"bennypowers.dev/livesrv/lsp/methods/workspace"
	"bennypowers.dev/livesrv/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Initialize handles the LSP initialize request
func Initialize(req *types.RequestContext, params *protocol.InitializeParams) (any, error) {
	clientName := "unknown"
	if params.ClientInfo != nil {
		clientName = params.ClientInfo.Name
	}
	log.Info("Initializing for client: %s", clientName)

	// Store the workspace root
	p := req.Server.Platform()
	switch {
	case params.RootURI != nil && *params.RootURI != "":
		req.Server.SetRootURI(*params.RootURI)
		req.Server.SetRootPath(uriutil.URIToPath(*params.RootURI, p))
		log.Info("Workspace root: %s", req.Server.RootPath())
	case params.RootPath != nil && *params.RootPath != "":
		req.Server.SetRootPath(*params.RootPath)
		req.Server.SetRootURI(uriutil.PathToURI(*params.RootPath, p))
		log.Info("Workspace root (from rootPath): %s", req.Server.RootPath())
	case len(params.WorkspaceFolders) > 0:
		folder := params.WorkspaceFolders[0].URI
		req.Server.SetRootURI(folder)
		req.Server.SetRootPath(uriutil.URIToPath(folder, p))
		log.Info("Workspace root (from workspaceFolders): %s", req.Server.RootPath())
	default:
		log.Info("No workspace root: serving from the active document's folder")
	}

	// Clients may send settings up front instead of via didChangeConfiguration
	if params.InitializationOptions != nil {
		o, err := config.ParseEditorSettings(params.InitializationOptions)
		if err != nil {
			req.AddWarning(fmt.Errorf("failed to parse initializationOptions: %w", err))
		} else if !o.IsEmpty() {
			req.Server.SetEditorSettings(o)
		}
	}

	syncKind := protocol.TextDocumentSyncKindFull
	return protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: protocol.TextDocumentSyncOptions{
				OpenClose: boolPtr(true),
				Change:    &syncKind,
			},
			ExecuteCommandProvider: &protocol.ExecuteCommandOptions{
				Commands: workspace.Commands,
			},
		},
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    types.ServerName,
			Version: strPtr(version.GetVersion()),
		},
	}, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func strPtr(s string) *string {
	return &s
}
