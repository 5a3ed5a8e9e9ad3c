package lifecycle

import (
	"context"
	"fmt"

	"bennypowers.dev/livesrv/internal/htmlscan"
	"bennypowers.dev/livesrv/internal/log"
	"bennypowers.dev/livesrv/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Initialized handles the LSP initialized notification
func Initialized(req *types.RequestContext, params *protocol.InitializedParams) error {
	log.Info("Server initialized")

	// Store context for notifications sent outside a request
	req.Server.SetGLSPContext(req.GLSP)

	// Don't fail initialization on a broken settings file
	if err := req.Server.LoadWorkspaceConfig(); err != nil {
		req.AddWarning(fmt.Errorf("failed to load workspace settings: %w", err))
	}

	if err := req.Server.RegisterFileWatchers(req.GLSP); err != nil {
		req.AddWarning(fmt.Errorf("failed to register file watchers: %w", err))
	}

	ShowStatusWhenHTML(req.Server)
	return nil
}

// ShowStatusWhenHTML shows the idle status once the workspace is known to
// contain an HTML file. Without a workspace, an open HTML document counts.
// The workspace scan runs in the background; the returned channel closes when
// the decision has been made.
func ShowStatusWhenHTML(server types.ServerContext) <-chan struct{} {
	done := make(chan struct{})

	root := server.RootPath()
	if root == "" {
		if doc := server.DocumentManager().Active(); doc != nil && doc.IsHTML() {
			server.Coordinator().Init(server.Settings())
		}
		close(done)
		return done
	}

	found := htmlscan.HasHTML(context.Background(), root)
	go func() {
		defer close(done)
		if <-found {
			server.Coordinator().Init(server.Settings())
			return
		}
		log.Debug("No HTML files under %s", root)
	}()
	return done
}
