// Package liveserver handles the go-live, go-offline and status requests an
// editor sends, either as workspace/executeCommand or as custom methods.
package liveserver

import (
	"bennypowers.dev/livesrv/internal/browser"
	"bennypowers.dev/livesrv/internal/config"
	"bennypowers.dev/livesrv/internal/live"
	"bennypowers.dev/livesrv/internal/uriutil"
	"bennypowers.dev/livesrv/lsp/types"
)

// GoLive starts serving the workspace and opens the browser.
// Failures were already shown to the user by the coordinator, so they are
// recorded as warnings and the request succeeds with the resulting status.
func GoLive(req *types.RequestContext, params *types.GoLiveParams) (*types.ServerStatus, error) {
	uri := ""
	if params != nil {
		uri = params.URI
	}
	if uri == "" {
		if doc := req.Server.DocumentManager().Active(); doc != nil {
			uri = doc.URI()
		}
	} else {
		req.Server.DocumentManager().Touch(uri)
	}

	result, err := req.Server.Coordinator().GoLive(req.Context(), live.GoLiveRequest{
		WorkspaceRoot:  req.Server.RootPath(),
		ActiveDocument: documentPath(req, uri),
		Settings:       req.Server.Settings(),
	})
	req.AddWarning(err)

	status := Status(req)
	if result != nil {
		for _, w := range result.Warnings {
			req.AddWarning(w)
		}
		status.URL = result.URL
	}
	return status, nil
}

// GoOffline stops the running server
func GoOffline(req *types.RequestContext) (*types.ServerStatus, error) {
	err := req.Server.Coordinator().GoOffline(req.Context(), req.Server.Settings())
	req.AddWarning(err)
	return Status(req), nil
}

// Status reports whether the server is running and where
func Status(req *types.RequestContext) *types.ServerStatus {
	port, running := req.Server.Coordinator().Session().CurrentPort()
	if !running {
		return &types.ServerStatus{}
	}

	host := req.Server.Settings().Host
	if host == "" {
		host = config.DefaultBrowserHost
	}
	return &types.ServerStatus{
		Running: true,
		Port:    port,
		URL:     browser.URL(host, port, ""),
	}
}

// documentPath converts a document URI, or a bare path, to a filesystem path
func documentPath(req *types.RequestContext, uri string) string {
	if uri == "" {
		return ""
	}
	return uriutil.URIToPath(uri, req.Server.Platform())
}
