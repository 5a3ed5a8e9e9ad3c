package lsp

import (
	"encoding/json"
	"errors"

	liveserver "bennypowers.dev/livesrv/lsp/methods/liveServer"
	"bennypowers.dev/livesrv/lsp/types"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// CustomHandler wraps protocol.Handler to add the liveServer/* requests.
// protocol.Handler only dispatches methods defined by LSP 3.16, so clients
// that prefer dedicated requests over workspace/executeCommand are served
// here before falling through.
type CustomHandler struct {
	*protocol.Handler // Pointer to avoid copying embedded mutex
	server            *Server
}

// Handle implements glsp.Handler interface
func (h *CustomHandler) Handle(context *glsp.Context) (r any, validMethod bool, validParams bool, err error) {
	switch context.Method {
	case types.MethodGoLive, types.MethodGoOffline:
		if !h.Handler.IsInitialized() {
			return nil, true, true, errors.New("server not initialized")
		}
	}

	switch context.Method {
	case types.MethodGoLive:
		var params types.GoLiveParams
		if len(context.Params) > 0 && string(context.Params) != "null" {
			if err := json.Unmarshal(context.Params, &params); err != nil {
				return nil, true, false, err
			}
		}
		result, err := method(h.server, types.MethodGoLive, liveserver.GoLive)(context, &params)
		return result, true, true, err

	case types.MethodGoOffline:
		goOffline := func(req *types.RequestContext, _ json.RawMessage) (*types.ServerStatus, error) {
			return liveserver.GoOffline(req)
		}
		result, err := method(h.server, types.MethodGoOffline, goOffline)(context, context.Params)
		return result, true, true, err
	}

	return h.Handler.Handle(context)
}
