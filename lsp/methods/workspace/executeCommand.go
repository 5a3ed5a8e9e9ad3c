package workspace

import (
	"errors"
	"fmt"

	"bennypowers.dev/livesrv/internal/live"
	"bennypowers.dev/livesrv/internal/log"
	liveserver "bennypowers.dev/livesrv/lsp/methods/liveServer"
	"bennypowers.dev/livesrv/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ErrUnknownCommand is returned for commands the server did not advertise
var ErrUnknownCommand = errors.New("unknown command")

// Commands lists the commands advertised in executeCommandProvider
var Commands = []string{
	live.CommandGoLive,
	live.CommandGoOffline,
	live.CommandStatus,
}

// ExecuteCommand handles the workspace/executeCommand request
func ExecuteCommand(req *types.RequestContext, params *protocol.ExecuteCommandParams) (any, error) {
	log.Info("Executing command: %s", params.Command)

	switch params.Command {
	case live.CommandGoLive:
		return liveserver.GoLive(req, &types.GoLiveParams{URI: commandURI(params.Arguments)})
	case live.CommandGoOffline:
		return liveserver.GoOffline(req)
	case live.CommandStatus:
		return liveserver.Status(req), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, params.Command)
	}
}

// commandURI extracts the document argument of liveServer.goLive.
// Editors pass either a URI string or a serialized URI object.
func commandURI(args []any) string {
	if len(args) == 0 {
		return ""
	}
	switch v := args[0].(type) {
	case string:
		return v
	case map[string]any:
		for _, key := range []string{"uri", "external", "fsPath"} {
			if s, ok := v[key].(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}
