package workspace

import (
	"fmt"

	"bennypowers.dev/livesrv/internal/config"
	"bennypowers.dev/livesrv/internal/log"
	"bennypowers.dev/livesrv/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DidChangeConfiguration handles the workspace/didChangeConfiguration notification
func DidChangeConfiguration(req *types.RequestContext, params *protocol.DidChangeConfigurationParams) error {
	log.Info("Configuration changed")

	o, err := config.ParseEditorSettings(params.Settings)
	if err != nil {
		// Keep the previous settings
		req.AddWarning(fmt.Errorf("failed to parse configuration: %w", err))
		return nil
	}

	req.Server.SetEditorSettings(o)
	log.Debug("New configuration: %+v", req.Server.Settings())
	return nil
}
