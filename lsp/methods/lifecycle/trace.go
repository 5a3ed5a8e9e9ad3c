package lifecycle

import (
	"bennypowers.dev/livesrv/internal/log"
	"bennypowers.dev/livesrv/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// SetTrace handles the $/setTrace notification.
// "verbose" turns on debug logging.
func SetTrace(req *types.RequestContext, params *protocol.SetTraceParams) error {
	log.Info("Trace level set to: %s", params.Value)
	if params.Value == protocol.TraceValueVerbose {
		log.SetLevel(log.LevelDebug)
	}
	return nil
}
