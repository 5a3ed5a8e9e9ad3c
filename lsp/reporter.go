package lsp

import (
	"bennypowers.dev/livesrv/internal/live"
	"bennypowers.dev/livesrv/internal/log"
	"bennypowers.dev/livesrv/lsp/methods/workspace"
	"bennypowers.dev/livesrv/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// clientReporter shows coordinator messages in the editor.
// Before the client is initialized, messages only reach the log.
type clientReporter struct {
	server *Server
}

func (r *clientReporter) ShowInfo(message string) {
	log.Info("%s", message)
	workspace.ShowMessage(r.server.GLSPContext(), protocol.MessageTypeInfo, message)
}

func (r *clientReporter) ShowError(message string) {
	log.Error("%s", message)
	workspace.ShowMessage(r.server.GLSPContext(), protocol.MessageTypeError, message)
}

func (r *clientReporter) SetStatus(status live.Status) {
	log.Debug("Status: %s %q", status.Kind, status.Text())
	ctx := r.server.GLSPContext()
	if ctx == nil || ctx.Notify == nil {
		return
	}
	ctx.Notify(types.MethodStatus, types.NewStatusParams(status))
}
