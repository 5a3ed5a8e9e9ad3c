package workspace

import (
	"fmt"

	"bennypowers.dev/livesrv/internal/log"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// canNotify reports whether context is connected to a client.
// An empty context (created with &glsp.Context{}) has no Notify func.
func canNotify(context *glsp.Context) bool {
	return context != nil && context.Notify != nil
}

// LogError logs an error message to stderr and optionally to the LSP client
func LogError(context *glsp.Context, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	log.Error("%s", message)
	LogMessage(context, protocol.MessageTypeError, message)
}

// LogWarning logs a warning message to stderr and optionally to the LSP client
func LogWarning(context *glsp.Context, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	log.Warn("%s", message)
	LogMessage(context, protocol.MessageTypeWarning, message)
}

// LogMessage writes message to the client's output log
func LogMessage(context *glsp.Context, messageType protocol.MessageType, message string) {
	if canNotify(context) {
		context.Notify(protocol.ServerWindowLogMessage, &protocol.LogMessageParams{
			Type:    messageType,
			Message: message,
		})
	}
}

// ShowMessage sends a message to be displayed to the user.
// Notifications are sent inline so the client sees them in order.
func ShowMessage(context *glsp.Context, messageType protocol.MessageType, message string) {
	if canNotify(context) {
		context.Notify(protocol.ServerWindowShowMessage, &protocol.ShowMessageParams{
			Type:    messageType,
			Message: message,
		})
	}
}
