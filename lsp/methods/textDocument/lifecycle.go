package textDocument

import (
	"bennypowers.dev/livesrv/internal/log"
	"bennypowers.dev/livesrv/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DidOpen handles the textDocument/didOpen notification.
// Without a workspace, opening an HTML document is what makes the live
// server available, so the idle status is shown.
func DidOpen(req *types.RequestContext, params *protocol.DidOpenTextDocumentParams) error {
	uri := params.TextDocument.URI
	log.Debug("Document opened: %s (language: %s, version: %d)",
		uri, params.TextDocument.LanguageID, int(params.TextDocument.Version))

	err := req.Server.DocumentManager().DidOpen(uri, params.TextDocument.LanguageID, int(params.TextDocument.Version))
	if err != nil {
		return err
	}

	if req.Server.RootPath() == "" {
		if doc := req.Server.Document(uri); doc != nil && doc.IsHTML() {
			req.Server.Coordinator().Init(req.Server.Settings())
		}
	}
	return nil
}

// DidChange handles the textDocument/didChange notification.
// Content is not tracked; the change marks the document as active.
func DidChange(req *types.RequestContext, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	version := int(params.TextDocument.Version)

	log.Debug("Document changed: %s (version: %d)", uri, version)

	return req.Server.DocumentManager().DidChange(uri, version)
}

// DidClose handles the textDocument/didClose notification
func DidClose(req *types.RequestContext, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI

	log.Debug("Document closed: %s", uri)

	return req.Server.DocumentManager().DidClose(uri)
}
