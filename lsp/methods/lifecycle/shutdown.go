package lifecycle

import (
	"errors"
	"fmt"

	"bennypowers.dev/livesrv/internal/log"
	"bennypowers.dev/livesrv/internal/session"
	"bennypowers.dev/livesrv/lsp/types"
)

// Shutdown handles the LSP shutdown request. A running server is stopped.
func Shutdown(req *types.RequestContext) error {
	log.Info("Server shutting down")

	s := req.Server.Coordinator().Session()
	if !s.IsRunning() {
		return nil
	}

	err := s.Stop(req.Context())
	if err != nil && !errors.Is(err, session.ErrNotRunning) {
		return fmt.Errorf("failed to stop live server: %w", err)
	}
	return nil
}
