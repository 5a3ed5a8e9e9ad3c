package lsp

import (
	"fmt"
	"runtime/debug"

	"bennypowers.dev/livesrv/internal/log"
	"bennypowers.dev/livesrv/lsp/methods/workspace"
	"bennypowers.dev/livesrv/lsp/types"
	"github.com/tliron/glsp"
)

// recoverPanic logs a recovered handler panic to stderr and the client
func recoverPanic(ctx *glsp.Context, methodName string, r any) error {
	log.Error("PANIC in %s: %v\nStack trace:\n%s", methodName, r, debug.Stack())
	workspace.LogError(ctx, "Internal error in %s: %v", methodName, r)
	return fmt.Errorf("internal error in %s", methodName)
}

// finish logs the outcome of a handler and wraps its error with the method name
func finish(req *types.RequestContext, methodName string, err error) error {
	if err != nil {
		log.Error("%s error: %v", methodName, err)
		workspace.LogError(req.GLSP, "%s: %v", methodName, err)
		return fmt.Errorf("%s: %w", methodName, err)
	}
	for _, w := range req.Warnings() {
		log.Warn("%s: %v", methodName, w)
	}
	log.Debug("%s completed successfully", methodName)
	return nil
}

// method wraps an LSP handler that returns (result, error) with middleware
// Returns the underlying function type so it's compatible with protocol.Handler field types
func method[P, R any](
	s types.ServerContext,
	methodName string,
	handler func(*types.RequestContext, P) (R, error),
) func(*glsp.Context, P) (R, error) {
	return func(ctx *glsp.Context, params P) (result R, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recoverPanic(ctx, methodName, r)
				var zero R
				result = zero
			}
		}()

		log.Debug("%s started", methodName)
		req := types.NewRequestContext(s, ctx)
		result, err = handler(req, params)
		if err = finish(req, methodName, err); err != nil {
			return result, err
		}
		return result, nil
	}
}

// notify wraps an LSP notification handler that returns only error
func notify[P any](
	s types.ServerContext,
	methodName string,
	handler func(*types.RequestContext, P) error,
) func(*glsp.Context, P) error {
	return func(ctx *glsp.Context, params P) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recoverPanic(ctx, methodName, r)
			}
		}()

		log.Debug("%s started", methodName)
		req := types.NewRequestContext(s, ctx)
		return finish(req, methodName, handler(req, params))
	}
}

// noParam wraps an LSP handler that takes no params (like Shutdown)
func noParam(
	s types.ServerContext,
	methodName string,
	handler func(*types.RequestContext) error,
) func(*glsp.Context) error {
	return func(ctx *glsp.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recoverPanic(ctx, methodName, r)
			}
		}()

		log.Debug("%s started", methodName)
		req := types.NewRequestContext(s, ctx)
		return finish(req, methodName, handler(req))
	}
}
