// Package testutil builds workspaces and servers for the integration tests.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bennypowers.dev/livesrv/internal/platform"
	"bennypowers.dev/livesrv/internal/uriutil"
	"bennypowers.dev/livesrv/lsp"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

// NewSite writes files, keyed by slash-separated relative path, into a fresh
// workspace directory and returns its path
func NewSite(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600), "Failed to write fixture: %s", name)
	}
	return root
}

// FileURI returns the document URI of a workspace-relative file
func FileURI(root, name string) string {
	return uriutil.PathToURI(filepath.Join(root, filepath.FromSlash(name)), platform.Current())
}

// NewTestServer creates a language server and stops its live server when
// the test ends
func NewTestServer(t *testing.T) *lsp.Server {
	t.Helper()
	server, err := lsp.NewServer()
	require.NoError(t, err, "Failed to create test server")
	t.Cleanup(func() { _ = server.Close() })
	return server
}

// ServeWebSocket exposes server over WebSocket on a local HTTP server and
// returns the ws:// address
func ServeWebSocket(t *testing.T, server *lsp.Server) string {
	t.Helper()
	upgrader := websocket.Upgrader{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		server.ServeWebSocket(conn)
	}))
	t.Cleanup(ts.Close)
	return "ws" + strings.TrimPrefix(ts.URL, "http")
}
