package lifecycle

import (
	"testing"

	"bennypowers.dev/livesrv/internal/platform"
	"bennypowers.dev/livesrv/lsp/testutil"
	"bennypowers.dev/livesrv/lsp/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func initialize(t *testing.T, ctx *testutil.MockServerContext, params *protocol.InitializeParams) (*types.RequestContext, protocol.InitializeResult) {
	t.Helper()
	req := types.NewRequestContext(ctx, nil)
	result, err := Initialize(req, params)
	require.NoError(t, err)
	initResult, ok := result.(protocol.InitializeResult)
	require.True(t, ok)
	return req, initResult
}

func TestInitialize(t *testing.T) {
	t.Run("with root URI", func(t *testing.T) {
		ctx := testutil.NewMockServerContext()
		rootURI := "file:///workspace/site"

		_, _ = initialize(t, ctx, &protocol.InitializeParams{RootURI: &rootURI})

		assert.Equal(t, rootURI, ctx.RootURI())
		assert.Equal(t, "/workspace/site", ctx.RootPath())
	})

	t.Run("with root URI on windows", func(t *testing.T) {
		ctx := testutil.NewMockServerContext()
		ctx.SetPlatform(platform.Windows)
		rootURI := "file:///C:/Users/dev/site"

		_, _ = initialize(t, ctx, &protocol.InitializeParams{RootURI: &rootURI})

		assert.Equal(t, `C:\Users\dev\site`, ctx.RootPath())
	})

	t.Run("with root path only", func(t *testing.T) {
		ctx := testutil.NewMockServerContext()
		rootPath := "/workspace/site"

		_, _ = initialize(t, ctx, &protocol.InitializeParams{RootPath: &rootPath})

		assert.Equal(t, rootPath, ctx.RootPath())
		assert.Equal(t, "file:///workspace/site", ctx.RootURI())
	})

	t.Run("with workspace folders only", func(t *testing.T) {
		ctx := testutil.NewMockServerContext()

		_, _ = initialize(t, ctx, &protocol.InitializeParams{
			WorkspaceFolders: []protocol.WorkspaceFolder{
				{URI: "file:///first", Name: "first"},
				{URI: "file:///second", Name: "second"},
			},
		})

		assert.Equal(t, "/first", ctx.RootPath())
	})

	t.Run("without workspace", func(t *testing.T) {
		ctx := testutil.NewMockServerContext()
		empty := ""

		_, _ = initialize(t, ctx, &protocol.InitializeParams{RootURI: &empty})

		assert.Empty(t, ctx.RootPath())
		assert.Empty(t, ctx.RootURI())
	})

	t.Run("with client info", func(t *testing.T) {
		ctx := testutil.NewMockServerContext()
		params := &protocol.InitializeParams{}
		params.ClientInfo = &struct {
			Name    string  `json:"name"`
			Version *string `json:"version,omitempty"`
		}{Name: "test-client"}

		_, result := initialize(t, ctx, params)
		require.NotNil(t, result.ServerInfo)
		assert.Equal(t, "live-server-ls", result.ServerInfo.Name)
		assert.NotNil(t, result.ServerInfo.Version)
	})

	t.Run("advertises commands and document sync", func(t *testing.T) {
		ctx := testutil.NewMockServerContext()

		_, result := initialize(t, ctx, &protocol.InitializeParams{})

		require.NotNil(t, result.Capabilities.ExecuteCommandProvider)
		assert.Equal(t,
			[]string{"liveServer.goLive", "liveServer.goOffline", "liveServer.status"},
			result.Capabilities.ExecuteCommandProvider.Commands)

		sync, ok := result.Capabilities.TextDocumentSync.(protocol.TextDocumentSyncOptions)
		require.True(t, ok)
		require.NotNil(t, sync.OpenClose)
		assert.True(t, *sync.OpenClose)
		require.NotNil(t, sync.Change)
		assert.Equal(t, protocol.TextDocumentSyncKindFull, *sync.Change)
	})

	t.Run("initialization options become editor settings", func(t *testing.T) {
		ctx := testutil.NewMockServerContext()

		req, _ := initialize(t, ctx, &protocol.InitializeParams{
			InitializationOptions: map[string]any{
				"liveServer.settings": map[string]any{"port": 3000, "NoBrowser": true},
			},
		})

		assert.False(t, req.HasWarnings())
		assert.Equal(t, 3000, ctx.Settings().Port)
		assert.True(t, ctx.Settings().NoBrowser)
	})

	t.Run("invalid initialization options are a warning", func(t *testing.T) {
		ctx := testutil.NewMockServerContext()

		req, _ := initialize(t, ctx, &protocol.InitializeParams{InitializationOptions: []any{"nope"}})

		assert.True(t, req.HasWarnings())
		assert.Empty(t, ctx.EditorSettings)
	})
}
