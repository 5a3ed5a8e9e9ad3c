package integration_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"bennypowers.dev/livesrv/internal/live"
	"bennypowers.dev/livesrv/lsp/types"
	"bennypowers.dev/livesrv/test/integration/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const indexHTML = "<!doctype html><html><body>hello live server</body></html>"

func connect(t *testing.T) *LSPClient {
	t.Helper()
	server := testutil.NewTestServer(t)
	return NewLSPClient(t, testutil.ServeWebSocket(t, server))
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url) //nolint:gosec // G107: test server URL
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func hasStatus(c *LSPClient, state string) bool {
	for _, s := range c.Statuses() {
		if s.State == state {
			return true
		}
	}
	return false
}

func TestInitialize_AdvertisesCommands(t *testing.T) {
	root := testutil.NewSite(t, map[string]string{"index.html": indexHTML})
	client := connect(t)

	result := client.Initialize(testutil.FileURI(root, ""), nil)

	require.NotNil(t, result.ServerInfo)
	assert.Equal(t, types.ServerName, result.ServerInfo.Name)
	require.NotNil(t, result.Capabilities.ExecuteCommandProvider)
	commands := result.Capabilities.ExecuteCommandProvider.Commands
	assert.Contains(t, commands, live.CommandGoLive)
	assert.Contains(t, commands, live.CommandGoOffline)

	// A workspace with HTML shows the idle indicator
	require.Eventually(t, func() bool { return hasStatus(client, "offline") }, 5*time.Second, 10*time.Millisecond)

	// Configuration files are watched through the client
	require.Eventually(t, func() bool {
		for _, m := range client.ServerCalls() {
			if m == "client/registerCapability" {
				return true
			}
		}
		return false
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, client.Shutdown())
}

func TestGoLive_ServesWorkspace(t *testing.T) {
	root := testutil.NewSite(t, map[string]string{
		"index.html":               indexHTML,
		"styles/site.scss":         "body { color: red; }",
		"styles/site.css":          "body { color: red; }",
		".config/live-server.yaml": "port: 0\nnoBrowser: true\nignore:\n  - \"**/*.scss\"\n",
	})
	client := connect(t)
	client.Initialize(testutil.FileURI(root, ""), nil)

	indexURI := testutil.FileURI(root, "index.html")
	client.DidOpen(indexURI, "html", indexHTML)

	status, err := client.GoLive(indexURI)
	require.NoError(t, err)
	require.True(t, status.Running)
	require.NotZero(t, status.Port)
	assert.Equal(t, fmt.Sprintf("http://127.0.0.1:%d/index.html", status.Port), status.URL)

	code, body := get(t, status.URL)
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "hello live server")

	code, _ = get(t, fmt.Sprintf("http://127.0.0.1:%d/styles/site.css", status.Port))
	assert.Equal(t, http.StatusOK, code)

	code, _ = get(t, fmt.Sprintf("http://127.0.0.1:%d/styles/site.scss", status.Port))
	assert.Equal(t, http.StatusOK, code, "ignored files are still served")

	assert.Contains(t, client.Messages(), fmt.Sprintf("Server is Started at port : %d", status.Port))
	require.Eventually(t, func() bool { return hasStatus(client, "live") }, 5*time.Second, 10*time.Millisecond)

	// Going live twice reports the running server
	again, err := client.GoLive(indexURI)
	require.NoError(t, err)
	assert.Equal(t, status.Port, again.Port)
	assert.Contains(t, client.Messages(), fmt.Sprintf("Server is already running at port %d ...", status.Port))

	raw, err := client.ExecuteCommand(live.CommandStatus)
	require.NoError(t, err)
	var current types.ServerStatus
	require.NoError(t, json.Unmarshal(raw, &current))
	assert.True(t, current.Running)
	assert.Equal(t, status.Port, current.Port)

	offline, err := client.GoOffline()
	require.NoError(t, err)
	assert.False(t, offline.Running)
	assert.Contains(t, client.Messages(), "Server is now offline.")

	require.NoError(t, client.Shutdown())
}

func TestGoLive_ExecuteCommandWithURIArgument(t *testing.T) {
	root := testutil.NewSite(t, map[string]string{
		"public/about.html": indexHTML,
		"package.json":      `{"name": "site", "liveServer": {"settings": {"port": 0, "noBrowser": true, "root": "/public"}}}`,
	})
	client := connect(t)
	client.Initialize(testutil.FileURI(root, ""), nil)

	raw, err := client.ExecuteCommand(live.CommandGoLive, testutil.FileURI(root, "public/about.html"))
	require.NoError(t, err)

	var status types.ServerStatus
	require.NoError(t, json.Unmarshal(raw, &status))
	require.True(t, status.Running)
	assert.Equal(t, fmt.Sprintf("http://127.0.0.1:%d/about.html", status.Port), status.URL)

	code, _ := get(t, status.URL)
	assert.Equal(t, http.StatusOK, code)

	_, err = client.ExecuteCommand(live.CommandGoOffline)
	require.NoError(t, err)
}

func TestGoLive_InitializationOptions(t *testing.T) {
	root := testutil.NewSite(t, map[string]string{"index.html": indexHTML})
	client := connect(t)
	client.Initialize(testutil.FileURI(root, ""), map[string]any{
		"liveServer": map[string]any{"settings": map[string]any{"port": 0, "noBrowser": true}},
	})

	status, err := client.GoLive(testutil.FileURI(root, "index.html"))
	require.NoError(t, err)
	require.True(t, status.Running)
	assert.NotEqual(t, 5500, status.Port)

	_, err = client.GoOffline()
	require.NoError(t, err)
}

func TestGoLive_WithoutDocument(t *testing.T) {
	root := testutil.NewSite(t, map[string]string{"index.html": indexHTML})
	client := connect(t)
	client.Initialize(testutil.FileURI(root, ""), nil)

	status, err := client.GoLive("")
	require.NoError(t, err)
	assert.False(t, status.Running)
	assert.Contains(t, client.Messages(), "Open Document...")
}

func TestGoOffline_WhenNotRunning(t *testing.T) {
	root := testutil.NewSite(t, map[string]string{"index.html": indexHTML})
	client := connect(t)
	client.Initialize(testutil.FileURI(root, ""), nil)

	status, err := client.GoOffline()
	require.NoError(t, err)
	assert.False(t, status.Running)
	assert.Contains(t, client.Messages(), "Server is not already running")
}

func TestRequests_BeforeInitialize(t *testing.T) {
	client := connect(t)

	_, err := client.GoLive("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not initialized")
}

func TestExecuteCommand_Unknown(t *testing.T) {
	root := testutil.NewSite(t, map[string]string{"index.html": indexHTML})
	client := connect(t)
	client.Initialize(testutil.FileURI(root, ""), nil)

	_, err := client.ExecuteCommand("liveServer.reload")
	require.Error(t, err)
}
