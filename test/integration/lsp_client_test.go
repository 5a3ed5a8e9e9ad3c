package integration_test

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"bennypowers.dev/livesrv/lsp/types"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// rpcError is a JSON-RPC error object
type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("jsonrpc2 error %d: %s", e.Code, e.Message)
}

// message is any JSON-RPC message the server sends
type message struct {
	ID     *int            `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

// notification is a server-to-client notification
type notification struct {
	Method string
	Params json.RawMessage
}

// LSPClient is a test client that talks to a language server over WebSocket
type LSPClient struct {
	conn          *websocket.Conn
	writeMu       sync.Mutex
	mu            sync.Mutex
	msgID         int
	responses     map[int]chan message
	notifications []notification
	serverCalls   []string
	done          chan struct{}
	t             *testing.T
}

// NewLSPClient dials the WebSocket address of a language server
func NewLSPClient(t *testing.T, address string) *LSPClient {
	t.Helper()

	conn, resp, err := websocket.DefaultDialer.Dial(address, nil)
	require.NoError(t, err, "Failed to connect to server")
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	client := &LSPClient{
		conn:      conn,
		responses: make(map[int]chan message),
		done:      make(chan struct{}),
		t:         t,
	}

	go client.readMessages()
	t.Cleanup(client.Close)

	return client
}

// Close drops the connection and waits for the read loop to exit
func (c *LSPClient) Close() {
	c.conn.Close()
	<-c.done
}

// sendRequest sends a JSON-RPC request and returns the message ID
func (c *LSPClient) sendRequest(method string, params any) int {
	c.mu.Lock()
	c.msgID++
	id := c.msgID
	c.responses[id] = make(chan message, 1)
	c.mu.Unlock()

	c.send(map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  method,
		"params":  params,
	})
	return id
}

// sendNotification sends a JSON-RPC notification (no response expected)
func (c *LSPClient) sendNotification(method string, params any) {
	c.send(map[string]any{
		"jsonrpc": "2.0",
		"method":  method,
		"params":  params,
	})
}

func (c *LSPClient) send(msg any) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	require.NoError(c.t, c.conn.WriteJSON(msg))
}

// Request sends a request and decodes its result into result, which may be nil
func (c *LSPClient) Request(method string, params any, result any) error {
	id := c.sendRequest(method, params)

	c.mu.Lock()
	ch := c.responses[id]
	c.mu.Unlock()

	select {
	case msg := <-ch:
		if msg.Error != nil {
			return msg.Error
		}
		if result == nil || len(msg.Result) == 0 || string(msg.Result) == "null" {
			return nil
		}
		return json.Unmarshal(msg.Result, result)
	case <-time.After(5 * time.Second):
		return fmt.Errorf("timeout waiting for response to %s", method)
	}
}

// readMessages routes responses, records notifications and answers server
// requests such as client/registerCapability
func (c *LSPClient) readMessages() {
	defer close(c.done)
	for {
		var msg message
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		switch {
		case msg.Method != "" && msg.ID != nil:
			c.mu.Lock()
			c.serverCalls = append(c.serverCalls, msg.Method)
			c.mu.Unlock()
			c.writeMu.Lock()
			_ = c.conn.WriteJSON(map[string]any{"jsonrpc": "2.0", "id": *msg.ID, "result": nil})
			c.writeMu.Unlock()

		case msg.Method != "":
			c.mu.Lock()
			c.notifications = append(c.notifications, notification{Method: msg.Method, Params: msg.Params})
			c.mu.Unlock()

		case msg.ID != nil:
			c.mu.Lock()
			if ch, ok := c.responses[*msg.ID]; ok {
				ch <- msg
			}
			c.mu.Unlock()
		}
	}
}

// InitializeResult is the subset of the initialize response the tests inspect
type InitializeResult struct {
	Capabilities struct {
		ExecuteCommandProvider *struct {
			Commands []string `json:"commands"`
		} `json:"executeCommandProvider"`
	} `json:"capabilities"`
	ServerInfo *struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	} `json:"serverInfo"`
}

// Initialize runs the initialize handshake for a workspace folder
func (c *LSPClient) Initialize(rootURI string, initializationOptions any) InitializeResult {
	var result InitializeResult
	err := c.Request("initialize", map[string]any{
		"processId":             nil,
		"rootUri":               rootURI,
		"initializationOptions": initializationOptions,
		"capabilities": map[string]any{
			"workspace": map[string]any{
				"didChangeWatchedFiles": map[string]any{"dynamicRegistration": true},
			},
		},
	}, &result)
	require.NoError(c.t, err)

	c.sendNotification("initialized", map[string]any{})
	return result
}

// Shutdown sends the shutdown request
func (c *LSPClient) Shutdown() error {
	return c.Request("shutdown", nil, nil)
}

// DidOpen sends a didOpen notification
func (c *LSPClient) DidOpen(uri, languageID, text string) {
	c.sendNotification("textDocument/didOpen", map[string]any{
		"textDocument": map[string]any{
			"uri":        uri,
			"languageId": languageID,
			"version":    1,
			"text":       text,
		},
	})
}

// GoLive sends liveServer/goLive
func (c *LSPClient) GoLive(uri string) (types.ServerStatus, error) {
	var status types.ServerStatus
	var params any
	if uri != "" {
		params = types.GoLiveParams{URI: uri}
	}
	err := c.Request(types.MethodGoLive, params, &status)
	return status, err
}

// GoOffline sends liveServer/goOffline
func (c *LSPClient) GoOffline() (types.ServerStatus, error) {
	var status types.ServerStatus
	err := c.Request(types.MethodGoOffline, nil, &status)
	return status, err
}

// ExecuteCommand sends workspace/executeCommand
func (c *LSPClient) ExecuteCommand(command string, args ...any) (json.RawMessage, error) {
	var result json.RawMessage
	err := c.Request("workspace/executeCommand", map[string]any{
		"command":   command,
		"arguments": args,
	}, &result)
	return result, err
}

// Statuses returns the liveServer/status notifications received so far
func (c *LSPClient) Statuses() []types.StatusParams {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []types.StatusParams
	for _, n := range c.notifications {
		if n.Method != types.MethodStatus {
			continue
		}
		var s types.StatusParams
		if err := json.Unmarshal(n.Params, &s); err == nil {
			out = append(out, s)
		}
	}
	return out
}

// Messages returns the text of window/showMessage notifications received so far
func (c *LSPClient) Messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []string
	for _, n := range c.notifications {
		if n.Method != protocol.ServerWindowShowMessage {
			continue
		}
		var p protocol.ShowMessageParams
		if err := json.Unmarshal(n.Params, &p); err == nil {
			out = append(out, p.Message)
		}
	}
	return out
}

// ServerCalls returns the methods of requests the server sent to the client
func (c *LSPClient) ServerCalls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.serverCalls...)
}
