package types

import "bennypowers.dev/livesrv/internal/live"

// ServerName is reported in serverInfo
const ServerName = "live-server-ls"

// Custom protocol methods
const (
	// MethodStatus is the notification carrying the status indicator state
	MethodStatus = "liveServer/status"
	// MethodGoLive starts the server, like the liveServer.goLive command
	MethodGoLive = "liveServer/goLive"
	// MethodGoOffline stops the server, like the liveServer.goOffline command
	MethodGoOffline = "liveServer/goOffline"
)

// StatusParams is the payload of a liveServer/status notification
type StatusParams struct {
	// State is one of "offline", "working" or "live"
	State   string `json:"state"`
	Text    string `json:"text"`
	Tooltip string `json:"tooltip,omitempty"`
	// Command runs when the indicator is clicked
	Command string `json:"command,omitempty"`
	Port    int    `json:"port,omitempty"`
}

// NewStatusParams renders a status for the client
func NewStatusParams(s live.Status) StatusParams {
	return StatusParams{
		State:   s.Kind.String(),
		Text:    s.Text(),
		Tooltip: s.Tooltip(),
		Command: s.Command(),
		Port:    s.Port,
	}
}

// GoLiveParams are the params of liveServer/goLive.
// URI selects the document to serve; empty means the active document.
type GoLiveParams struct {
	URI string `json:"uri,omitempty"`
}

// ServerStatus answers liveServer.status and the go-live/go-offline requests
type ServerStatus struct {
	Running bool   `json:"running"`
	Port    int    `json:"port,omitempty"`
	URL     string `json:"url,omitempty"`
}
