// Command live-server-ls is a language server that lets editors start and
// stop a live server for the open workspace.
package main

import (
	"flag"
	"fmt"
	"os"

	"bennypowers.dev/livesrv/internal/log"
	"bennypowers.dev/livesrv/internal/version"
	"bennypowers.dev/livesrv/lsp"
)

func main() {
	showVersion := flag.Bool("version", false, "Print version information and exit")
	// Editors commonly pass --stdio; it is the default transport
	flag.Bool("stdio", true, "Communicate over stdin/stdout")
	tcp := flag.String("tcp", "", "Listen for TCP connections on this address instead of stdio")
	ws := flag.String("websocket", "", "Listen for WebSocket connections on this address instead of stdio")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.Current())
		return
	}

	server, err := lsp.NewServer()
	if err != nil {
		log.Error("Failed to create LSP server: %v", err)
		os.Exit(1)
	}

	log.Info("Starting live-server-ls %s", version.GetVersion())

	switch {
	case *tcp != "":
		err = server.RunTCP(*tcp)
	case *ws != "":
		err = server.RunWebSocket(*ws)
	default:
		err = server.RunStdio()
	}

	if closeErr := server.Close(); closeErr != nil {
		log.Warn("Failed to stop live server: %v", closeErr)
	}
	if err != nil {
		log.Error("Server error: %v", err)
		os.Exit(1)
	}
}
