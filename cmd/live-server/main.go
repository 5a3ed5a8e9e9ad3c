// Command live-server serves a folder over HTTP from the terminal and opens it
// in a browser, using the same settings files as the language server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"bennypowers.dev/livesrv/internal/browser"
	"bennypowers.dev/livesrv/internal/config"
	"bennypowers.dev/livesrv/internal/live"
	"bennypowers.dev/livesrv/internal/log"
	"bennypowers.dev/livesrv/internal/session"
	"bennypowers.dev/livesrv/internal/staticserver"
	"bennypowers.dev/livesrv/internal/version"
	"github.com/fatih/color"
)

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if opts.version {
		fmt.Println(version.Current())
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reporter := newConsoleReporter(color.Output)
	coordinator := live.NewCoordinator(
		session.New(staticserver.New()),
		browser.NewLauncher(runtime.GOOS),
		reporter,
		runtime.GOOS,
	)

	if err := run(ctx, opts, coordinator, reporter); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
}

// run goes live, waits for ctx to be cancelled, then goes offline
func run(ctx context.Context, opts options, coordinator *live.Coordinator, reporter *consoleReporter) error {
	workspace, err := filepath.Abs(opts.workspace)
	if err != nil {
		return fmt.Errorf("failed to resolve workspace %q: %w", opts.workspace, err)
	}

	settings := loadSettings(workspace, opts.overrides)

	result, err := coordinator.GoLive(ctx, live.GoLiveRequest{
		WorkspaceRoot:  workspace,
		ActiveDocument: documentPath(workspace, opts.file),
		Settings:       settings,
	})
	var launchErr *live.BrowserLaunchError
	switch {
	case errors.As(err, &launchErr):
		log.Warn("%v", err)
	case err != nil:
		return err
	}

	reporter.serving(result.URL)
	<-ctx.Done()

	// The signal context is done; stopping gets a fresh one
	if err := coordinator.GoOffline(context.Background(), settings); err != nil {
		return fmt.Errorf("failed to stop live server: %w", err)
	}
	return nil
}

// loadSettings layers flags over workspace files over defaults
func loadSettings(workspace string, flags config.Overrides) config.Settings {
	files, _, err := config.LoadWorkspace(workspace)
	if err != nil {
		log.Warn("Failed to read workspace configuration: %v", err)
	}

	settings := config.DefaultSettings().Apply(files).Apply(flags)

	level, ok := log.ParseLevel(settings.LogLevel)
	if !ok {
		log.Warn("Unknown log level %q, using info", settings.LogLevel)
	}
	log.SetLevel(level)

	return settings
}

// documentPath is the page to open. Relative files are taken from the
// workspace; without a file the workspace index.html is opened.
func documentPath(workspace, file string) string {
	if file == "" {
		return filepath.Join(workspace, "index.html")
	}
	if filepath.IsAbs(file) {
		return filepath.Clean(file)
	}
	return filepath.Join(workspace, file)
}
