// Package live sequences go-live and go-offline requests: it resolves what to
// serve, drives the server session, opens the browser and reports progress.
// Every side effect is delegated to a collaborator.
package live

import (
	"context"
	"errors"
	"fmt"

	"bennypowers.dev/livesrv/internal/browser"
	"bennypowers.dev/livesrv/internal/config"
	"bennypowers.dev/livesrv/internal/log"
	"bennypowers.dev/livesrv/internal/platform"
	"bennypowers.dev/livesrv/internal/resolver"
	"bennypowers.dev/livesrv/internal/session"
	"bennypowers.dev/livesrv/internal/staticserver"
)

// Commands understood by the coordinator's front ends
const (
	CommandGoLive    = "liveServer.goLive"
	CommandGoOffline = "liveServer.goOffline"
	CommandStatus    = "liveServer.status"
)

// Reporter shows messages and status to the user
type Reporter interface {
	ShowInfo(message string)
	ShowError(message string)
	SetStatus(status Status)
}

// BrowserOpener opens a URL, optionally in a specific application
type BrowserOpener interface {
	Open(ctx context.Context, url string, appArgs []string) error
}

// GoLiveRequest is the editor state and settings for one go-live command
type GoLiveRequest struct {
	WorkspaceRoot  string
	ActiveDocument string
	Settings       config.Settings
}

// GoLiveResult describes a started server
type GoLiveResult struct {
	Port     int
	URL      string
	Resolved resolver.ResolvedRoot
	// Warnings holds non-fatal problems, e.g. *VirtualRootError
	Warnings []error
}

// Coordinator owns the server session of one editor connection
type Coordinator struct {
	session  *session.Session
	browser  BrowserOpener
	reporter Reporter
	exists   resolver.ExistsFunc
	platform platform.Platform
	goos     string
}

// Option customizes a Coordinator
type Option func(*Coordinator)

// WithPlatform overrides the path convention and GOOS used for browsers
func WithPlatform(p platform.Platform, goos string) Option {
	return func(c *Coordinator) {
		c.platform = p
		c.goos = goos
	}
}

// WithExists overrides the filesystem existence check
func WithExists(exists resolver.ExistsFunc) Option {
	return func(c *Coordinator) {
		c.exists = exists
	}
}

// NewCoordinator creates a coordinator around an Offline session
func NewCoordinator(s *session.Session, opener BrowserOpener, reporter Reporter, goos string, opts ...Option) *Coordinator {
	c := &Coordinator{
		session:  s,
		browser:  opener,
		reporter: reporter,
		exists:   resolver.PathExists,
		platform: platform.FromGOOS(goos),
		goos:     goos,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns the owned session
func (c *Coordinator) Session() *session.Session {
	return c.session
}

// Init shows the idle status once the workspace is known to contain HTML
func (c *Coordinator) Init(settings config.Settings) {
	if port, ok := c.session.CurrentPort(); ok {
		c.reporter.SetStatus(Live(port))
		return
	}
	c.reporter.SetStatus(Offline(settings.Port))
}

// GoLive starts serving the workspace of req and opens the browser.
// Every failure is reported to the user before it is returned; a browser
// failure is returned alongside a non-nil result because the server keeps
// running.
func (c *Coordinator) GoLive(ctx context.Context, req GoLiveRequest) (*GoLiveResult, error) {
	settings := req.Settings

	resolved, ok := resolver.Resolve(resolver.WorkspaceContext{
		WorkspaceRoot:  req.WorkspaceRoot,
		ActiveDocument: req.ActiveDocument,
		VirtualRoot:    settings.Root,
		Platform:       c.platform,
	}, c.exists)
	if !ok {
		c.reporter.ShowInfo("Open Document...")
		return nil, ErrNoActiveDocument
	}

	result := &GoLiveResult{Resolved: resolved}

	if resolved.HadVirtualRootError {
		warning := &VirtualRootError{Root: settings.Root, Fallback: resolved.RootPath}
		log.Warn("%v", warning)
		c.reporter.ShowError("Invalid path in liveServer.settings.root. Live Server starts from workspace root")
		result.Warnings = append(result.Warnings, warning)
	}

	ignoreBase := resolved.WorkspacePath
	if ignoreBase == "" {
		ignoreBase = c.platform.TrimTrailingSeparator(resolved.RootPath)
	}

	c.reporter.SetStatus(Working("Starting..."))
	port, err := c.session.Start(ctx, staticserver.Config{
		Host:   staticserver.DefaultHost,
		Port:   settings.Port,
		Root:   resolved.RootPath,
		Ignore: IgnorePatterns(settings.Ignore, ignoreBase, c.platform),
	})

	var alreadyRunning *session.AlreadyRunningError
	switch {
	case errors.As(err, &alreadyRunning):
		c.reporter.ShowInfo(fmt.Sprintf("Server is already running at port %d ...", alreadyRunning.Port))
		c.reporter.SetStatus(Live(alreadyRunning.Port))
		return nil, err
	case err != nil:
		log.Error("%v", err)
		c.reporter.ShowError(fmt.Sprintf("Error to open server at port %d.", settings.Port))
		c.reporter.SetStatus(Offline(settings.Port))
		return nil, err
	}

	result.Port = port
	c.reporter.SetStatus(Live(port))
	c.reporter.ShowInfo(fmt.Sprintf("Server is Started at port : %d", port))

	host := settings.Host
	if host == "" {
		host = config.DefaultBrowserHost
	}
	result.URL = browser.URL(host, port, resolved.RelativeOpenPath)

	if settings.NoBrowser {
		return result, nil
	}

	appArgs := browser.AppArgs(browser.Options{
		CustomBrowser:   settings.CustomBrowser,
		AdvancedCmdline: settings.AdvancedBrowserCmdline,
		ChromeDebugging: settings.ChromeDebuggingAttachment,
		GOOS:            c.goos,
	}, result.URL)

	if err := c.browser.Open(ctx, result.URL, appArgs); err != nil {
		launchErr := &BrowserLaunchError{URL: result.URL, Err: err}
		log.Error("Error Log to open Browser: %v", err)
		c.reporter.ShowError("Error to open browser. See error on console")
		return result, launchErr
	}

	return result, nil
}

// GoOffline stops the running server.
// Returns ErrNotRunning, after telling the user, when nothing is running.
func (c *Coordinator) GoOffline(ctx context.Context, settings config.Settings) error {
	if !c.session.IsRunning() {
		c.reporter.ShowInfo("Server is not already running")
		return ErrNotRunning
	}

	c.reporter.SetStatus(Working("Disposing..."))
	err := c.session.Stop(ctx)
	c.reporter.SetStatus(Offline(settings.Port))

	switch {
	case errors.Is(err, session.ErrNotRunning):
		c.reporter.ShowInfo("Server is not already running")
		return err
	case err != nil:
		log.Error("%v", err)
		c.reporter.ShowError("Server stopped with an error. See error on console")
		return err
	}

	c.reporter.ShowInfo("Server is now offline.")
	return nil
}

// IgnorePatterns makes each configured pattern absolute under base: a
// separator is prefixed unless the pattern already starts with one, then the
// base path.
func IgnorePatterns(patterns []string, base string, p platform.Platform) []string {
	out := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		out = append(out, p.TrimTrailingSeparator(base)+p.EnsureLeadingSeparator(pattern))
	}
	return out
}
