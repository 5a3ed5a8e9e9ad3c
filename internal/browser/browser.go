// Package browser builds the URL and application command line for the page
// a go-live session should open, and launches it.
package browser

import (
	"context"
	"fmt"
	"strings"

	"bennypowers.dev/livesrv/internal/log"
	clibrowser "github.com/cli/browser"
)

// ChromeDebuggingPort is the remote debugging port passed to Chrome when
// debugger attachment is enabled
const ChromeDebuggingPort = 9222

// Options selects which browser opens the page
type Options struct {
	// CustomBrowser names a browser ("chrome", "firefox", "microsoft-edge").
	// Empty or "null" means the system default.
	CustomBrowser string
	// AdvancedCmdline is a full space-separated command line and wins over
	// CustomBrowser when set
	AdvancedCmdline string
	// ChromeDebugging adds --remote-debugging-port when CustomBrowser is chrome
	ChromeDebugging bool
	// GOOS selects platform-specific executable names
	GOOS string
}

// URL returns the page address for host:port and a path relative to the
// served root, in either separator style
func URL(host string, port int, path string) string {
	if strings.HasPrefix(path, "/") || strings.HasPrefix(path, `\`) {
		path = path[1:]
	}
	path = strings.ReplaceAll(path, `\`, "/")
	return fmt.Sprintf("http://%s:%d/%s", host, port, path)
}

// AppArgs returns the application and its arguments for opts.
// An empty result means "use the system default browser".
func AppArgs(opts Options, url string) []string {
	var args []string

	if opts.AdvancedCmdline != "" {
		for _, part := range strings.Split(opts.AdvancedCmdline, " ") {
			if part != "" {
				args = append(args, part)
			}
		}
	} else if opts.CustomBrowser != "" && opts.CustomBrowser != "null" {
		args = append(args, opts.CustomBrowser)
		if opts.CustomBrowser == "chrome" && opts.ChromeDebugging {
			args = append(args, fmt.Sprintf("--remote-debugging-port=%d", ChromeDebuggingPort))
		}
	}

	if len(args) == 0 {
		return nil
	}

	switch {
	case args[0] == "chrome":
		args[0] = chromeExecutable(opts.GOOS)
	case strings.HasPrefix(args[0], "microsoft-edge"):
		args[0] = "microsoft-edge:" + url
	}
	return args
}

func chromeExecutable(goos string) string {
	switch goos {
	case "darwin":
		return "google chrome"
	case "linux":
		return "google-chrome"
	default:
		return "chrome"
	}
}

// Runner starts an external command without waiting for it to exit
type Runner func(ctx context.Context, name string, args ...string) error

// Launcher opens URLs in a browser
type Launcher struct {
	goos string
	// openDefault opens url in the system default browser
	openDefault func(url string) error
	run         Runner
}

// NewLauncher creates a Launcher for the given GOOS
func NewLauncher(goos string) *Launcher {
	return &Launcher{
		goos:        goos,
		openDefault: clibrowser.OpenURL,
		run:         startCommand,
	}
}

// WithRunner replaces how explicit browser applications are started
func (l *Launcher) WithRunner(run Runner, openDefault func(string) error) *Launcher {
	l.run = run
	l.openDefault = openDefault
	return l
}

// Open opens url with the application described by appArgs, or the default
// browser when appArgs is empty
func (l *Launcher) Open(ctx context.Context, url string, appArgs []string) error {
	if len(appArgs) == 0 {
		log.Debug("Opening %s in default browser", url)
		return l.openDefault(url)
	}

	// The edge protocol handler already carries the URL
	if strings.HasPrefix(appArgs[0], "microsoft-edge:") {
		return l.openDefault(appArgs[0])
	}

	name, args := l.appCommand(appArgs, url)
	log.Debug("Opening %s with %s %v", url, name, args)
	return l.run(ctx, name, args...)
}

// appCommand builds the platform command that opens url in a named app
func (l *Launcher) appCommand(appArgs []string, url string) (string, []string) {
	app, extra := appArgs[0], appArgs[1:]
	switch l.goos {
	case "darwin":
		args := []string{"-a", app, url}
		if len(extra) > 0 {
			args = append(args, "--args")
			args = append(args, extra...)
		}
		return "open", args
	case "windows":
		args := []string{"/c", "start", `""`, app, url}
		return "cmd", append(args, extra...)
	default:
		return app, append(append([]string{}, extra...), url)
	}
}

// startCommand detaches the browser from ctx so it outlives the request
func startCommand(ctx context.Context, name string, args ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cmd := newCommand(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			log.Debug("Browser process %s exited: %v", name, err)
		}
	}()
	return nil
}

// cmdLine renders a command line for cmd.exe, which parses its own arguments.
// An empty start title ("") is passed through verbatim; arguments holding
// spaces are quoted.
func cmdLine(name string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	for _, a := range append([]string{name}, args...) {
		if a != `""` && strings.ContainsAny(a, " \t") {
			a = `"` + a + `"`
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}
