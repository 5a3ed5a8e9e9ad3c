package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"bennypowers.dev/livesrv/internal/config"
)

// options is the parsed command line
type options struct {
	workspace string
	file      string
	version   bool
	// overrides holds only the flags given explicitly, so they layer over
	// workspace configuration files without resetting them
	overrides config.Overrides
}

// stringList collects a repeatable flag
type stringList []string

func (l *stringList) String() string {
	return strings.Join(*l, ",")
}

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

func parseFlags(args []string, output io.Writer) (options, error) {
	fs := flag.NewFlagSet("live-server", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: live-server [flags] [file]\n\n")
		fmt.Fprintf(fs.Output(), "Serves a folder over HTTP and opens it in a browser.\n\nFlags:\n")
		fs.PrintDefaults()
	}

	var opts options
	var ignore stringList
	fs.StringVar(&opts.workspace, "workspace", ".", "Workspace folder to serve")
	fs.BoolVar(&opts.version, "version", false, "Print version information and exit")
	port := fs.Int("port", config.DefaultPort, "Port to listen on (0 picks a free port)")
	root := fs.String("root", "", "Subfolder of the workspace to serve, e.g. /public")
	host := fs.String("host", config.DefaultBrowserHost, "Host used in the browser URL")
	noBrowser := fs.Bool("no-browser", false, "Do not open a browser")
	browserName := fs.String("browser", "", "Browser to open (chrome, firefox, microsoft-edge, ...)")
	browserCmd := fs.String("browser-cmdline", "", "Full browser command line, e.g. \"chrome --incognito\"")
	chromeDebug := fs.Bool("chrome-debugging", false, "Open Chrome with remote debugging on port 9222")
	logLevel := fs.String("log-level", "info", "Log level: debug, info, warn, error")
	fs.Var(&ignore, "ignore", "Workspace-relative path or glob excluded from change detection (repeatable)")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	switch fs.NArg() {
	case 0:
	case 1:
		opts.file = fs.Arg(0)
	default:
		return options{}, fmt.Errorf("expected at most one file, got %d", fs.NArg())
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			opts.overrides.Port = port
		case "root":
			opts.overrides.Root = root
		case "host":
			opts.overrides.Host = host
		case "no-browser":
			opts.overrides.NoBrowser = noBrowser
		case "browser":
			opts.overrides.CustomBrowser = browserName
		case "browser-cmdline":
			opts.overrides.AdvancedBrowserCmdline = browserCmd
		case "chrome-debugging":
			opts.overrides.ChromeDebuggingAttachment = chromeDebug
		case "log-level":
			opts.overrides.LogLevel = logLevel
		case "ignore":
			opts.overrides.Ignore = ignore
		}
	})

	return opts, nil
}
