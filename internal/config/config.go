// Package config holds live server settings and loads them from editor
// settings and workspace configuration files.
package config

// Settings configures a go-live session
type Settings struct {
	// Port to listen on; 0 picks an ephemeral port
	Port int `json:"port"`
	// Root is the virtual-root suffix, relative to the workspace, to serve from
	Root string `json:"root"`
	// Ignore lists workspace-relative paths or globs excluded from change detection
	Ignore []string `json:"ignore"`
	// NoBrowser disables opening a browser after the server starts
	NoBrowser bool `json:"noBrowser"`
	// CustomBrowser names the browser to open ("chrome", "firefox", ...)
	CustomBrowser string `json:"customBrowser"`
	// AdvancedBrowserCmdline is a full browser command line, e.g.
	// "chrome --incognito"; it wins over CustomBrowser
	AdvancedBrowserCmdline string `json:"advancedBrowserCmdline"`
	// ChromeDebuggingAttachment opens Chrome with a remote debugging port
	ChromeDebuggingAttachment bool `json:"chromeDebuggingAttachment"`
	// Host is the address used in browser URLs
	Host string `json:"host"`
	// LogLevel is one of debug, info, warn, error
	LogLevel string `json:"logLevel"`
}

// DefaultPort is the port used when none is configured
const DefaultPort = 5500

// DefaultBrowserHost is the host browser URLs point at
const DefaultBrowserHost = "127.0.0.1"

// DefaultSettings returns the default settings
func DefaultSettings() Settings {
	return Settings{
		Port:     DefaultPort,
		Root:     "",
		Ignore:   []string{},
		Host:     DefaultBrowserHost,
		LogLevel: "info",
	}
}

// Overrides is a partial Settings; nil fields leave the base value untouched.
// It is the decoding target for every configuration source.
type Overrides struct {
	Port                      *int     `json:"port,omitempty"`
	Root                      *string  `json:"root,omitempty"`
	Ignore                    []string `json:"ignore,omitempty"`
	NoBrowser                 *bool    `json:"noBrowser,omitempty"`
	CustomBrowser             *string  `json:"customBrowser,omitempty"`
	AdvancedBrowserCmdline    *string  `json:"advancedBrowserCmdline,omitempty"`
	ChromeDebuggingAttachment *bool    `json:"chromeDebuggingAttachment,omitempty"`
	Host                      *string  `json:"host,omitempty"`
	LogLevel                  *string  `json:"logLevel,omitempty"`
}

// Apply returns s with every non-nil field of o applied
func (s Settings) Apply(o Overrides) Settings {
	if o.Port != nil {
		s.Port = *o.Port
	}
	if o.Root != nil {
		s.Root = *o.Root
	}
	if o.Ignore != nil {
		s.Ignore = append([]string{}, o.Ignore...)
	}
	if o.NoBrowser != nil {
		s.NoBrowser = *o.NoBrowser
	}
	if o.CustomBrowser != nil {
		s.CustomBrowser = *o.CustomBrowser
	}
	if o.AdvancedBrowserCmdline != nil {
		s.AdvancedBrowserCmdline = *o.AdvancedBrowserCmdline
	}
	if o.ChromeDebuggingAttachment != nil {
		s.ChromeDebuggingAttachment = *o.ChromeDebuggingAttachment
	}
	if o.Host != nil {
		s.Host = *o.Host
	}
	if o.LogLevel != nil {
		s.LogLevel = *o.LogLevel
	}
	return s
}

// Merge layers b over a
func (a Overrides) Merge(b Overrides) Overrides {
	if b.Port != nil {
		a.Port = b.Port
	}
	if b.Root != nil {
		a.Root = b.Root
	}
	if b.Ignore != nil {
		a.Ignore = b.Ignore
	}
	if b.NoBrowser != nil {
		a.NoBrowser = b.NoBrowser
	}
	if b.CustomBrowser != nil {
		a.CustomBrowser = b.CustomBrowser
	}
	if b.AdvancedBrowserCmdline != nil {
		a.AdvancedBrowserCmdline = b.AdvancedBrowserCmdline
	}
	if b.ChromeDebuggingAttachment != nil {
		a.ChromeDebuggingAttachment = b.ChromeDebuggingAttachment
	}
	if b.Host != nil {
		a.Host = b.Host
	}
	if b.LogLevel != nil {
		a.LogLevel = b.LogLevel
	}
	return a
}

// IsEmpty reports whether no field is set
func (a Overrides) IsEmpty() bool {
	return a.Port == nil && a.Root == nil && a.Ignore == nil && a.NoBrowser == nil &&
		a.CustomBrowser == nil && a.AdvancedBrowserCmdline == nil &&
		a.ChromeDebuggingAttachment == nil && a.Host == nil && a.LogLevel == nil
}
