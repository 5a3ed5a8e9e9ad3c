package testutil

import (
	"context"
	"sync"

	"bennypowers.dev/livesrv/internal/config"
	"bennypowers.dev/livesrv/internal/documents"
	"bennypowers.dev/livesrv/internal/live"
	"bennypowers.dev/livesrv/internal/platform"
	"bennypowers.dev/livesrv/internal/session"
	"bennypowers.dev/livesrv/internal/staticserver"
	"bennypowers.dev/livesrv/lsp/types"
	"github.com/tliron/glsp"
)

// Verify that MockServerContext implements ServerContext interface
var _ types.ServerContext = (*MockServerContext)(nil)

// MockServerContext implements types.ServerContext for testing.
// Its coordinator drives a FakeStaticServer and a FakeBrowser and reports to
// a RecordingReporter, so handlers can be exercised without sockets.
type MockServerContext struct {
	docs        *documents.Manager
	rootURI     string
	rootPath    string
	platform    platform.Platform
	settings    config.Settings
	glspContext *glsp.Context
	coordinator *live.Coordinator

	StaticServer *FakeStaticServer
	Browser      *FakeBrowser
	Reporter     *RecordingReporter

	// Optional callbacks for custom behavior in tests
	LoadWorkspaceConfigFunc func() error
	RegisterWatchersFunc    func(*glsp.Context) error
	IsConfigFileFunc        func(string) bool

	// Tracking fields for tests that need to verify methods were called
	LoadWorkspaceConfigCalled bool
	RegisterWatchersCalled    bool
	EditorSettings            []config.Overrides
}

// NewMockServerContext creates a new mock server context with default behavior
func NewMockServerContext() *MockServerContext {
	m := &MockServerContext{
		docs:         documents.NewManager(),
		platform:     platform.POSIX,
		settings:     config.DefaultSettings(),
		StaticServer: &FakeStaticServer{EphemeralPort: 54231},
		Browser:      &FakeBrowser{},
		Reporter:     &RecordingReporter{},
	}
	m.coordinator = live.NewCoordinator(
		session.New(m.StaticServer),
		m.Browser,
		m.Reporter,
		"linux",
		live.WithPlatform(platform.POSIX, "linux"),
		live.WithExists(func(string) bool { return true }),
	)
	return m
}

// Document returns the document with the given URI
func (m *MockServerContext) Document(uri string) *documents.Document {
	return m.docs.Get(uri)
}

// DocumentManager returns the document manager
func (m *MockServerContext) DocumentManager() *documents.Manager {
	return m.docs
}

// AllDocuments returns all tracked documents
func (m *MockServerContext) AllDocuments() []*documents.Document {
	return m.docs.GetAll()
}

// RootURI returns the workspace root URI
func (m *MockServerContext) RootURI() string {
	return m.rootURI
}

// RootPath returns the workspace root path
func (m *MockServerContext) RootPath() string {
	return m.rootPath
}

// SetRootURI sets the workspace root URI
func (m *MockServerContext) SetRootURI(uri string) {
	m.rootURI = uri
}

// SetRootPath sets the workspace root path
func (m *MockServerContext) SetRootPath(path string) {
	m.rootPath = path
}

// Platform returns the path convention, POSIX unless SetPlatform was called
func (m *MockServerContext) Platform() platform.Platform {
	return m.platform
}

// SetPlatform changes the path convention
func (m *MockServerContext) SetPlatform(p platform.Platform) {
	m.platform = p
}

// Settings returns the effective settings
func (m *MockServerContext) Settings() config.Settings {
	return m.settings
}

// SetSettings replaces the effective settings
func (m *MockServerContext) SetSettings(s config.Settings) {
	m.settings = s
}

// SetEditorSettings records o and applies it over the defaults
func (m *MockServerContext) SetEditorSettings(o config.Overrides) {
	m.EditorSettings = append(m.EditorSettings, o)
	m.settings = config.DefaultSettings().Apply(o)
}

// LoadWorkspaceConfig records the call
func (m *MockServerContext) LoadWorkspaceConfig() error {
	m.LoadWorkspaceConfigCalled = true
	if m.LoadWorkspaceConfigFunc != nil {
		return m.LoadWorkspaceConfigFunc()
	}
	return nil
}

// IsConfigFile reports whether path is a workspace configuration file
func (m *MockServerContext) IsConfigFile(path string) bool {
	if m.IsConfigFileFunc != nil {
		return m.IsConfigFileFunc(path)
	}
	return false
}

// RegisterFileWatchers records the call
func (m *MockServerContext) RegisterFileWatchers(ctx *glsp.Context) error {
	m.RegisterWatchersCalled = true
	if m.RegisterWatchersFunc != nil {
		return m.RegisterWatchersFunc(ctx)
	}
	return nil
}

// Coordinator returns the coordinator wired to the fakes
func (m *MockServerContext) Coordinator() *live.Coordinator {
	return m.coordinator
}

// GLSPContext returns the GLSP context
func (m *MockServerContext) GLSPContext() *glsp.Context {
	return m.glspContext
}

// SetGLSPContext sets the GLSP context
func (m *MockServerContext) SetGLSPContext(ctx *glsp.Context) {
	m.glspContext = ctx
}

type fakeHandle struct{ port int }

func (h fakeHandle) Port() int { return h.port }

// FakeStaticServer binds nothing. Port 0 yields EphemeralPort.
type FakeStaticServer struct {
	mu            sync.Mutex
	EphemeralPort int
	StartErr      error
	StopErr       error
	Configs       []staticserver.Config
	Stops         int
}

// Start records cfg and returns a handle on the requested port
func (f *FakeStaticServer) Start(_ context.Context, cfg staticserver.Config) (staticserver.Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Configs = append(f.Configs, cfg)
	if f.StartErr != nil {
		return nil, f.StartErr
	}
	if cfg.Port == 0 {
		return fakeHandle{port: f.EphemeralPort}, nil
	}
	return fakeHandle{port: cfg.Port}, nil
}

// Stop counts the call
func (f *FakeStaticServer) Stop(context.Context, staticserver.Handle) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Stops++
	return f.StopErr
}

// FakeBrowser records opened URLs
type FakeBrowser struct {
	mu      sync.Mutex
	Err     error
	URLs    []string
	AppArgs [][]string
}

// Open records url and appArgs
func (b *FakeBrowser) Open(_ context.Context, url string, appArgs []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.URLs = append(b.URLs, url)
	b.AppArgs = append(b.AppArgs, appArgs)
	return b.Err
}

// RecordingReporter records everything shown to the user
type RecordingReporter struct {
	mu       sync.Mutex
	infos    []string
	errors   []string
	statuses []live.Status
}

// ShowInfo records message
func (r *RecordingReporter) ShowInfo(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.infos = append(r.infos, message)
}

// ShowError records message
func (r *RecordingReporter) ShowError(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, message)
}

// SetStatus records status
func (r *RecordingReporter) SetStatus(status live.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, status)
}

// Infos returns the info messages shown so far
func (r *RecordingReporter) Infos() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.infos...)
}

// Errors returns the error messages shown so far
func (r *RecordingReporter) Errors() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.errors...)
}

// Statuses returns the statuses set so far
func (r *RecordingReporter) Statuses() []live.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]live.Status(nil), r.statuses...)
}

// LastStatus returns the latest status, if any
func (r *RecordingReporter) LastStatus() (live.Status, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.statuses) == 0 {
		return live.Status{}, false
	}
	return r.statuses[len(r.statuses)-1], true
}
