package lsp

import (
	"path/filepath"
	"strings"

	"bennypowers.dev/livesrv/internal/collections"
	"bennypowers.dev/livesrv/internal/config"
	"bennypowers.dev/livesrv/internal/log"
)

// Settings returns the effective settings: defaults, then workspace files,
// then editor settings
func (s *Server) Settings() config.Settings {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return config.DefaultSettings().Apply(s.workspaceSettings).Apply(s.editorSettings)
}

// SetEditorSettings replaces the settings the editor sent
func (s *Server) SetEditorSettings(o config.Overrides) {
	s.configMu.Lock()
	s.editorSettings = o
	s.configMu.Unlock()

	s.applyLogLevel()
}

// LoadWorkspaceConfig reads the workspace configuration files. Files that
// parse are applied even when another one fails; the failures are returned.
func (s *Server) LoadWorkspaceConfig() error {
	root := s.RootPath()
	o, sources, err := config.LoadWorkspace(root)

	s.configMu.Lock()
	s.workspaceSettings = o
	s.configMu.Unlock()

	if len(sources) > 0 {
		log.Info("Loaded workspace settings from %s", strings.Join(sources, ", "))
	}
	s.applyLogLevel()
	return err
}

// IsConfigFile reports whether path is one of the workspace configuration files
func (s *Server) IsConfigFile(path string) bool {
	root := s.RootPath()
	if root == "" {
		return false
	}

	files := collections.NewSet[string]()
	for _, name := range config.WorkspaceFiles() {
		files.Add(filepath.Join(root, name))
	}
	return files.Has(filepath.Clean(path))
}

func (s *Server) applyLogLevel() {
	level := s.Settings().LogLevel
	if level == "" {
		return
	}
	if l, ok := log.ParseLevel(level); ok {
		log.SetLevel(l)
		return
	}
	log.Warn("Unknown log level %q", level)
}
