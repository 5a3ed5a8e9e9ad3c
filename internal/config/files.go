package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"bennypowers.dev/livesrv/internal/log"
	"github.com/BurntSushi/toml"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Workspace configuration files, lowest precedence first
var (
	PackageJSONFile    = "package.json"
	VSCodeSettingsFile = filepath.Join(".vscode", "settings.json")
	YAMLConfigFile     = filepath.Join(".config", "live-server.yaml")
	TOMLConfigFile     = filepath.Join(".config", "live-server.toml")
)

// WorkspaceFiles lists the files LoadWorkspace reads, relative to the
// workspace root, lowest precedence first
func WorkspaceFiles() []string {
	return []string{PackageJSONFile, VSCodeSettingsFile, YAMLConfigFile, TOMLConfigFile}
}

// LoadWorkspace reads every workspace configuration file under rootPath and
// merges them, later files overriding earlier ones. Missing files are not an
// error. The returned slice names the files that contributed settings.
func LoadWorkspace(rootPath string) (Overrides, []string, error) {
	if rootPath == "" {
		return Overrides{}, nil, nil
	}

	loaders := []struct {
		name string
		load func(string) (Overrides, error)
	}{
		{PackageJSONFile, readJSONCSettings},
		{VSCodeSettingsFile, readJSONCSettings},
		{YAMLConfigFile, readYAMLConfig},
		{TOMLConfigFile, readTOMLConfig},
	}

	var merged Overrides
	var sources []string
	var errs []error
	for _, l := range loaders {
		path := filepath.Join(rootPath, l.name)
		o, err := l.load(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			continue
		case err != nil:
			errs = append(errs, fmt.Errorf("%s: %w", l.name, err))
			continue
		}
		if o.IsEmpty() {
			continue
		}
		log.Info("Loaded settings from %s", path)
		merged = merged.Merge(o)
		sources = append(sources, path)
	}

	return merged, sources, errors.Join(errs...)
}

// readJSONCSettings reads the liveServer section of a package.json or the
// liveServer.settings.* keys of a settings.json. Both are read as JSONC:
// comments and trailing commas are allowed.
func readJSONCSettings(path string) (Overrides, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: Reading workspace settings - local trusted environment
	if err != nil {
		return Overrides{}, err
	}

	var settings map[string]any
	if err := json.Unmarshal(jsonc.ToJSON(data), &settings); err != nil {
		return Overrides{}, fmt.Errorf("failed to parse settings: %w", err)
	}
	return ParseEditorSettings(settings)
}

// readYAMLConfig reads .config/live-server.yaml. Keys follow the same rules
// as editor settings: aliases are accepted and ignore may be a single string.
func readYAMLConfig(path string) (Overrides, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: Reading workspace config - local trusted environment
	if err != nil {
		return Overrides{}, err
	}

	var section map[string]any
	if err := yaml.Unmarshal(data, &section); err != nil {
		return Overrides{}, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return decodeSection(section)
}

func readTOMLConfig(path string) (Overrides, error) {
	if _, err := os.Stat(path); err != nil {
		return Overrides{}, err
	}

	var section map[string]any
	if _, err := toml.DecodeFile(path, &section); err != nil {
		return Overrides{}, fmt.Errorf("failed to parse TOML: %w", err)
	}
	return decodeSection(section)
}
