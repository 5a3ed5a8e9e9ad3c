package config

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Section is the settings namespace editors use for live server options
const Section = "liveServer.settings"

// keyAliases maps setting names used by existing editor extensions to ours
var keyAliases = map[string]string{
	"ignorefiles":                  "ignore",
	"advancecustombrowsercmdline":  "advancedBrowserCmdline",
	"advancedcustombrowsercmdline": "advancedBrowserCmdline",
	"nobrowser":                    "noBrowser",
	"custombrowser":                "customBrowser",
	"chromedebuggingattachment":    "chromeDebuggingAttachment",
}

// ParseEditorSettings extracts live server options from the settings object an
// editor sends with workspace/didChangeConfiguration. Accepted shapes:
//
//	{"liveServer": {"settings": {...}}}
//	{"liveServer": {...}}
//	{"liveServer.settings": {...}}
//	{"liveServer.settings.port": 8080, ...}
//
// A settings object without any live server section yields empty Overrides.
func ParseEditorSettings(settings any) (Overrides, error) {
	if settings == nil {
		return Overrides{}, nil
	}

	settingsMap, ok := settings.(map[string]any)
	if !ok {
		return Overrides{}, fmt.Errorf("settings is not a map")
	}

	section, err := extractSection(settingsMap)
	if err != nil {
		return Overrides{}, err
	}
	if section == nil {
		return Overrides{}, nil
	}
	return decodeSection(section)
}

func extractSection(settingsMap map[string]any) (map[string]any, error) {
	if val, exists := settingsMap[Section]; exists {
		section, ok := val.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s must be an object", Section)
		}
		return section, nil
	}

	if val, exists := settingsMap["liveServer"]; exists {
		liveServer, ok := val.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("liveServer must be an object")
		}
		if nested, exists := liveServer["settings"]; exists {
			section, ok := nested.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("liveServer.settings must be an object")
			}
			return section, nil
		}
		return liveServer, nil
	}

	// Flat keys, as written in a VS Code settings.json
	var section map[string]any
	for key, val := range settingsMap {
		name, ok := strings.CutPrefix(key, Section+".")
		if !ok {
			continue
		}
		if section == nil {
			section = make(map[string]any)
		}
		section[name] = val
	}
	return section, nil
}

// decodeSection canonicalizes key names and decodes them into Overrides
func decodeSection(section map[string]any) (Overrides, error) {
	canonical := make(map[string]any, len(section))
	for key, val := range section {
		if alias, ok := keyAliases[strings.ToLower(key)]; ok {
			key = alias
		}
		canonical[key] = val
	}

	// Ignore may be given as a single string
	if s, ok := canonical["ignore"].(string); ok {
		canonical["ignore"] = []string{s}
	}

	// Convert to JSON and back to parse into struct
	jsonBytes, err := json.Marshal(canonical)
	if err != nil {
		return Overrides{}, fmt.Errorf("failed to marshal settings: %w", err)
	}

	var o Overrides
	if err := json.Unmarshal(jsonBytes, &o); err != nil {
		return Overrides{}, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	return o, nil
}
