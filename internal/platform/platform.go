// Package platform normalizes file system paths for a given path-separator
// convention independently of the host the code runs on, so Windows paths can
// be resolved (and tested) on POSIX hosts and vice versa.
package platform

import (
	"path"
	"runtime"
	"strings"
)

// Platform identifies a path-separator convention
type Platform int

const (
	// POSIX uses forward slashes (Linux, macOS, BSD)
	POSIX Platform = iota
	// Windows uses backslashes and drive letters
	Windows
)

// Current returns the convention of the running host
func Current() Platform {
	return FromGOOS(runtime.GOOS)
}

// FromGOOS maps a GOOS value to its path convention
func FromGOOS(goos string) Platform {
	if goos == "windows" {
		return Windows
	}
	return POSIX
}

// String returns a human-readable platform name
func (p Platform) String() string {
	if p == Windows {
		return "windows"
	}
	return "posix"
}

// Separator returns the path separator for the platform
func (p Platform) Separator() string {
	if p == Windows {
		return `\`
	}
	return "/"
}

// toSlash converts a platform path to forward slashes.
// POSIX paths may legitimately contain backslashes in names and are left alone.
func (p Platform) toSlash(s string) string {
	if p == Windows {
		return strings.ReplaceAll(s, `\`, "/")
	}
	return s
}

func (p Platform) fromSlash(s string) string {
	if p == Windows {
		return strings.ReplaceAll(s, "/", `\`)
	}
	return s
}

// splitUNC separates the leading slash of a Windows UNC path ("//server/share")
// from the rest, which path.Clean would otherwise collapse into a single slash
func (p Platform) splitUNC(slashed string) (prefix, rest string) {
	if p == Windows && strings.HasPrefix(slashed, "//") && !strings.HasPrefix(slashed, "///") {
		return "/", slashed[1:]
	}
	return "", slashed
}

// clean runs path.Clean on a slash path, keeping a UNC prefix intact
func (p Platform) clean(slashed string) string {
	prefix, rest := p.splitUNC(slashed)
	return p.fromSlash(prefix + path.Clean(rest))
}

// Clean returns the shortest equivalent path, using the platform separator
func (p Platform) Clean(s string) string {
	if s == "" {
		return ""
	}
	return p.clean(p.toSlash(s))
}

// Join joins path elements with the platform separator and cleans the result.
// An element beginning with a separator is appended, not treated as absolute.
func (p Platform) Join(elem ...string) string {
	parts := make([]string, 0, len(elem))
	for _, e := range elem {
		if e != "" {
			parts = append(parts, p.toSlash(e))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return p.clean(strings.Join(parts, "/"))
}

// Dir returns all but the last element of a path
func (p Platform) Dir(s string) string {
	prefix, rest := p.splitUNC(p.toSlash(s))
	return p.fromSlash(prefix + path.Dir(rest))
}

// SameDir reports whether a and b name the same directory after cleaning and
// trimming trailing separators. Windows paths compare case-insensitively.
func (p Platform) SameDir(a, b string) bool {
	a = p.TrimTrailingSeparator(p.Clean(a))
	b = p.TrimTrailingSeparator(p.Clean(b))
	if p == Windows {
		return strings.EqualFold(a, b)
	}
	return a == b
}

// Base returns the last element of a path
func (p Platform) Base(s string) string {
	return path.Base(p.toSlash(s))
}

// HasLeadingSeparator reports whether s starts with either separator style.
// Both are accepted on every platform, matching what editors send.
func HasLeadingSeparator(s string) bool {
	return strings.HasPrefix(s, "/") || strings.HasPrefix(s, `\`)
}

// EnsureLeadingSeparator prefixes s with the platform separator unless it
// already begins with a separator
func (p Platform) EnsureLeadingSeparator(s string) string {
	if HasLeadingSeparator(s) {
		return s
	}
	return p.Separator() + s
}

// WithTrailingSeparator returns s ending in exactly one platform separator.
// Applying it twice yields the same string.
func (p Platform) WithTrailingSeparator(s string) string {
	sep := p.Separator()
	trimmed := strings.TrimRight(s, sep)
	if p == Windows {
		trimmed = strings.TrimRight(trimmed, "/")
	}
	return trimmed + sep
}

// TrimTrailingSeparator removes trailing separators, keeping a bare root intact
func (p Platform) TrimTrailingSeparator(s string) string {
	trimmed := strings.TrimRight(s, p.Separator())
	if p == Windows {
		trimmed = strings.TrimRight(trimmed, "/")
	}
	if trimmed == "" && s != "" {
		return p.Separator()
	}
	return trimmed
}
