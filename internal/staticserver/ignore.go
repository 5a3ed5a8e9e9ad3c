package staticserver

import (
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"bennypowers.dev/livesrv/internal/log"
	"github.com/bmatcuk/doublestar/v4"
)

// unwatchedLogger serves every request and notes the ones that map to an
// ignored path. Ignored paths are excluded from change detection only.
type unwatchedLogger struct {
	next     http.Handler
	root     string
	patterns []string
}

func (u *unwatchedLogger) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if len(u.patterns) > 0 {
		diskPath := filepath.ToSlash(filepath.Join(u.root, filepath.FromSlash(path.Clean("/"+r.URL.Path))))
		if isIgnored(diskPath, u.patterns) {
			log.Debug("Serving unwatched path %s", r.URL.Path)
		}
	}
	u.next.ServeHTTP(w, r)
}

// normalizePatterns converts patterns to forward slashes and drops empties.
// doublestar.Match expects forward slashes, but Windows paths use backslashes.
func normalizePatterns(patterns []string) []string {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, strings.TrimSuffix(filepath.ToSlash(strings.ReplaceAll(p, `\`, "/")), "/"))
	}
	return out
}

// isIgnored reports whether diskPath matches a pattern or lives below a
// pattern that names a directory
func isIgnored(diskPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if diskPath == pattern || strings.HasPrefix(diskPath, pattern+"/") {
			return true
		}
		matched, err := doublestar.Match(pattern, diskPath)
		if err != nil {
			log.Warn("Invalid ignore pattern %q: %v", pattern, err)
			continue
		}
		if matched {
			return true
		}
	}
	return false
}
