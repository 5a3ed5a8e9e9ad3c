// Package uriutil converts between file:// URIs sent by editors and file
// system paths in a given platform's convention.
package uriutil

import (
	"net/url"
	"strings"

	"bennypowers.dev/livesrv/internal/platform"
)

// PathToURI converts an absolute file system path to a file:// URI.
//   - /home/user -> file:///home/user
//   - C:\proj -> file:///C:/proj
//   - \\server\share -> file://server/share (UNC, Windows only)
//   - C:\Foo Bar -> file:///C:/Foo%20Bar (percent-encoded)
func PathToURI(path string, p platform.Platform) string {
	if p == platform.Windows && strings.HasPrefix(path, `\\`) {
		unc := strings.ReplaceAll(strings.TrimPrefix(path, `\\`), `\`, "/")
		return "file://" + escapeSegments(unc)
	}

	slashed := path
	if p == platform.Windows {
		slashed = strings.ReplaceAll(path, `\`, "/")
	}
	if !strings.HasPrefix(slashed, "/") {
		slashed = "/" + slashed
	}
	return "file://" + escapeSegments(slashed)
}

func escapeSegments(slashed string) string {
	segments := strings.Split(slashed, "/")
	for i, seg := range segments {
		if seg != "" {
			segments[i] = url.PathEscape(seg)
		}
	}
	return strings.Join(segments, "/")
}

// URIToPath converts a file:// URI to a file system path.
//   - file:///home/user -> /home/user
//   - file:///C:/proj -> C:\proj (Windows)
//   - file://server/share -> \\server\share (Windows)
//   - file:///C:/Foo%20Bar -> C:\Foo Bar
//
// Strings that are not file:// URIs are treated as paths already and are
// returned in the platform's separator convention.
func URIToPath(uri string, p platform.Platform) string {
	parsed, err := url.Parse(uri)
	if err != nil || parsed.Scheme != "file" {
		return fallback(uri, p)
	}

	decoded := parsed.Path

	if parsed.Host != "" && parsed.Host != "localhost" {
		if p == platform.Windows {
			return `\\` + parsed.Host + strings.ReplaceAll(decoded, "/", `\`)
		}
		return parsed.Host + decoded
	}

	return toPlatform(decoded, p)
}

func fallback(uri string, p platform.Platform) string {
	path := uri
	switch {
	case strings.HasPrefix(path, "file:///"):
		path = path[len("file://"):]
	case strings.HasPrefix(path, "file://"):
		path = path[len("file://"):]
	}
	return toPlatform(path, p)
}

func toPlatform(path string, p platform.Platform) string {
	// /C:/proj -> C:/proj
	if len(path) >= 3 && path[0] == '/' && path[2] == ':' {
		path = path[1:]
	}
	if p == platform.Windows {
		return strings.ReplaceAll(path, "/", `\`)
	}
	return path
}
