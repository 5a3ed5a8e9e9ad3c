// Package htmlscan answers whether a workspace contains any HTML page, which
// decides if the live server status should be shown at all.
package htmlscan

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"

	"bennypowers.dev/livesrv/internal/collections"
	"bennypowers.dev/livesrv/internal/log"
	"github.com/bmatcuk/doublestar/v4"
)

// Pattern matches HTML pages anywhere in a workspace
const Pattern = "**/*.{html,htm}"

var errFound = errors.New("html file found")

// skippedDirs never count as part of the site
var skippedDirs = collections.NewSet("node_modules", ".git")

// HasHTML reports on the returned channel whether root contains at least one
// HTML file outside node_modules and .git. The channel receives exactly one value and
// is then closed.
func HasHTML(ctx context.Context, root string) <-chan bool {
	result := make(chan bool, 1)
	if root == "" {
		result <- false
		close(result)
		return result
	}

	go func() {
		defer close(result)
		found, err := Find(ctx, os.DirFS(root))
		if err != nil {
			log.Warn("HTML scan of %s failed: %v", root, err)
		}
		result <- found
	}()
	return result
}

// Find walks fsys and stops at the first HTML file outside the skipped
// directories
func Find(ctx context.Context, fsys fs.FS) (bool, error) {
	err := doublestar.GlobWalk(fsys, Pattern, func(path string, d fs.DirEntry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || inSkippedDir(path) {
			return nil
		}
		return errFound
	})

	switch {
	case errors.Is(err, errFound):
		return true, nil
	case err != nil:
		return false, err
	}
	return false, nil
}

func inSkippedDir(path string) bool {
	return skippedDirs.HasAny(strings.Split(path, "/")...)
}
