package resolver

import (
	"strings"

	"bennypowers.dev/livesrv/internal/platform"
)

// WorkspaceContext is the editor state a go-live request is resolved from.
// Empty strings mean "absent".
type WorkspaceContext struct {
	// WorkspaceRoot is the top-level folder open in the editor, if any
	WorkspaceRoot string
	// ActiveDocument is the absolute path of the document the user is looking at
	ActiveDocument string
	// VirtualRoot is the configured subdirectory to serve instead of the root
	VirtualRoot string
	// Platform selects the path-separator convention of the paths above
	Platform platform.Platform
}

// ResolvedRoot is the directory to serve and the page to open inside it
type ResolvedRoot struct {
	// RootPath always ends with exactly one platform separator
	RootPath string
	// RelativeOpenPath is the page to open, relative to RootPath.
	// Only meaningful when HasRelativeOpenPath is true.
	RelativeOpenPath    string
	HasRelativeOpenPath bool
	// HadVirtualRootError is true when the configured virtual root does not
	// exist and RootPath fell back to the workspace or document directory
	HadVirtualRootError bool
	// WorkspacePath echoes WorkspaceContext.WorkspaceRoot
	WorkspacePath string
}

// ExistsFunc reports whether a path exists on disk
type ExistsFunc func(path string) bool

// Resolve computes the directory to serve for ctx.
// It returns ok=false when there is no active document.
func Resolve(ctx WorkspaceContext, exists ExistsFunc) (ResolvedRoot, bool) {
	if ctx.ActiveDocument == "" {
		return ResolvedRoot{}, false
	}

	p := ctx.Platform
	documentDir := p.Dir(ctx.ActiveDocument)

	// Single-file mode: no workspace, serve the document's folder
	rootPath := ctx.WorkspaceRoot
	if rootPath == "" {
		rootPath = documentDir
	}
	rootPath = p.Clean(rootPath)

	virtualRoot := p.Join(rootPath, p.EnsureLeadingSeparator(ctx.VirtualRoot))

	hadVirtualRootError := true
	if exists != nil && exists(virtualRoot) {
		rootPath = virtualRoot
		hadVirtualRootError = false
	}

	result := ResolvedRoot{
		RootPath:            p.WithTrailingSeparator(rootPath),
		HadVirtualRootError: hadVirtualRootError,
		WorkspacePath:       ctx.WorkspaceRoot,
	}

	if strings.HasSuffix(ctx.ActiveDocument, ".html") &&
		!hadVirtualRootError &&
		p.SameDir(documentDir, rootPath) {
		result.RelativeOpenPath = p.Base(ctx.ActiveDocument)
		result.HasRelativeOpenPath = true
	}

	return result, true
}
