// Package version reports the build the binaries were produced from.
package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// Set at build time via -ldflags "-X bennypowers.dev/livesrv/internal/version.Version=..."
var (
	Version   = "dev"
	GitCommit = ""
	GitTag    = ""
	BuildTime = ""
	GitDirty  = "" // "dirty" when built from a modified tree
)

// Info describes one build
type Info struct {
	Version   string
	Commit    string
	Tag       string
	BuildTime string
	Dirty     bool
}

// Current returns the running build. Values from ldflags win over the VCS
// stamps the Go toolchain embeds.
func Current() Info {
	bi, _ := debug.ReadBuildInfo()
	return fromBuild(bi)
}

// GetVersion returns the version string reported to editors
func GetVersion() string {
	return Current().Version
}

func fromBuild(bi *debug.BuildInfo) Info {
	info := Info{
		Commit:    GitCommit,
		Tag:       GitTag,
		BuildTime: BuildTime,
		Dirty:     GitDirty == "dirty",
	}

	if bi != nil {
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.Commit == "" {
					info.Commit = s.Value
				}
			case "vcs.time":
				if info.BuildTime == "" {
					info.BuildTime = s.Value
				}
			case "vcs.modified":
				if GitDirty == "" {
					info.Dirty = s.Value == "true"
				}
			}
		}
	}

	info.Version = resolveVersion(info, bi)
	return info
}

func resolveVersion(info Info, bi *debug.BuildInfo) string {
	if Version != "" && Version != "dev" {
		return Version
	}

	if bi != nil && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}

	if info.Tag == "" {
		return "dev"
	}

	v := info.Tag
	if short := info.ShortCommit(); short != "" && !strings.HasSuffix(v, short) {
		v += "-" + short
	}
	if info.Dirty {
		v += "-dirty"
	}
	return v
}

// ShortCommit is the first seven characters of the commit hash
func (i Info) ShortCommit() string {
	if len(i.Commit) > 7 {
		return i.Commit[:7]
	}
	return i.Commit
}

// String formats the build for --version output, e.g.
// "v0.4.0 (commit abc1234, built 2026-01-01T00:00:00Z)"
func (i Info) String() string {
	var details []string
	if short := i.ShortCommit(); short != "" {
		details = append(details, "commit "+short)
	}
	if i.BuildTime != "" {
		details = append(details, "built "+i.BuildTime)
	}
	if len(details) == 0 {
		return i.Version
	}
	return fmt.Sprintf("%s (%s)", i.Version, strings.Join(details, ", "))
}
