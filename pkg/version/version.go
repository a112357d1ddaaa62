// Package version reports how the running ctxpack binary was built.
//
// Release builds stamp the values with -ldflags:
//
//	go build -ldflags "-X 'ctxpack/pkg/version.Version=0.3.0' -X 'ctxpack/pkg/version.Commit=$(git rev-parse --short HEAD)'"
//
// Anything left unstamped is filled from the module and VCS data the Go
// toolchain embeds, so `go install ctxpack@v0.3.0` still reports v0.3.0.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

const unset = "dev"

var (
	Version   = unset
	Commit    = ""
	BuildTime = ""
)

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// Info is the resolved build description.
type Info struct {
	Version   string
	GitCommit string
	BuildTime string
	Dirty     bool // Built from a modified working tree.
	GoVersion string
	Platform  string
}

// Get resolves the build description, preferring ldflags values over the
// embedded build info.
func Get() Info {
	info := Info{
		Version:   Version,
		GitCommit: Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	bi, ok := readBuildInfo()
	if !ok {
		return info.withPlaceholders()
	}
	if info.Version == unset && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "" {
				info.GitCommit = shortRevision(s.Value)
			}
		case "vcs.time":
			if info.BuildTime == "" {
				info.BuildTime = s.Value
			}
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		}
	}
	return info.withPlaceholders()
}

// Short is the bare version, as printed by `ctxpack version --short`.
func Short() string {
	return Get().Version
}

// String renders the version information on one line, e.g.
// "ctxpack 0.3.0 (commit 1a2b3c4, built 2024-04-27T15:04:05Z, go1.24.0 linux/amd64)".
func (i Info) String() string {
	commit := i.GitCommit
	if i.Dirty {
		commit += "-dirty"
	}
	return fmt.Sprintf("ctxpack %s (commit %s, built %s, %s %s)",
		i.Version, commit, i.BuildTime, i.GoVersion, i.Platform)
}

func (i Info) withPlaceholders() Info {
	if i.GitCommit == "" {
		i.GitCommit = "none"
	}
	if i.BuildTime == "" {
		i.BuildTime = "unknown"
	}
	return i
}

func shortRevision(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}
