// Package version holds build metadata injected with -ldflags, for example:
//
//	go build -ldflags "-X github.com/jmylchreest/dyematch/internal/version.Version=1.2.0 \
//	  -X github.com/jmylchreest/dyematch/internal/version.Commit=$(git rev-parse HEAD) \
//	  -X github.com/jmylchreest/dyematch/internal/version.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

const unknown = "unknown"

var (
	// Version is the semantic version of the application.
	Version = "dev"

	// Commit is the git commit hash of the build.
	Commit = unknown

	// Date is the build date in RFC3339 format.
	Date = unknown
)

// Info describes the running binary.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetInfo returns the build metadata. Without ldflags the commit and date
// fall back to the VCS stamp the Go toolchain embeds, when present.
func GetInfo() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && info.Commit == unknown:
				info.Commit = s.Value
			case s.Key == "vcs.time" && info.Date == unknown:
				info.Date = s.Value
			}
		}
	}
	return info
}

// ShortCommit returns the first eight characters of the commit hash.
func (i Info) ShortCommit() string {
	if len(i.Commit) > 8 {
		return i.Commit[:8]
	}
	return i.Commit
}

// String returns a human-readable version line.
func (i Info) String() string {
	if i.Commit != unknown && i.Date != unknown {
		return fmt.Sprintf("dyematch version %s (commit: %s, built: %s, %s, %s)",
			i.Version, i.ShortCommit(), i.Date, i.GoVersion, i.Platform)
	}
	return fmt.Sprintf("dyematch version %s (%s, %s)", i.Version, i.GoVersion, i.Platform)
}

// String returns the version line of the running binary.
func String() string {
	return GetInfo().String()
}

// Short returns the bare version, as shown by --version.
func Short() string {
	return Version
}
