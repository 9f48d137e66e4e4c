// Package version carries the build metadata jsonkit's "version"
// subcommand reports: the release version, VCS revision, and toolchain
// the running binary was built with.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	// Version is jsonkit's release version, set via ldflags at build time.
	// Empty in a `go run`/`go install` build, in which case String reports
	// "dev".
	Version string
	// Branch is the git branch the binary was built from, set via ldflags.
	Branch string
	// BuildUser is the user who built the binary, set via ldflags.
	BuildUser string
	// BuildDate is when the binary was built, set via ldflags.
	BuildDate string

	// Revision is the VCS commit jsonkit was built from.
	Revision = getRevision()
	// GoVersion is the Go toolchain used to build jsonkit.
	GoVersion = runtime.Version()
	// GoOS is the binary's target operating system.
	GoOS = runtime.GOOS
	// GoArch is the binary's target architecture.
	GoArch = runtime.GOARCH
)

// String renders the one-line summary jsonkit's `version` subcommand
// prints, e.g. "jsonkit 1.4.0 (a1b2c3d, linux/amd64)".
func String() string {
	v := Version
	if v == "" {
		v = "dev"
	}

	return fmt.Sprintf("jsonkit %s (%s, %s/%s)", v, Revision, GoOS, GoArch)
}

// getRevision recovers the VCS commit from the binary's embedded build
// info, for builds run without ldflags (e.g. `go install`).
func getRevision() string {
	rev := "unknown"

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return rev
	}

	modified := false

	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case "vcs.revision":
			rev = setting.Value
		case "vcs.modified":
			if setting.Value == "true" {
				modified = true
			}
		}
	}

	if modified {
		return rev + "-dirty"
	}

	return rev
}
