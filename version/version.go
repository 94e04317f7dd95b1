// Package version reports build metadata for the docsplit binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

var (
	// Version is the application version, set via ldflags.
	Version string
	// Branch is the git branch, set via ldflags.
	Branch string
	// BuildUser is the user who built the binary, set via ldflags.
	BuildUser string
	// BuildDate is when the binary was built, set via ldflags.
	BuildDate string

	// Revision is the git commit revision.
	Revision = getRevision()
	// GoVersion is the Go version used to build.
	GoVersion = runtime.Version()
	// GoOS is the operating system target.
	GoOS = runtime.GOOS
	// GoArch is the architecture target.
	GoArch = runtime.GOARCH
)

// String returns the version line printed by --version, for example
// "1.2.0 (revision 1a2b3c, branch main, go1.25.0 linux/amd64)". Builds
// without a version set via ldflags report "dev".
func String() string {
	v := Version
	if v == "" {
		v = "dev"
	}

	details := []string{"revision " + Revision}
	if Branch != "" {
		details = append(details, "branch "+Branch)
	}

	if BuildDate != "" {
		details = append(details, "built "+BuildDate)
	}

	if BuildUser != "" {
		details = append(details, "by "+BuildUser)
	}

	details = append(details, fmt.Sprintf("%s %s/%s", GoVersion, GoOS, GoArch))

	return fmt.Sprintf("%s (%s)", v, strings.Join(details, ", "))
}

func getRevision() string {
	rev := "unknown"

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return rev
	}

	modified := false

	for _, v := range buildInfo.Settings {
		switch v.Key {
		case "vcs.revision":
			rev = v.Value
		case "vcs.modified":
			if v.Value == "true" {
				modified = true
			}
		}
	}

	if modified {
		return rev + "-dirty"
	}

	return rev
}
