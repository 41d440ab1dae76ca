// Package version carries build metadata injected via -ldflags.
package version

import "fmt"

var (
	// Version is the semantic version, "dev" for local builds.
	Version = "dev"
	// BuildTime is injected at build time.
	BuildTime = "unknown"
	// GitCommit is injected at build time.
	GitCommit = "unknown"
)

const appName = "scout"

// GetVersion returns the short semantic version.
func GetVersion() string {
	return Version
}

// GetFullVersion returns the build string shown by the version command and
// the status endpoint.
func GetFullVersion() string {
	if Version == "dev" {
		return fmt.Sprintf("%s/%s (commit: %s, built: %s)", appName, Version, GitCommit, BuildTime)
	}
	return fmt.Sprintf("%s/%s", appName, Version)
}
