package version

import "fmt"

// Default build-time variable.
// These values are overridden via ldflags
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown-commit"
	BuildTime = "unknown-buildtime"
)

// String returns the version line printed by --version.
func String() string {
	return fmt.Sprintf("%s, build %s (%s)", Version, GitCommit, BuildTime)
}
