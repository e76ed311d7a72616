// Package version holds build-time version metadata.
package version

import "fmt"

// Version is set via build-time ldflags in releases:
// go build -ldflags "-X github.com/streamfold/docgen/internal/version.Version=v1.2.0".
var Version = "dev"

var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String returns the full version line shown by --version.
func String() string {
	return fmt.Sprintf("docgen %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
