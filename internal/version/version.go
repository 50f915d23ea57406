// Package version holds build metadata stamped into reports and printed by
// `chasten version`.
package version

import "fmt"

// These variables are populated by the Go linker (LDFLAGS) at build time.
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// String formats all build metadata on one line.
func String() string {
	return fmt.Sprintf("chasten %s (commit %s, built %s)", Version, CommitHash, BuildDate)
}
