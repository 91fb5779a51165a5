// Package build holds build-time information.
package build

import "fmt"

// These are overwritten by linker flags in release builds.
var (
	// Version is the application version.
	Version = "dev"
	// Commit is the git commit the binary was built from.
	Commit = "none"
	// Date is the build date.
	Date = "unknown"
)

// Summary returns the version line printed by `targets version` and `--version`.
func Summary() string {
	return fmt.Sprintf("targets version %s (commit: %s, date: %s)", Version, Commit, Date)
}
