// Package version holds the build-time version variables for the binaries.
// Release builds inject real values via -ldflags.
package version

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info returns the formatted version string printed by exitplanctl version.
func Info() string {
	return fmt.Sprintf(
		"exitplanctl version %s\ncommit: %s\nbuilt: %s\n",
		Version,
		Commit,
		Date,
	)
}
