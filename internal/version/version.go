// Package version holds build metadata for the surgefmt CLI, stamped at
// release time via -ldflags.
package version

import "github.com/fatih/color"

var (
	// Version is the semantic version shown by --version.
	Version = paint("0", "1", "0") + "-dev"

	// GitCommit, GitMessage and BuildDate are empty in plain `go build`
	// binaries and filled by the release pipeline.
	GitCommit  = ""
	GitMessage = ""
	BuildDate  = ""
)

// paint colors the major.minor.patch parts; a no-op when color is disabled.
func paint(major, minor, patch string) string {
	return color.New(color.FgYellow, color.Bold).Sprint(major) + "." +
		color.New(color.FgGreen, color.Bold).Sprint(minor) + "." +
		color.New(color.FgBlue, color.Bold).Sprint(patch)
}
