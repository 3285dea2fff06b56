package version

import (
	"strings"

	"github.com/fatih/color"
)

// Version information for the ngbuild CLI.
// These variables can be overridden at build time via -ldflags. They hold
// plain text; any coloring happens at render time.

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Pretty renders the version for terminal display, tinting the
// major/minor/patch parts when colorize is set.
func Pretty(colorize bool) string {
	if !colorize {
		return Version
	}
	parts := strings.SplitN(Version, ".", 3)
	if len(parts) != 3 {
		return Version
	}
	return majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2])
}
