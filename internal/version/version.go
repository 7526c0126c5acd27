// Package version provides build-time version information.
package version

// These variables are set at build time using -ldflags
var (
	// Version is the semantic version
	Version = "0.1.0"

	// BuildTime is the UTC time when the binary was built
	BuildTime = "unknown"

	// GitCommit is the git commit hash
	GitCommit = "unknown"

	// Packaged is "true" for distributed builds, which write their output
	// into the user's downloads folder instead of next to the input file.
	Packaged = "false"
)

// String formats the version line printed by -version.
func String() string {
	return Version + " (" + GitCommit + ", built " + BuildTime + ")"
}
