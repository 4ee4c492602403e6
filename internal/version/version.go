package version

import "fmt"

var (
	// Version is the semantic version of the binary. Overridden at build time.
	Version = "dev"
	// Commit is the git commit hash. Overridden at build time.
	Commit = "unknown"
	// BuildDate is the build timestamp. Overridden at build time.
	BuildDate = "unknown"
)

const (
	// Project is the project name sent to upstream services.
	Project = "osrs-tools"
	// Homepage is where upstream operators can reach the maintainers.
	Homepage = "https://github.com/cdfisher"
)

// UserAgent appends the library identification to a caller-supplied client description.
func UserAgent(client string) string {
	return fmt.Sprintf("%s via %s by %s", client, Project, Homepage)
}
