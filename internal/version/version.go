package version

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/coffle/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/arthur-debert/coffle/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/coffle/internal/version.Date={{.Date}}
)

// String formats the build information for the version command
func String() string {
	return "coffle version " + Version + "\n  commit: " + Commit + "\n  built:  " + Date + "\n"
}
