package version

var (
	// Version is the current application version.
	// Populated by the build system (ldflags); the fallback marks dev builds.
	Version = "v0.3.0-dev"

	// Commit is the git short hash of the build.
	Commit = "unknown"

	// Date is the build timestamp.
	Date = "unknown"
)

// BuildInfo bundles the build identifiers for version endpoints and CLIs.
type BuildInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the build identifiers of the running binary.
func Info() BuildInfo {
	return BuildInfo{Version: Version, Commit: Commit, Date: Date}
}
