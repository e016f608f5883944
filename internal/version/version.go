// Package version holds build metadata injected via ldflags.
package version

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// UserAgent returns the User-Agent value sent by restodex HTTP clients.
func UserAgent() string {
	return "restodex/" + Version
}
