// Package version carries build information stamped at link time
package version

// BuildInfo holds version information about a binary
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Set via -ldflags "-X 'chatter/internal/core/version.version=v1.0.0'
// -X 'chatter/internal/core/version.commit=abcd' -X 'chatter/internal/core/version.date=2024-05-01'"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Info returns the build information for service
func Info(service string) BuildInfo {
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

// UserAgent is the product token outbound clients identify with
func UserAgent(service string) string {
	return "Mozilla/5.0 (compatible; " + service + "/" + version + ")"
}
