// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Vidman is the canonical application identifier used for filesystem paths and CLI branding.
	Vidman = "vidman"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// UserAgent is the default user agent reported by the simulated document.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Build metadata - these values are overridden at link time via -ldflags.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
