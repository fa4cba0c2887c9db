// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Autoplay Negotiation - these keys govern how the coordinator decides whether muted autoplay is attempted.
const (
	AutoplayLiteViewer        = "autoplay.lite_viewer"
	AutoplayVisibilityPercent = "autoplay.visibility_percent"
)

// Coordinator - these keys tune the document-wide registry.
const (
	ManagerPollInterval = "manager.poll_interval"
)

// Simulation - these keys configure the in-memory document used by simulate and watch.
const (
	SimUserAgent       = "sim.user_agent"
	SimAutoplayAllowed = "sim.autoplay_allowed"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored = "cli.colored"
)
