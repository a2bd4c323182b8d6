package styles

const (
	IconSuccess = "✓"
	IconError   = "✗"
	IconWarning = "⚠"
	IconInfo    = "ℹ"
	IconRunning = "▶"
	IconPending = "○"
	IconSystem  = "●"
	IconBullet  = "•"
)

// StepIcon returns the icon for a step's running flag.
func StepIcon(running bool) string {
	if running {
		return IconRunning
	}
	return IconPending
}

// MonitorIcon returns the header icon for a monitor engine state and whether
// the state counts as healthy.
func MonitorIcon(state string) (string, bool) {
	switch state {
	case "synchronized":
		return IconSuccess, true
	case "awaiting_snapshot", "starting":
		return IconPending, true
	case "disabled":
		return IconError, false
	default:
		return IconSystem, false
	}
}

// LogLevelIcon returns the appropriate icon for a log level.
func LogLevelIcon(level string) string {
	switch level {
	case "error", "ERROR":
		return IconError
	case "warn", "WARN", "warning", "WARNING":
		return IconWarning
	case "info", "INFO":
		return IconInfo
	default:
		return IconBullet
	}
}
