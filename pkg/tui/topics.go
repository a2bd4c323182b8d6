package tui

const TopicUIMessages = "pipemon.ui.msgs"

const (
	UITypeStepsSnapshot = "tui.steps.snapshot"
	UITypeMonitorStatus = "tui.monitor.status"
	UITypeEventAppend   = "tui.event.append"
)
