package tui

type StepsSnapshotMsg struct {
	Snapshot StepsSnapshot
}

type MonitorStatusMsg struct {
	Status MonitorStatus
}

type EventLogAppendMsg struct {
	Entry EventLogEntry
}
