package monitor

import (
	"github.com/go-go-golems/pipemon/pkg/store"
	"github.com/go-go-golems/pipemon/pkg/wire"
)

// route applies ev to s and reports whether s changed.
func route(s *store.Store, ev wire.Event) bool {
	switch ev := ev.(type) {
	case wire.Snapshot:
		return s.ApplySnapshot(ev.Version, ev.Steps)
	case wire.StepChange:
		// ev.JobsDone is owned by the snapshot channel
		return s.SetRunning(ev.Name, ev.Running)
	case wire.RouterChange:
		return s.SetQueueLength(ev.Name, ev.QueueLength)
	case wire.SessionEnd:
		return s.Reset()
	case wire.Void:
		return false
	default:
		return false
	}
}
