// Package store holds the monitor's mirror of pipeline state.
//
// A Store is not safe for concurrent use. It has exactly one writer, the
// monitor engine goroutine; everything else sees the copies returned by
// Records.
package store

import (
	"github.com/go-go-golems/pipemon/pkg/wire"
)

// StepRecord is the last known state of one producer, stage or consumer.
type StepRecord struct {
	Name           string `json:"name"`
	Running        bool   `json:"running"`
	JobsDone       int64  `json:"jobs_done"`
	QueueLength    int64  `json:"queue_length,omitempty"`
	HasQueueLength bool   `json:"has_queue_length,omitempty"`
}

type SyncState string

const (
	AwaitingSnapshot SyncState = "awaiting_snapshot"
	Synchronized     SyncState = "synchronized"
)

type Store struct {
	steps []StepRecord
	index map[string]int

	version    wire.Version
	hasVersion bool
}

func New() *Store {
	return &Store{index: map[string]int{}}
}

func (s *Store) Len() int { return len(s.steps) }

func (s *Store) State() SyncState {
	if len(s.steps) == 0 {
		return AwaitingSnapshot
	}
	return Synchronized
}

// Version returns the last applied snapshot version, if any.
func (s *Store) Version() (wire.Version, bool) {
	return s.version, s.hasVersion
}

// Records returns a copy of the records in store order. The copy shares no
// memory with the store.
func (s *Store) Records() []StepRecord {
	out := make([]StepRecord, len(s.steps))
	copy(out, s.steps)
	return out
}

// Get returns a copy of the record for name.
func (s *Store) Get(name string) (StepRecord, bool) {
	i, ok := s.index[name]
	if !ok {
		return StepRecord{}, false
	}
	return s.steps[i], true
}

func (s *Store) lookup(name string) *StepRecord {
	i, ok := s.index[name]
	if !ok {
		return nil
	}
	return &s.steps[i]
}

// replace installs steps as the full record list. A name repeated in steps
// keeps its first occurrence.
func (s *Store) replace(steps []wire.Step) {
	records := make([]StepRecord, 0, len(steps))
	index := make(map[string]int, len(steps))
	for _, st := range steps {
		if _, dup := index[st.Name]; dup {
			continue
		}
		index[st.Name] = len(records)
		records = append(records, StepRecord{
			Name:     st.Name,
			Running:  st.Running,
			JobsDone: st.JobsDone,
		})
	}
	s.steps = records
	s.index = index
}
