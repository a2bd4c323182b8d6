package store

import (
	"github.com/go-go-golems/pipemon/pkg/wire"
)

// ApplySnapshot reconciles a full topology report and reports whether the
// store changed.
//
// A snapshot carrying the last applied version is ignored. Into an empty
// store the steps are adopted as given. Otherwise only JobsDone is copied
// onto records with a matching name; running and queue length belong to the
// incremental channels. If the incoming names do not cover the store exactly
// the pipeline was reconfigured, and the store is replaced by steps.
func (s *Store) ApplySnapshot(version wire.Version, steps []wire.Step) bool {
	if s.hasVersion && version == s.version {
		return false
	}

	if len(s.steps) == 0 {
		s.replace(steps)
	} else if !s.merge(steps) {
		s.replace(steps)
	}

	s.version = version
	s.hasVersion = true
	return true
}

// merge copies JobsDone onto matching records and reports whether the
// incoming set matched the store one to one. On a mismatch the store is left
// for the caller to replace.
func (s *Store) merge(steps []wire.Step) bool {
	if len(steps) != len(s.steps) {
		return false
	}
	seen := make(map[string]struct{}, len(steps))
	for _, st := range steps {
		if _, dup := seen[st.Name]; dup {
			return false
		}
		if _, ok := s.index[st.Name]; !ok {
			return false
		}
		seen[st.Name] = struct{}{}
	}
	for _, st := range steps {
		s.lookup(st.Name).JobsDone = st.JobsDone
	}
	return true
}

// Reset clears all records and forgets the snapshot version. It reports
// whether there was anything to clear.
func (s *Store) Reset() bool {
	changed := len(s.steps) > 0 || s.hasVersion
	s.steps = nil
	s.index = map[string]int{}
	s.version = ""
	s.hasVersion = false
	return changed
}
