package store

// SetRunning applies a step status change. Unknown names are ignored and
// report false; the record is expected on a later snapshot.
func (s *Store) SetRunning(name string, running bool) bool {
	r := s.lookup(name)
	if r == nil {
		return false
	}
	r.Running = running
	return true
}

// SetQueueLength applies a router queue-depth change. Unknown names are
// ignored and report false.
func (s *Store) SetQueueLength(name string, queueLength int64) bool {
	r := s.lookup(name)
	if r == nil {
		return false
	}
	r.QueueLength = queueLength
	r.HasQueueLength = true
	return true
}
