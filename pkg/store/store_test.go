package store

import (
	"testing"

	"github.com/go-go-golems/pipemon/pkg/wire"
	"github.com/stretchr/testify/require"
)

func names(records []StepRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Name)
	}
	return out
}

func seeded(t *testing.T) *Store {
	t.Helper()
	s := New()
	require.True(t, s.ApplySnapshot("1", []wire.Step{
		{Name: "A", JobsDone: 1},
		{Name: "B", JobsDone: 2},
		{Name: "C", JobsDone: 3},
	}))
	return s
}

func TestStore_AdoptsFirstSnapshotInOrder(t *testing.T) {
	s := New()
	require.Equal(t, AwaitingSnapshot, s.State())

	require.True(t, s.ApplySnapshot("1", []wire.Step{
		{Name: "B", Running: true, JobsDone: 4},
		{Name: "A"},
	}))
	require.Equal(t, Synchronized, s.State())
	require.Equal(t, []StepRecord{
		{Name: "B", Running: true, JobsDone: 4},
		{Name: "A"},
	}, s.Records())

	v, ok := s.Version()
	require.True(t, ok)
	require.Equal(t, wire.Version("1"), v)
}

func TestStore_SameVersionIsIgnored(t *testing.T) {
	s := seeded(t)
	require.True(t, s.SetRunning("A", true))
	before := s.Records()

	require.False(t, s.ApplySnapshot("1", []wire.Step{{Name: "Z", JobsDone: 99}}))
	require.Equal(t, before, s.Records())
}

func TestStore_MergeOnlyTouchesJobsDone(t *testing.T) {
	s := seeded(t)
	require.True(t, s.SetRunning("B", true))
	require.True(t, s.SetQueueLength("C", 7))

	require.True(t, s.ApplySnapshot("2", []wire.Step{
		{Name: "C", Running: false, JobsDone: 30},
		{Name: "A", Running: true, JobsDone: 10},
		{Name: "B", Running: false, JobsDone: 20},
	}))

	require.Equal(t, []StepRecord{
		{Name: "A", JobsDone: 10},
		{Name: "B", Running: true, JobsDone: 20},
		{Name: "C", JobsDone: 30, QueueLength: 7, HasQueueLength: true},
	}, s.Records())
}

func TestStore_TopologyChangeReplaces(t *testing.T) {
	cases := []struct {
		name  string
		steps []wire.Step
	}{
		{"added", []wire.Step{{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "D", JobsDone: 1}}},
		{"removed", []wire.Step{{Name: "C", JobsDone: 5}, {Name: "A"}}},
		{"renamed", []wire.Step{{Name: "A"}, {Name: "B"}, {Name: "X"}}},
		{"emptied", []wire.Step{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := seeded(t)
			require.True(t, s.SetQueueLength("A", 3))

			require.True(t, s.ApplySnapshot("2", tc.steps))

			want := make([]StepRecord, 0, len(tc.steps))
			for _, st := range tc.steps {
				want = append(want, StepRecord{Name: st.Name, Running: st.Running, JobsDone: st.JobsDone})
			}
			require.Equal(t, want, s.Records())
		})
	}
}

func TestStore_DuplicateNamesInSnapshotKeepFirst(t *testing.T) {
	s := New()
	require.True(t, s.ApplySnapshot("1", []wire.Step{
		{Name: "A", JobsDone: 1},
		{Name: "B"},
		{Name: "A", JobsDone: 2},
	}))
	require.Equal(t, []string{"A", "B"}, names(s.Records()))
	r, ok := s.Get("A")
	require.True(t, ok)
	require.Equal(t, int64(1), r.JobsDone)
}

func TestStore_UnknownNamesAreNoOps(t *testing.T) {
	s := seeded(t)
	before := s.Records()

	require.False(t, s.SetRunning("nope", true))
	require.False(t, s.SetQueueLength("nope", 4))
	require.Equal(t, before, s.Records())

	empty := New()
	require.False(t, empty.SetRunning("A", true))
	require.False(t, empty.SetQueueLength("A", 1))
	require.Empty(t, empty.Records())
}

func TestStore_QueueLengthAbsentUntilRouterUpdate(t *testing.T) {
	s := seeded(t)
	r, _ := s.Get("B")
	require.False(t, r.HasQueueLength)

	require.True(t, s.SetQueueLength("B", 0))
	r, _ = s.Get("B")
	require.True(t, r.HasQueueLength)
	require.Equal(t, int64(0), r.QueueLength)
}

func TestStore_ResetClearsAndIsIdempotent(t *testing.T) {
	s := seeded(t)

	require.True(t, s.Reset())
	require.Equal(t, AwaitingSnapshot, s.State())
	require.Empty(t, s.Records())
	_, ok := s.Version()
	require.False(t, ok)

	require.False(t, s.Reset())
	require.False(t, s.SetRunning("A", true))
	require.False(t, s.SetQueueLength("A", 1))

	// the version is forgotten, so a replay of the old snapshot is accepted
	require.True(t, s.ApplySnapshot("1", []wire.Step{{Name: "A"}}))
	require.Equal(t, []string{"A"}, names(s.Records()))
}

func TestStore_RecordsIsACopy(t *testing.T) {
	s := seeded(t)
	out := s.Records()
	out[0].Running = true
	out[0].Name = "mutated"

	r, ok := s.Get("A")
	require.True(t, ok)
	require.False(t, r.Running)

	require.True(t, s.SetRunning("B", true))
	require.False(t, out[1].Running)
}

func TestStore_Scenario(t *testing.T) {
	s := New()

	require.True(t, s.ApplySnapshot("1", []wire.Step{{Name: "A"}, {Name: "B"}}))
	require.Equal(t, []string{"A", "B"}, names(s.Records()))

	require.True(t, s.SetRunning(wire.StripSuffix("A$$processus1", wire.DefaultStepDelimiter), true))
	a, _ := s.Get("A")
	require.True(t, a.Running)
	require.Equal(t, int64(0), a.JobsDone)

	require.True(t, s.SetQueueLength(wire.StripSuffix("A_router", wire.DefaultRouterDelimiter), 3))

	require.True(t, s.ApplySnapshot("2", []wire.Step{{Name: "A", JobsDone: 5}, {Name: "B"}}))
	a, _ = s.Get("A")
	require.Equal(t, StepRecord{Name: "A", Running: true, JobsDone: 5, QueueLength: 3, HasQueueLength: true}, a)

	require.True(t, s.Reset())
	require.Empty(t, s.Records())
}
