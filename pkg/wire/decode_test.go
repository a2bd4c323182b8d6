package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestDecoder() *Decoder {
	return NewDecoder(DefaultTopics(), DefaultDelimiters())
}

func TestDecode_Snapshot(t *testing.T) {
	ev, err := newTestDecoder().Decode(DefaultTopicSnapshot, []byte(`{"version": 1700000000.25, "steps": [
		{"name": "A", "running": true, "jobs_done": 3},
		{"name": "B", "running": false, "jobs_done": 0}
	]}`))
	require.NoError(t, err)

	snap, ok := ev.(Snapshot)
	require.True(t, ok)
	require.Equal(t, Version("1700000000.25"), snap.Version)
	require.Equal(t, []Step{
		{Name: "A", Running: true, JobsDone: 3},
		{Name: "B"},
	}, snap.Steps)
}

func TestDecode_StepChangeStripsSuffixForEveryCategory(t *testing.T) {
	d := newTestDecoder()
	for _, topic := range []string{DefaultTopicProducer, DefaultTopicStager, DefaultTopicConsumer} {
		ev, err := d.Decode(topic, []byte(`{"name": "A$$processus1", "running": true, "jobs_done": 5}`))
		require.NoError(t, err, topic)

		sc, ok := ev.(StepChange)
		require.True(t, ok, topic)
		require.Equal(t, "A", sc.Name)
		require.Equal(t, "A$$processus1", sc.TaggedName)
		require.True(t, sc.Running)
		require.Equal(t, int64(5), sc.JobsDone)
	}
}

func TestDecode_RouterChange(t *testing.T) {
	ev, err := newTestDecoder().Decode(DefaultTopicRouter, []byte(`{"name": "A_router", "queue_length": 3}`))
	require.NoError(t, err)
	require.Equal(t, RouterChange{TaggedName: "A_router", Name: "A", QueueLength: 3}, ev)
}

func TestDecode_SessionEndIgnoresPayload(t *testing.T) {
	d := newTestDecoder()
	for _, payload := range [][]byte{nil, []byte("garbage")} {
		ev, err := d.Decode(DefaultTopicFinish, payload)
		require.NoError(t, err)
		require.Equal(t, SessionEnd{}, ev)
	}
}

func TestDecode_UnknownTopicIsVoid(t *testing.T) {
	ev, err := newTestDecoder().Decode("GUI_SOMETHING_NEW", []byte(`not json`))
	require.NoError(t, err)
	require.Equal(t, Void{Topic: "GUI_SOMETHING_NEW"}, ev)
	require.Equal(t, KindVoid, ev.Kind())
}

func TestDecode_MalformedPayloads(t *testing.T) {
	cases := []struct {
		name    string
		topic   string
		payload string
	}{
		{"snapshot not json", DefaultTopicSnapshot, `{`},
		{"snapshot missing version", DefaultTopicSnapshot, `{"steps": []}`},
		{"snapshot step without name", DefaultTopicSnapshot, `{"version": 1, "steps": [{"running": true}]}`},
		{"snapshot trailing data", DefaultTopicSnapshot, `{"version": 1, "steps": []} {}`},
		{"step change empty", DefaultTopicStager, ``},
		{"step change wrong type", DefaultTopicStager, `{"name": "A", "running": "yes"}`},
		{"step change missing name", DefaultTopicProducer, `{"running": true}`},
		{"router change wrong type", DefaultTopicRouter, `{"name": "A_router", "queue_length": "many"}`},
	}
	d := newTestDecoder()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev, err := d.Decode(tc.topic, []byte(tc.payload))
			require.Nil(t, ev)
			require.ErrorIs(t, err, ErrMalformedPayload)

			var de *DecodeError
			require.ErrorAs(t, err, &de)
			require.Equal(t, tc.topic, de.Topic)
		})
	}
}

func TestStripSuffix(t *testing.T) {
	require.Equal(t, "A", StripSuffix("A$$processus1", DefaultStepDelimiter))
	require.Equal(t, "A", StripSuffix("A", DefaultStepDelimiter))
	require.Equal(t, "stage", StripSuffix("stage_router_router", DefaultRouterDelimiter))
	require.Equal(t, "x_router", StripSuffix("x_router", ""))
}

func TestEncoder_RoundTripsThroughDecoder(t *testing.T) {
	enc := NewEncoder(DefaultTopics(), DefaultDelimiters())
	d := newTestDecoder()

	f, err := enc.StepChange(DefaultTopicConsumer, "sink", "3", true, 9)
	require.NoError(t, err)
	ev, err := d.Decode(f.Topic, f.Payload)
	require.NoError(t, err)
	require.Equal(t, "sink", ev.(StepChange).Name)

	f, err = enc.Snapshot("2", nil)
	require.NoError(t, err)
	ev, err = d.Decode(f.Topic, f.Payload)
	require.NoError(t, err)
	require.Equal(t, Snapshot{Version: "2", Steps: []Step{}}, ev)
}
