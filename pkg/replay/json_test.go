package replay

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplay_JSONRoundTrip(t *testing.T) {
	for _, mode := range []GameMode{ModeStd, ModeTaiko, ModeCatch, ModeMania} {
		t.Run(mode.String(), func(t *testing.T) {
			want := sampleReplay()
			want.Mode = mode
			want.Events = []ReplayEvent{fillerEvent(mode)}

			data, err := json.Marshal(want)
			require.NoError(t, err)

			var got Replay
			require.NoError(t, json.Unmarshal(data, &got))
			assertReplayEqual(t, want, &got)
		})
	}
}

func TestReplay_UnmarshalJSON(t *testing.T) {
	input := `{
		"mode": 2,
		"username": "peppy",
		"mods": 8,
		"events": [
			{"time_delta": 16, "x": 256.5, "dashing": true},
			{"time_delta": 32, "x": 100}
		],
		"rng_seed": 42
	}`

	var r Replay
	require.NoError(t, json.Unmarshal([]byte(input), &r))

	assert.Equal(t, ModeCatch, r.Mode)
	assert.Equal(t, "peppy", r.Username)
	assert.Equal(t, ModHidden, r.Mods)
	require.Len(t, r.Events, 2)
	assert.Equal(t, EventCatch{TimeDelta: 16, X: 256.5, Dashing: true}, r.Events[0])
	assert.Equal(t, EventCatch{TimeDelta: 32, X: 100}, r.Events[1])
	require.NotNil(t, r.RNGSeed)
	assert.Equal(t, int32(42), *r.RNGSeed)

	// The result is ready to encode.
	_, err := NewCodec().Encode(&r)
	assert.NoError(t, err)
}

func TestUnmarshalEvents_Invalid(t *testing.T) {
	raw := []json.RawMessage{json.RawMessage(`{"time_delta": "soon"}`)}
	_, err := UnmarshalEvents(ModeStd, raw)
	assert.Error(t, err)

	var r Replay
	assert.Error(t, json.Unmarshal([]byte(`{"mode": 0, "events": [{"keys": -1}]}`), &r))
}
