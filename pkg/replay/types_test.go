package replay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameModeFromByte(t *testing.T) {
	assert.Equal(t, ModeStd, GameModeFromByte(0))
	assert.Equal(t, ModeTaiko, GameModeFromByte(1))
	assert.Equal(t, ModeCatch, GameModeFromByte(2))
	assert.Equal(t, ModeMania, GameModeFromByte(3))
	assert.Equal(t, ModeStd, GameModeFromByte(4))
	assert.Equal(t, ModeStd, GameModeFromByte(255))
}

func TestParseGameMode(t *testing.T) {
	testCases := map[string]GameMode{
		"std":    ModeStd,
		"osu":    ModeStd,
		"0":      ModeStd,
		"Taiko":  ModeTaiko,
		"fruits": ModeCatch,
		"ctb":    ModeCatch,
		" mania": ModeMania,
		"3":      ModeMania,
	}
	for input, want := range testCases {
		got, err := ParseGameMode(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, want, got, "input %q", input)
	}

	_, err := ParseGameMode("drums")
	assert.Error(t, err)
}

func TestGameMode_String(t *testing.T) {
	assert.Equal(t, "std", ModeStd.String())
	assert.Equal(t, "mania", ModeMania.String())
	assert.Equal(t, "mode(9)", GameMode(9).String())
}

func TestMod_String(t *testing.T) {
	testCases := []struct {
		mods Mod
		want string
	}{
		{ModNone, "NM"},
		{ModHidden | ModHardRock, "HDHR"},
		{ModDoubleTime | ModNightcore, "NC"},
		{ModSuddenDeath | ModPerfect, "PF"},
		{ModHidden | ModDoubleTime | ModFlashlight, "HDDTFL"},
		{ModKey4 | ModMirror, "4KMR"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, tc.mods.String(), "mods %d", uint32(tc.mods))
	}
}

func TestMod_Contains(t *testing.T) {
	mods := ModHidden | ModHardRock
	assert.True(t, mods.Contains(ModHidden))
	assert.True(t, mods.Contains(ModHidden|ModHardRock))
	assert.False(t, mods.Contains(ModHidden|ModDoubleTime))
}

func TestKeys_Contains(t *testing.T) {
	assert.True(t, (KeyM1 | KeyK1).Contains(KeyK1))
	assert.False(t, KeyM1.Contains(KeyM2))
	assert.True(t, (KeyTaikoLeftDon | KeyTaikoRightKat).Contains(KeyTaikoRightKat))
	assert.Equal(t, KeyMania(1<<17), KeyManiaK18)
}

func TestReplay_DurationAndSummary(t *testing.T) {
	seed := int32(7)
	r := &Replay{
		Mode:     ModeStd,
		Username: "peppy",
		Mods:     ModHidden | ModHardRock,
		LifeBar:  []LifeBarState{{Time: 0, Life: 1}},
		Events: []ReplayEvent{
			EventOsu{TimeDelta: 16},
			EventOsu{TimeDelta: 32},
			EventOsu{TimeDelta: -8},
		},
		RNGSeed: &seed,
	}

	assert.Equal(t, int64(40), r.Duration().Milliseconds())

	s := r.Summary()
	assert.Equal(t, "std", s.Mode)
	assert.Equal(t, "peppy", s.Username)
	assert.Equal(t, "HDHR", s.Mods)
	assert.Equal(t, uint32(24), s.ModsValue)
	assert.Equal(t, 3, s.Events)
	assert.Equal(t, 1, s.LifeBar)
	assert.Equal(t, int64(40), s.DurationMs)
	require.NotNil(t, s.RNGSeed)
	assert.Equal(t, int32(7), *s.RNGSeed)
}
