package cmd

import (
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/osrkit/pkg/replay"
	"github.com/ssargent/osrkit/pkg/store"
)

func TestInfoCommand(t *testing.T) {
	env := newTestEnv(t)
	path := env.writeReplay(t, "a.osr", testReplay("a"))

	t.Run("text", func(t *testing.T) {
		out, err := executeCommand(t, "info", path)
		require.NoError(t, err)
		assert.Contains(t, out, "Player:       cookiezi")
		assert.Contains(t, out, "Mods:         HDDT (72)")
		assert.Contains(t, out, "RNG seed:     1337")
		assert.Contains(t, out, "Frames:       3 (60ms)")
	})

	t.Run("json", func(t *testing.T) {
		out, err := executeCommand(t, "info", "--json", path)
		require.NoError(t, err)
		var s replay.Summary
		require.NoError(t, json.Unmarshal([]byte(out), &s))
		assert.Equal(t, "cookiezi", s.Username)
		assert.Equal(t, uint32(72389038), s.Score)
	})

	t.Run("directory", func(t *testing.T) {
		env.writeReplay(t, "b.osr", testReplay("b"))
		require.NoError(t, os.WriteFile(filepath.Join(env.dir, "notes.txt"), []byte("x"), 0644))

		out, err := executeCommand(t, "info", env.dir)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 2)
		assert.True(t, strings.HasPrefix(lines[0], filepath.Join(env.dir, "a.osr")))
	})

	t.Run("invalid file", func(t *testing.T) {
		bad := filepath.Join(env.dir, "bad.osr")
		require.NoError(t, os.WriteFile(bad, []byte{0, 1, 2, 3, 4, 0xff}, 0644))

		_, err := executeCommand(t, "info", bad)
		assert.ErrorIs(t, err, store.ErrCorruption)

		_, err = executeCommand(t, "info", env.dir)
		assert.Error(t, err)

		out, err := executeCommand(t, "info", "--skip-invalid", env.dir)
		require.NoError(t, err)
		assert.NotContains(t, out, "bad.osr")
	})
}

func TestEventsCommand(t *testing.T) {
	env := newTestEnv(t)
	path := env.writeReplay(t, "events.osr", testReplay("events"))

	out, err := executeCommand(t, "events", path, "--limit", "2")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"DELTA", "X", "Y", "KEYS"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"10", "1", "2", "1"}, strings.Fields(lines[1]))

	out, err = executeCommand(t, "events", "--json", path)
	require.NoError(t, err)
	var events []replay.EventOsu
	require.NoError(t, json.Unmarshal([]byte(out), &events))
	require.Len(t, events, 3)
	assert.Equal(t, float32(5.5), events[2].X)
}

func TestRepackCommand(t *testing.T) {
	env := newTestEnv(t)
	want := testReplay("repack")
	in := env.writeReplay(t, "in.osr", want)

	t.Run("preset", func(t *testing.T) {
		out := filepath.Join(env.dir, "out.osr")
		stdout, err := executeCommand(t, "repack", in, out, "--preset", "0")
		require.NoError(t, err)
		assert.Contains(t, stdout, "3 frames")

		got, err := store.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, want.Events, got.Events)
		assert.Equal(t, want.ReplayID, got.ReplayID)
	})

	t.Run("uncompressed", func(t *testing.T) {
		out := filepath.Join(env.dir, "plain.osr")
		_, err := executeCommand(t, "repack", in, out, "--uncompressed")
		require.NoError(t, err)

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Contains(t, string(data), "10|1|2|1,")

		got, err := replay.NewCodec().DecodeUncompressed(data)
		require.NoError(t, err)
		assert.Equal(t, want.Events, got.Events)
	})

	t.Run("bad preset", func(t *testing.T) {
		_, err := executeCommand(t, "repack", in, filepath.Join(env.dir, "x.osr"), "--preset", "12")
		assert.Error(t, err)
	})
}

func TestParseDataCommand(t *testing.T) {
	env := newTestEnv(t)
	text := "16|100|0|5,16|100|0|0,-12345|0|0|9,\n"

	t.Run("plain text file", func(t *testing.T) {
		path := filepath.Join(env.dir, "frames.txt")
		require.NoError(t, os.WriteFile(path, []byte(text), 0644))

		out, err := executeCommand(t, "parse-data", path, "--mode", "mania", "--decoded", "--decompressed")
		require.NoError(t, err)
		var events []replay.EventMania
		require.NoError(t, json.Unmarshal([]byte(out), &events))
		require.Len(t, events, 2)
		assert.Equal(t, replay.KeyMania(5), events[0].Keys)
	})

	t.Run("base64 on stdin", func(t *testing.T) {
		rootCmd.SetIn(strings.NewReader(base64.StdEncoding.EncodeToString([]byte(strings.TrimSpace(text))) + "\n"))
		resetFlags(rootCmd)
		rootCmd.SetArgs([]string{"parse-data", "-", "--mode", "3", "--decompressed"})
		var out strings.Builder
		rootCmd.SetOut(&out)
		require.NoError(t, rootCmd.Execute())
		assert.Contains(t, out.String(), `"keys": 5`)
	})

	t.Run("mode required", func(t *testing.T) {
		_, err := executeCommand(t, "parse-data", "-")
		assert.Error(t, err)
	})

	t.Run("unknown mode", func(t *testing.T) {
		_, err := executeCommand(t, "parse-data", "-", "--mode", "piano")
		assert.Error(t, err)
	})
}
