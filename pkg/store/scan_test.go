package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/osrkit/pkg/replay"
)

func setupScanDir(t *testing.T) string {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "scan_test")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	require.NoError(t, WriteFile(filepath.Join(tmpDir, "b.osr"), testReplay("b"), replay.DefaultPreset))
	require.NoError(t, WriteFile(filepath.Join(tmpDir, "a.OSR"), testReplay("a"), replay.DefaultPreset))
	require.NoError(t, WriteFile(filepath.Join(tmpDir, "sub", "c.osr"), testReplay("c"), replay.DefaultPreset))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "notes.txt"), []byte("not a replay"), 0600))
	return tmpDir
}

func collect(t *testing.T, it ReplayIterator) []string {
	t.Helper()
	var names []string
	for it.Next() {
		names = append(names, it.Replay().Username)
		assert.NotEmpty(t, it.Path())
	}
	return names
}

func TestScanDir(t *testing.T) {
	dir := setupScanDir(t)

	it, err := ScanDir(ScanConfig{Dir: dir})
	require.NoError(t, err)
	defer it.Close()

	assert.Equal(t, []string{"a", "b"}, collect(t, it))
	assert.NoError(t, it.Err())
}

func TestScanDir_Recursive(t *testing.T) {
	dir := setupScanDir(t)

	it, err := ScanDir(ScanConfig{Dir: dir, Recursive: true})
	require.NoError(t, err)
	defer it.Close()

	assert.Equal(t, []string{"a", "b", "c"}, collect(t, it))
	assert.NoError(t, it.Err())
}

func TestScanDir_InvalidFile(t *testing.T) {
	dir := setupScanDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "aa.osr"), []byte{0x00, 0x01}, 0600))

	t.Run("stops", func(t *testing.T) {
		it, err := ScanDir(ScanConfig{Dir: dir})
		require.NoError(t, err)
		defer it.Close()

		assert.Equal(t, []string{"a"}, collect(t, it))
		assert.ErrorIs(t, it.Err(), ErrCorruption)
		assert.Equal(t, filepath.Join(dir, "aa.osr"), it.Path())
	})

	t.Run("skips", func(t *testing.T) {
		it, err := ScanDir(ScanConfig{Dir: dir, SkipInvalid: true})
		require.NoError(t, err)
		defer it.Close()

		assert.Equal(t, []string{"a", "b"}, collect(t, it))
		assert.NoError(t, it.Err())
	})
}

func TestScanDir_Errors(t *testing.T) {
	_, err := ScanDir(ScanConfig{Dir: filepath.Join(os.TempDir(), "no-such-replay-dir")})
	assert.ErrorIs(t, err, ErrNotFound)

	dir := setupScanDir(t)
	_, err = ScanDir(ScanConfig{Dir: filepath.Join(dir, "b.osr")})
	assert.Error(t, err)
}

func TestScanDir_Close(t *testing.T) {
	dir := setupScanDir(t)

	it, err := ScanDir(ScanConfig{Dir: dir})
	require.NoError(t, err)

	require.True(t, it.Next())
	require.NoError(t, it.Close())
	assert.False(t, it.Next())
	assert.Nil(t, it.Replay())
}

func TestIsReplayFile(t *testing.T) {
	assert.True(t, IsReplayFile("x.osr"))
	assert.True(t, IsReplayFile("dir/x.OSR"))
	assert.False(t, IsReplayFile("x.osr.tmp"))
	assert.False(t, IsReplayFile("osr"))
}
