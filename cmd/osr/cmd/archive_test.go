package cmd

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/osrkit/pkg/config"
	"github.com/ssargent/osrkit/pkg/storage"
)

var idPattern = regexp.MustCompile(`[0-9A-Za-z]{27}`)

func TestArchiveCommands(t *testing.T) {
	env := newTestEnv(t)
	cfg := config.DefaultConfig()
	cfg.DataDir = env.dataDir
	require.NoError(t, config.SaveConfig(cfg, env.configPath))

	replays := filepath.Join(env.dir, "replays")
	require.NoError(t, os.MkdirAll(filepath.Join(replays, "nested"), 0755))
	first := env.writeReplay(t, "replays/one.osr", testReplay("one"))
	env.writeReplay(t, "replays/nested/two.osr", testReplay("two"))

	// put: the nested replay is only found with -r
	out, err := executeCommand(t, "--config", env.configPath, "archive", "put", replays)
	require.NoError(t, err)
	assert.Contains(t, out, "Added 1 replays (0 duplicates)")
	m := regexp.MustCompile(`one\.osr: ([0-9A-Za-z]{27})`).FindStringSubmatch(out)
	require.Len(t, m, 2)
	firstID := m[1]

	out, err = executeCommand(t, "--config", env.configPath, "archive", "put", "-r", replays)
	require.NoError(t, err)
	assert.Contains(t, out, "Added 1 replays (1 duplicates)")

	// list
	out, err = executeCommand(t, "--config", env.configPath, "archive", "list")
	require.NoError(t, err)
	ids := idPattern.FindAllString(out, -1)
	require.Len(t, ids, 2)
	assert.Contains(t, ids, firstID)
	assert.Contains(t, out, "cookiezi")

	out, err = executeCommand(t, "--config", env.configPath, "archive", "list", "--player", "COOKIEZI", "--limit", "1")
	require.NoError(t, err)
	assert.Len(t, idPattern.FindAllString(out, -1), 1)

	out, err = executeCommand(t, "--config", env.configPath, "archive", "list", "--beatmap", "missing")
	require.NoError(t, err)
	assert.Empty(t, idPattern.FindAllString(out, -1))

	// get
	exported := filepath.Join(env.dir, "exported.osr")
	_, err = executeCommand(t, "--config", env.configPath, "archive", "get", firstID, "-o", exported)
	require.NoError(t, err)
	want, err := os.ReadFile(first)
	require.NoError(t, err)
	got, err := os.ReadFile(exported)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// rm
	_, err = executeCommand(t, "--config", env.configPath, "archive", "rm", firstID)
	require.NoError(t, err)
	_, err = executeCommand(t, "--config", env.configPath, "archive", "get", firstID, "-o", exported)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	out, err = executeCommand(t, "--config", env.configPath, "archive", "list", "--limit", "5")
	require.NoError(t, err)
	assert.Len(t, idPattern.FindAllString(out, -1), 1)

	_, err = executeCommand(t, "--config", env.configPath, "archive", "rm", "not-an-id")
	assert.ErrorIs(t, err, storage.ErrInvalidID)
}

func TestArchive_MissingConfig(t *testing.T) {
	env := newTestEnv(t)
	_, err := executeCommand(t, "--config", filepath.Join(env.dir, "missing.yaml"), "archive", "list")
	assert.Error(t, err)
}
