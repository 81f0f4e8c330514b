package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/osrkit/pkg/api"
	"github.com/ssargent/osrkit/pkg/di"
	"github.com/ssargent/osrkit/pkg/replay"
	"github.com/ssargent/osrkit/pkg/store"
)

// executeCommand runs the root command with args against a fresh flag state
// and returns its output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)
	if container == nil {
		SetContainer(di.NewContainer())
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(nil)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// testEnv is a temporary config and data directory
type testEnv struct {
	dir        string
	configPath string
	dataDir    string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dir, err := os.MkdirTemp("", "osr_cmd_test")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	return &testEnv{
		dir:        dir,
		configPath: filepath.Join(dir, "config.yaml"),
		dataDir:    filepath.Join(dir, "data"),
	}
}

func (e *testEnv) writeReplay(t *testing.T, name string, r *replay.Replay) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(t, store.WriteFile(path, r, replay.DefaultPreset))
	return path
}

func testReplay(hash string) *replay.Replay {
	seed := int32(1337)
	return &replay.Replay{
		Mode:        replay.ModeStd,
		GameVersion: 20240101,
		BeatmapHash: "beatmap-md5",
		Username:    "cookiezi",
		ReplayHash:  hash,
		Count300:    500,
		Score:       72389038,
		MaxCombo:    1024,
		Perfect:     true,
		Mods:        replay.ModHidden | replay.ModDoubleTime,
		LifeBar:     []replay.LifeBarState{{Time: 0, Life: 1}},
		Timestamp:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Events: []replay.ReplayEvent{
			replay.EventOsu{TimeDelta: 10, X: 1, Y: 2, Keys: replay.KeyM1},
			replay.EventOsu{TimeDelta: 20, X: 3, Y: 4, Keys: 0},
			replay.EventOsu{TimeDelta: 30, X: 5.5, Y: 6, Keys: replay.KeyK2},
		},
		ReplayID: 4000,
		RNGSeed:  &seed,
	}
}

// fakeServerFactory records the configuration the server is started with
type fakeServerFactory struct {
	started *api.ServerConfig
	archive api.ReplayArchive
}

func (f *fakeServerFactory) CreateServerStarter() api.ServerStarter { return f }

func (f *fakeServerFactory) StartServer(ctx context.Context, archive api.ReplayArchive, config api.ServerConfig) error {
	f.started = &config
	f.archive = archive
	return nil
}
