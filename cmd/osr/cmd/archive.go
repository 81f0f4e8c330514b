package cmd

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ssargent/osrkit/pkg/api"
	"github.com/ssargent/osrkit/pkg/logger"
	"github.com/ssargent/osrkit/pkg/storage"
	"github.com/ssargent/osrkit/pkg/store"
)

// archiveCmd represents the archive command
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Manage the replay archive",
	Long: `Store, retrieve, list and remove replays in the local archive.

The archive lives at archive.path in the configuration, resolved against
data_dir.`,
}

var archivePutCmd = &cobra.Command{
	Use:   "put <file|dir>...",
	Short: "Add replays to the archive",
	Long: `Add replay files to the archive. Directories are scanned for .osr files.
Replays already in the archive are reported and skipped.

Examples:
  osr archive put replay.osr
  osr archive put -r ~/osu/Replays`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		recursive, _ := cmd.Flags().GetBool("recursive")

		archive, err := openArchive()
		if err != nil {
			return err
		}
		defer archive.Close()

		var added, duplicates int
		for _, arg := range args {
			paths, err := replayPaths(arg, recursive)
			if err != nil {
				return err
			}
			for _, path := range paths {
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				id, err := archive.PutRaw(data)
				switch {
				case errors.Is(err, storage.ErrDuplicate):
					duplicates++
					cmd.Printf("%s: already archived as %s\n", path, id)
				case err != nil:
					return fmt.Errorf("%s: %w", path, err)
				default:
					added++
					cmd.Printf("%s: %s\n", path, id)
				}
			}
		}

		cmd.Printf("Added %d replays (%d duplicates)\n", added, duplicates)
		return nil
	},
}

var archiveGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Export an archived replay",
	Long: `Write an archived replay to a file. Without --output the file is
named <id>.osr in the current directory.

Examples:
  osr archive get 2Dbd6yUzW3yIhWyKUwQ1Y0ZM3Kq -o best.osr`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		id, err := storage.ParseID(args[0])
		if err != nil {
			return err
		}

		archive, err := openArchive()
		if err != nil {
			return err
		}
		defer archive.Close()

		data, err := archive.GetRaw(id)
		if err != nil {
			return err
		}

		if output == "" {
			output = id.String() + store.Extension
		}
		if err := os.WriteFile(output, data, 0644); err != nil {
			return fmt.Errorf("failed to write replay: %w", err)
		}
		cmd.Printf("Wrote %s (%s)\n", output, humanize.Bytes(uint64(len(data))))
		return nil
	},
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived replays",
	Long: `List archived replays, oldest first.

Examples:
  osr archive list --limit 20
  osr archive list --player cookiezi`,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		player, _ := cmd.Flags().GetString("player")
		beatmap, _ := cmd.Flags().GetString("beatmap")

		archive, err := openArchive()
		if err != nil {
			return err
		}
		defer archive.Close()

		var entries []storage.Entry
		switch {
		case player != "":
			entries, err = archive.ListBy(storage.FieldPlayer, player, limit)
		case beatmap != "":
			entries, err = archive.ListBy(storage.FieldBeatmap, beatmap, limit)
		default:
			entries, err = archive.List(limit)
		}
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tMODE\tPLAYER\tSCORE\tMODS\tSIZE")
		for _, e := range entries {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
				e.ID, e.Summary.Mode, e.Summary.Username, e.Summary.Score, e.Summary.Mods,
				humanize.Bytes(uint64(e.Size)))
		}
		return tw.Flush()
	},
}

var archiveRmCmd = &cobra.Command{
	Use:     "rm <id>...",
	Aliases: []string{"delete"},
	Short:   "Remove replays from the archive",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		archive, err := openArchive()
		if err != nil {
			return err
		}
		defer archive.Close()

		for _, arg := range args {
			id, err := storage.ParseID(arg)
			if err != nil {
				return err
			}
			if err := archive.Delete(id); err != nil {
				return fmt.Errorf("%s: %w", arg, err)
			}
			cmd.Printf("Removed %s\n", id)
		}
		return nil
	},
}

// openArchive opens the configured archive through the container
func openArchive() (api.ReplayArchive, error) {
	if container == nil {
		return nil, fmt.Errorf("dependency container not initialized")
	}
	path := cfg.ArchivePath()
	logger.Log.WithField("path", path).Debug("opening archive")
	return container.GetArchiveFactory().OpenArchive(storage.Options{
		Path:   path,
		Preset: cfg.Codec.Preset,
	})
}

// replayPaths expands a directory argument to the replay files it contains
func replayPaths(path string, recursive bool) ([]string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return []string{path}, nil
	}
	return store.ListReplays(path, recursive)
}

func init() {
	rootCmd.AddCommand(archiveCmd)
	archiveCmd.AddCommand(archivePutCmd, archiveGetCmd, archiveListCmd, archiveRmCmd)

	archivePutCmd.Flags().BoolP("recursive", "r", false, "Descend into subdirectories")
	archiveGetCmd.Flags().StringP("output", "o", "", "Output file")
	archiveListCmd.Flags().IntP("limit", "n", 0, "Maximum number of entries (0 for all)")
	archiveListCmd.Flags().String("player", "", "Only list replays by this player")
	archiveListCmd.Flags().String("beatmap", "", "Only list replays of this beatmap hash")
}
