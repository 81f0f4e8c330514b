package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ssargent/osrkit/pkg/replay"
	"github.com/ssargent/osrkit/pkg/store"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info <file|dir>",
	Short: "Show replay metadata",
	Long: `Show the metadata of a replay file, or of every .osr file in a directory.

Examples:
  osr info replay.osr
  osr info --json replay.osr
  osr info --recursive ~/osu/Replays`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		recursive, _ := cmd.Flags().GetBool("recursive")
		skipInvalid, _ := cmd.Flags().GetBool("skip-invalid")
		out := cmd.OutOrStdout()

		fi, err := os.Stat(args[0])
		if err != nil {
			return err
		}

		if !fi.IsDir() {
			r, err := store.ReadFile(args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(out, r.Summary())
			}
			printSummary(out, r.Summary())
			return nil
		}

		it, err := store.ScanDir(store.ScanConfig{Dir: args[0], Recursive: recursive, SkipInvalid: skipInvalid})
		if err != nil {
			return err
		}
		defer it.Close()

		var summaries []replay.Summary
		for it.Next() {
			s := it.Replay().Summary()
			if asJSON {
				summaries = append(summaries, s)
				continue
			}
			fmt.Fprintf(out, "%s\t%s\t%s\t%d\t%s\n", it.Path(), s.Mode, s.Username, s.Score, s.Mods)
		}
		if err := it.Err(); err != nil {
			return err
		}
		if asJSON {
			return writeJSON(out, summaries)
		}
		return nil
	},
}

func printSummary(w io.Writer, s replay.Summary) {
	fmt.Fprintf(w, "Mode:         %s\n", s.Mode)
	fmt.Fprintf(w, "Game version: %d\n", s.GameVersion)
	fmt.Fprintf(w, "Player:       %s\n", s.Username)
	fmt.Fprintf(w, "Beatmap hash: %s\n", s.BeatmapHash)
	fmt.Fprintf(w, "Replay hash:  %s\n", s.ReplayHash)
	fmt.Fprintf(w, "Score:        %d\n", s.Score)
	fmt.Fprintf(w, "Max combo:    %d (perfect: %t)\n", s.MaxCombo, s.Perfect)
	fmt.Fprintf(w, "Judgements:   300:%d 100:%d 50:%d geki:%d katu:%d miss:%d\n",
		s.Count300, s.Count100, s.Count50, s.CountGeki, s.CountKatu, s.CountMiss)
	fmt.Fprintf(w, "Mods:         %s (%d)\n", s.Mods, s.ModsValue)
	fmt.Fprintf(w, "Played:       %s (%s)\n", s.Timestamp.UTC().Format("2006-01-02 15:04:05"), humanize.Time(s.Timestamp))
	fmt.Fprintf(w, "Replay ID:    %d\n", s.ReplayID)
	if s.RNGSeed != nil {
		fmt.Fprintf(w, "RNG seed:     %d\n", *s.RNGSeed)
	}
	fmt.Fprintf(w, "Frames:       %d (%dms)\n", s.Events, s.DurationMs)
	fmt.Fprintf(w, "Life bar:     %d states\n", s.LifeBar)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().Bool("json", false, "Print metadata as JSON")
	infoCmd.Flags().BoolP("recursive", "r", false, "Descend into subdirectories")
	infoCmd.Flags().Bool("skip-invalid", false, "Skip files that fail to decode")
}
