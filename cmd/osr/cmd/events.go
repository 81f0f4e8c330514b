package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ssargent/osrkit/pkg/replay"
	"github.com/ssargent/osrkit/pkg/store"
)

// eventsCmd represents the events command
var eventsCmd = &cobra.Command{
	Use:   "events <file>",
	Short: "Print replay frames",
	Long: `Print the frames of a replay, one per line.

Examples:
  osr events replay.osr --limit 20
  osr events --json replay.osr`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		asJSON, _ := cmd.Flags().GetBool("json")

		r, err := store.ReadFile(args[0])
		if err != nil {
			return err
		}

		events := r.Events
		if limit > 0 && limit < len(events) {
			events = events[:limit]
		}

		if asJSON {
			return writeJSON(cmd.OutOrStdout(), events)
		}
		return printEvents(cmd.OutOrStdout(), r.Mode, events)
	},
}

func printEvents(w io.Writer, mode replay.GameMode, events []replay.ReplayEvent) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	switch mode {
	case replay.ModeTaiko:
		fmt.Fprintln(tw, "DELTA\tX\tKEYS")
	case replay.ModeCatch:
		fmt.Fprintln(tw, "DELTA\tX\tDASH")
	case replay.ModeMania:
		fmt.Fprintln(tw, "DELTA\tKEYS")
	default:
		fmt.Fprintln(tw, "DELTA\tX\tY\tKEYS")
	}

	for _, e := range events {
		switch e := e.(type) {
		case replay.EventOsu:
			fmt.Fprintf(tw, "%d\t%g\t%g\t%d\n", e.TimeDelta, e.X, e.Y, e.Keys)
		case replay.EventTaiko:
			fmt.Fprintf(tw, "%d\t%d\t%d\n", e.TimeDelta, e.X, e.Keys)
		case replay.EventCatch:
			fmt.Fprintf(tw, "%d\t%g\t%t\n", e.TimeDelta, e.X, e.Dashing)
		case replay.EventMania:
			fmt.Fprintf(tw, "%d\t%d\n", e.TimeDelta, e.Keys)
		}
	}
	return tw.Flush()
}

func init() {
	rootCmd.AddCommand(eventsCmd)

	eventsCmd.Flags().IntP("limit", "n", 0, "Maximum number of frames to print (0 for all)")
	eventsCmd.Flags().Bool("json", false, "Print frames as JSON")
}
