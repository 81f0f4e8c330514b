package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/osrkit/pkg/replay"
	"github.com/ssargent/osrkit/pkg/store"
)

// repackCmd represents the repack command
var repackCmd = &cobra.Command{
	Use:   "repack <in> <out>",
	Short: "Re-encode a replay",
	Long: `Decode a replay and encode it again, optionally with a different
compression preset.

--uncompressed writes the frame block as plain text. That form is for
inspection only and is not readable by osu!.

Examples:
  osr repack in.osr out.osr --preset 9
  osr repack in.osr debug.osr --uncompressed`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		uncompressed, _ := cmd.Flags().GetBool("uncompressed")
		preset, _ := cmd.Flags().GetInt("preset")
		if !cmd.Flags().Changed("preset") {
			preset = cfg.Codec.Preset
		}

		r, err := store.ReadFile(args[0])
		if err != nil {
			return err
		}

		if uncompressed {
			data, err := replay.NewCodec().EncodeUncompressed(r)
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[1], data, 0644); err != nil {
				return fmt.Errorf("failed to write replay: %w", err)
			}
		} else if err := store.WriteFile(args[1], r, preset); err != nil {
			return err
		}

		cmd.Printf("Repacked %s -> %s (%d frames)\n", args[0], args[1], len(r.Events))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(repackCmd)

	repackCmd.Flags().Bool("uncompressed", false, "Store the frame block without LZMA compression")
	repackCmd.Flags().Int("preset", replay.DefaultPreset, "LZMA compression preset (0-9)")
}
