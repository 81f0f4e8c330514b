package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/osrkit/pkg/replay"
)

// parseDataCmd represents the parse-data command
var parseDataCmd = &cobra.Command{
	Use:   "parse-data <file|->",
	Short: "Parse replay data from the osu! API",
	Long: `Parse the frames of a replay payload as returned by the osu! API.

The payload is base64-encoded LZMA by default. Use --decoded for raw LZMA
and --decompressed for the plain frame text. Use - to read from stdin.

Examples:
  osr parse-data payload.txt --mode taiko
  curl ... | osr parse-data - --mode std`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		modeName, _ := cmd.Flags().GetString("mode")
		decoded, _ := cmd.Flags().GetBool("decoded")
		decompressed, _ := cmd.Flags().GetBool("decompressed")

		mode, err := replay.ParseGameMode(modeName)
		if err != nil {
			return err
		}

		var payload []byte
		if args[0] == "-" {
			payload, err = io.ReadAll(cmd.InOrStdin())
		} else {
			payload, err = os.ReadFile(args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to read payload: %w", err)
		}
		// Text payloads usually end in a newline; raw LZMA is left alone
		if !decoded || decompressed {
			payload = bytes.TrimSpace(payload)
		}

		events, err := replay.ParseReplayData(payload, decoded, decompressed, mode)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), events)
	},
}

func init() {
	rootCmd.AddCommand(parseDataCmd)

	parseDataCmd.Flags().StringP("mode", "m", "", "Game mode (std, taiko, catch, mania)")
	parseDataCmd.Flags().Bool("decoded", false, "Payload is already base64-decoded")
	parseDataCmd.Flags().Bool("decompressed", false, "Payload is already decompressed")
	if err := parseDataCmd.MarkFlagRequired("mode"); err != nil {
		panic(err)
	}
}
