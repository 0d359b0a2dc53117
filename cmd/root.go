package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "nitropack",
	Short: "Compression toolkit for proprietary game-asset containers",
	Long: `nitropack packs and unpacks the compression layers found in
proprietary game-asset containers.

Supported schemes:
  - Yaz0 run-length streams, big- and little-endian headers (yaz0, yaz0le)
  - Flag-byte LZ77 streams, forward and backward (lz77, blz77)
  - ECD LZSS containers (lzecd)
  - Nintendo Huffman streams at 4- and 8-bit depth (huff4, huff4hi, huff8)
  - Apple firmware LZSS streams (applelzss)

Run 'nitropack formats' for each format's published constants.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
		if verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"print verbose progress information")
}
