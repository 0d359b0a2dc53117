package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/nitrotools/nitropack/pkg/codec"
	"github.com/nitrotools/nitropack/pkg/formats"
)

var decompressFormat string

var decompressCmd = &cobra.Command{
	Use:   "decompress <input> <output>",
	Short: "Decompress a file, detecting the format when possible",
	Long: `Decompress a packed file back to its raw bytes.

Without -f the format is detected from the stream's magic signature.
Formats without a signature (applelzss) must be named explicitly.

Examples:
  nitropack decompress texture.szs texture.rgba
  nitropack decompress kernel.lzss kernel.bin -f applelzss`,
	Args: cobra.ExactArgs(2),
	RunE: runDecompress,
}

func init() {
	rootCmd.AddCommand(decompressCmd)

	decompressCmd.Flags().StringVarP(&decompressFormat, "format", "f", "",
		"format to decode with (default: detect by magic)")
}

func runDecompress(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	reg := formats.Default()
	var c codec.Codec
	if decompressFormat != "" {
		var ok bool
		if c, ok = reg.Lookup(decompressFormat); !ok {
			return fmt.Errorf("unknown format %q", decompressFormat)
		}
	} else {
		var ok bool
		if c, ok = reg.Detect(src); !ok {
			return fmt.Errorf("no registered format matches %s; use -f", args[0])
		}
		log.Debug().Str("format", c.Name()).Msg("detected format")
	}

	dst, err := c.Decompress(nil, src)
	if err != nil {
		return fmt.Errorf("decompression failed: %w", err)
	}

	if err := os.WriteFile(args[1], dst, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Printf("%s: %d -> %d bytes\n", c.Name(), len(src), len(dst))
	return nil
}
