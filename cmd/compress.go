package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/nitrotools/nitropack/pkg/codec"
	"github.com/nitrotools/nitropack/pkg/formats"
)

var compressFormat string

var compressCmd = &cobra.Command{
	Use:   "compress <input> <output>",
	Short: "Compress a file with a named format",
	Long: `Compress a file into one of the supported container layouts.

Examples:
  # Pack a texture as a big-endian Yaz0 stream
  nitropack compress texture.rgba texture.szs -f yaz0

  # Pack a script with the backward LZ77 variant
  nitropack compress boot.bin boot.blz -f blz77`,
	Args: cobra.ExactArgs(2),
	RunE: runCompress,
}

func init() {
	rootCmd.AddCommand(compressCmd)

	compressCmd.Flags().StringVarP(&compressFormat, "format", "f", "yaz0",
		"format to encode with (see 'nitropack formats')")
}

func runCompress(cmd *cobra.Command, args []string) error {
	c, ok := formats.Default().Lookup(compressFormat)
	if !ok {
		return fmt.Errorf("unknown format %q", compressFormat)
	}

	in, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat input: %w", err)
	}
	if max := c.Constants().MaxInputSize; max > 0 && info.Size() > int64(max) {
		return fmt.Errorf("%s cannot encode %d bytes (length field limit %d)", c.Name(), info.Size(), max)
	}

	out, err := os.Create(args[1])
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer out.Close()

	progress := codec.Progress(func(done, total int) {
		log.Debug().Str("format", c.Name()).Int("done", done).Int("total", total).Msg("compressing")
	})
	if err := codec.CompressStream(c, in, out, progress); err != nil {
		return fmt.Errorf("compression failed: %w", err)
	}

	written, err := out.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("failed to stat output: %w", err)
	}
	fmt.Printf("%s: %d -> %d bytes (%.1f%%)\n",
		c.Name(), info.Size(), written, ratio(int(written), int(info.Size())))
	return nil
}

func ratio(packed, original int) float64 {
	if original == 0 {
		return 0
	}
	return 100 * float64(packed) / float64(original)
}
