package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nitrotools/nitropack/pkg/formats"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List registered formats and their published constants",
	Args:  cobra.NoArgs,
	RunE:  runFormats,
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}

func runFormats(cmd *cobra.Command, args []string) error {
	reg := formats.Default()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMAGIC\tWINDOW\tMATCH\tMAX INPUT")
	for _, name := range reg.Names() {
		c, _ := reg.Lookup(name)
		k := c.Constants()

		magic := "-"
		if len(k.Magic) > 0 {
			magic = fmt.Sprintf("% x", k.Magic)
		}
		window, match := "-", "-"
		if k.Window.MaxDisplacement > 0 {
			window = fmt.Sprintf("%d", k.Window.MaxDisplacement)
			match = fmt.Sprintf("%d..%d", k.Window.MinLength, k.Window.MaxLength)
		}
		maxInput := "-"
		if k.MaxInputSize > 0 {
			maxInput = fmt.Sprintf("%d", k.MaxInputSize)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", name, magic, window, match, maxInput)
	}
	return w.Flush()
}
