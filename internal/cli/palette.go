package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/palette"
)

// paletteCommand prints the slice color sequence with swatches.
func (c *CLI) paletteCommand() *cobra.Command {
	var size, count int

	cmd := &cobra.Command{
		Use:   "palette",
		Short: "Print the slice color sequence",
		Long: `Print the colors assigned to slices without an explicit color, in order.

The sequence steps the hue through --size buckets and brightens as it
wraps around.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("size") {
				size = c.cfg.Palette.Size
			}
			if err := errors.ValidatePaletteSize(size); err != nil {
				return err
			}
			if count < 1 {
				count = size
			}

			seq := palette.NewSized(size)
			printKeyValue("Hue buckets", fmt.Sprint(size))
			printKeyValue("Colors", fmt.Sprint(count))
			for i, col := range seq.Take(count) {
				h, s, v := seq.HSV(i)
				printSwatch(palette.Hex(col), fmt.Sprintf("#%d  h=%.1f s=%.3f v=%.3f", i, h, s, v))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&size, "size", "n", palette.DefaultSize, "number of hue buckets")
	cmd.Flags().IntVar(&count, "count", 0, "number of colors to print (default: one cycle)")

	return cmd
}
