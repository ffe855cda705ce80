// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"brandstudio/internal/design"
)

type pixelRow struct {
	ID   string      `json:"id" yaml:"id"`
	Kind string      `json:"type" yaml:"type"`
	Rect design.Rect `json:"rect" yaml:"rect"`
}

// newPixelsCommand creates the "pixels" subcommand that prints each layer's
// pixel rectangle on the template canvas drawn at --scale.
func newPixelsCommand(opts *Options) *cobra.Command {
	var scale float64

	cmd := &cobra.Command{
		Use:   "pixels FILE",
		Short: "Convert layer geometry to pixel rectangles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if scale <= 0 {
				return fmt.Errorf("scale must be positive, got %v", scale)
			}
			t, err := loadTemplate(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}

			layers := t.PaintOrder()
			rows := make([]pixelRow, len(layers))
			for i, l := range layers {
				rows[i] = pixelRow{ID: l.ID, Kind: string(l.Kind()), Rect: design.ToPixels(l.Geometry, t.Dimensions, scale)}
			}

			return render(cmd.OutOrStdout(), opts.Output, rows, func(w io.Writer) error {
				fmt.Fprintf(w, "canvas %dx%d at %gx\n", t.Dimensions.Width, t.Dimensions.Height, scale)
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tTYPE\tX\tY\tW\tH\tROT")
				for _, r := range rows {
					fmt.Fprintf(tw, "%s\t%s\t%.1f\t%.1f\t%.1f\t%.1f\t%g\n",
						r.ID, r.Kind, r.Rect.X, r.Rect.Y, r.Rect.W, r.Rect.H, r.Rect.Rotation)
				}
				return tw.Flush()
			})
		},
	}

	cmd.Flags().Float64Var(&scale, "scale", 1, "Render scale (zoom) applied to the canvas")
	return cmd
}
