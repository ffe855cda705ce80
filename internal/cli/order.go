// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type orderRow struct {
	Position int    `json:"position" yaml:"position"`
	ID       string `json:"id" yaml:"id"`
	Kind     string `json:"type" yaml:"type"`
	ZIndex   int    `json:"z_index" yaml:"zIndex"`
	Content  string `json:"content,omitempty" yaml:"content,omitempty"`
}

// newOrderCommand creates the "order" subcommand that lists layers back to
// front, the order a renderer paints them.
func newOrderCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "order FILE",
		Short: "List a template's layers in paint order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadTemplate(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}

			layers := t.PaintOrder()
			rows := make([]orderRow, len(layers))
			for i, l := range layers {
				rows[i] = orderRow{Position: i, ID: l.ID, Kind: string(l.Kind()), ZIndex: l.ZIndex, Content: l.Content()}
			}

			return render(cmd.OutOrStdout(), opts.Output, rows, func(w io.Writer) error {
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "#\tID\tTYPE\tZ\tCONTENT")
				for _, r := range rows {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", r.Position, r.ID, r.Kind, r.ZIndex, r.Content)
				}
				return tw.Flush()
			})
		},
	}
}
