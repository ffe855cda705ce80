// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"brandstudio/internal/guardrail"
)

// ErrNonCompliant is returned by check when any layer violates the brand.
var ErrNonCompliant = errors.New("template is not brand compliant")

// newCheckCommand creates the "check" subcommand that evaluates a template
// document against a brand identity file.
func newCheckCommand(opts *Options) *cobra.Command {
	var brandPath string

	cmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Check a template against a brand's palette and typography",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFrom(cmd.Context())

			brand, err := loadBrand(brandPath)
			if err != nil {
				return err
			}
			t, err := loadTemplate(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}

			rep := guardrail.EvaluateTemplate(t, brand.Identity)
			logger.Debug("guardrail report", "template", t.Name, "brand", brand.Name,
				"layers", len(rep.Layers), "violations", rep.Violations())

			err = render(cmd.OutOrStdout(), opts.Output, rep, func(w io.Writer) error {
				for _, res := range rep.Layers {
					if res.OK() {
						fmt.Fprintf(w, "ok    %s\n", res.LayerID)
						continue
					}
					for _, v := range res.Violations {
						fmt.Fprintf(w, "FAIL  %s: %s %s is off-brand\n", res.LayerID, v.Attribute, v.Value)
					}
				}
				fmt.Fprintf(w, "%d of %d layers compliant\n", len(rep.Layers)-rep.Violations(), len(rep.Layers))
				return nil
			})
			if err != nil {
				return err
			}
			if !rep.Compliant {
				return ErrNonCompliant
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&brandPath, "brand", "b", "brand.yaml", "Path to the brand identity YAML file")
	return cmd
}
