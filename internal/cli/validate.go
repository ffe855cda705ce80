// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

type validation struct {
	File   string `json:"file" yaml:"file"`
	Valid  bool   `json:"valid" yaml:"valid"`
	Layers int    `json:"layers" yaml:"layers"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

// newValidateCommand creates the "validate" subcommand that checks template
// documents against the schema and the unique layer id rule.
func newValidateCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE...",
		Short: "Validate template JSON documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFrom(cmd.Context())

			results := make([]validation, 0, len(args))
			failed := 0
			for _, path := range args {
				v := validation{File: path}
				t, err := loadTemplate(path, cmd.InOrStdin())
				if err != nil {
					v.Error = err.Error()
					failed++
					logger.Debug("document invalid", "file", path, "error", err)
				} else {
					v.Valid = true
					v.Layers = len(t.Layers)
				}
				results = append(results, v)
			}

			err := render(cmd.OutOrStdout(), opts.Output, results, func(w io.Writer) error {
				for _, v := range results {
					if v.Valid {
						fmt.Fprintf(w, "ok    %s (%d layers)\n", v.File, v.Layers)
					} else {
						fmt.Fprintf(w, "FAIL  %s\n", v.Error)
					}
				}
				return nil
			})
			if err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d documents invalid", failed, len(args))
			}
			return nil
		},
	}
}
