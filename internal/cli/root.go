// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package cli defines brandctl, an offline companion to the API that
// validates, orders, measures and checks template documents on disk.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"brandstudio/internal/logging"
)

// Options stores global CLI options shared between commands.
type Options struct {
	Output   string // text, json or yaml
	LogLevel string
}

// Execute builds the root command, runs it with the provided args and
// returns any error.
func Execute(args []string, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.NewLogger(os.Stderr, logging.FormatText, slog.LevelInfo)
	}
	cmd := newRootCommand(&Options{}, logger)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func newRootCommand(opts *Options, logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "brandctl",
		Short:         "brandctl inspects brand studio template documents",
		Long:          "brandctl validates template JSON documents, lists their paint order, converts layer geometry to pixels and checks templates against a brand identity file.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := logging.ParseLevel(opts.LogLevel)
			logger = logging.NewLogger(cmd.ErrOrStderr(), logging.FormatText, level)
			cmd.SetContext(context.WithValue(cmd.Context(), loggerKey{}, logger))
			return validateOutput(opts.Output)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.Output, "output", "o", outputText, "Output format (text, json, yaml)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newValidateCommand(opts),
		newOrderCommand(opts),
		newPixelsCommand(opts),
		newCheckCommand(opts),
	)

	return cmd
}

// loggerKey is a private context key used to store a logger in command contexts.
type loggerKey struct{}

// loggerFrom extracts the command logger, falling back to the default.
func loggerFrom(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return slog.Default()
}
