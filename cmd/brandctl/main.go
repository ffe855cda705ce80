// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the brandctl CLI binary.
package main

import (
	"log/slog"
	"os"

	"brandstudio/internal/cli"
	"brandstudio/internal/logging"
)

func main() {
	logger := logging.NewLogger(os.Stderr, logging.FormatText, slog.LevelInfo)
	if err := cli.Execute(os.Args[1:], logger); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}
