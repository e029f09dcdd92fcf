// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for modwire.
//
// This package implements the Cobra command hierarchy for the modwire CLI,
// including the root command, the resolve and inspect commands, and the
// configuration management subcommands. Command handlers delegate all
// business logic through the App composition root.
package cmd
