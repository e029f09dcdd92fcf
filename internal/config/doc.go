// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/modwire/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/modwire/config.cue on macOS, %APPDATA%\modwire\config.cue
// on Windows). The package provides type-safe configuration access covering manifest
// search paths, resolution switches and exclusions, condition properties, and UI settings.
//
// Configuration validation is performed against a CUE schema (config_schema.cue) to ensure
// type safety and provide clear error messages for invalid configurations. Environment,
// built on top of a loaded Config, layers MODWIRE_* variables over the file values and is
// the collaborator the resolution engine consults at run time.
package config
