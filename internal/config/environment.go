// SPDX-License-Identifier: MPL-2.0

package config

import (
	"os"
	"strconv"
	"strings"
)

// osGetenv is the default property source, indirected for tests.
var osGetenv = os.Getenv

const (
	// EnvEnabled overrides resolution.enabled when set to a boolean value.
	EnvEnabled = "MODWIRE_ENABLED"
	// EnvExclude appends comma-separated module identifiers to
	// resolution.exclude.
	EnvExclude = "MODWIRE_EXCLUDE"
	// envPropertyPrefix prefixes per-property overrides: property
	// "server.mode" maps to MODWIRE_SERVER_MODE.
	envPropertyPrefix = "MODWIRE_"
)

// Environment is the runtime view of the resolution configuration: the
// global switch, the global exclusion list, and the condition properties,
// each overridable through process environment variables. It satisfies the
// engine's Environment collaborator.
type Environment struct {
	cfg    *Config
	getenv func(string) string
}

// NewEnvironment builds an Environment over the loaded configuration.
// getenv defaults to os.Getenv when nil; tests inject their own.
func NewEnvironment(cfg *Config, getenv func(string) string) *Environment {
	if getenv == nil {
		getenv = osGetenv
	}
	return &Environment{cfg: cfg, getenv: getenv}
}

// Enabled reports the global resolution switch. MODWIRE_ENABLED wins over
// the config file when it parses as a boolean; unparseable values are
// ignored.
func (e *Environment) Enabled() bool {
	if raw := e.getenv(EnvEnabled); raw != "" {
		if enabled, err := strconv.ParseBool(raw); err == nil {
			return enabled
		}
	}
	return e.cfg.Resolution.Enabled
}

// Excludes returns the global exclusion list: the config file entries
// followed by any identifiers from MODWIRE_EXCLUDE (comma-separated).
func (e *Environment) Excludes() []string {
	var excludes []string
	for _, id := range e.cfg.Resolution.Exclude {
		excludes = append(excludes, string(id))
	}
	if raw := e.getenv(EnvExclude); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				excludes = append(excludes, id)
			}
		}
	}
	return excludes
}

// Property resolves a condition property by name. A MODWIRE_* environment
// variable wins over the config file: dots become underscores and the name
// is upper-cased, so "server.mode" is overridden by MODWIRE_SERVER_MODE.
func (e *Environment) Property(name string) (string, bool) {
	if raw := e.getenv(propertyEnvName(name)); raw != "" {
		return raw, true
	}
	value, ok := e.cfg.Properties[name]
	return value, ok
}

// Capability returns the capability key queried for candidates, empty when
// the default applies.
func (e *Environment) Capability() string {
	return string(e.cfg.Resolution.Capability)
}

func propertyEnvName(name string) string {
	mapped := strings.Map(func(r rune) rune {
		switch r {
		case '.', '-':
			return '_'
		default:
			return r
		}
	}, name)
	return envPropertyPrefix + strings.ToUpper(mapped)
}
