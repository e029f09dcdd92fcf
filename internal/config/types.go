// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/modwire/modwire/internal/registry"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidSearchPath is the sentinel error wrapped by InvalidSearchPathError.
	ErrInvalidSearchPath = errors.New("invalid search path")
	// ErrInvalidCapabilityKey is the sentinel error wrapped by InvalidCapabilityKeyError.
	ErrInvalidCapabilityKey = errors.New("invalid capability key")
	// ErrInvalidModuleID is the sentinel error wrapped by InvalidModuleIDError.
	ErrInvalidModuleID = errors.New("invalid module identifier")
	// ErrInvalidResolutionConfig is the sentinel error wrapped by InvalidResolutionConfigError.
	ErrInvalidResolutionConfig = errors.New("invalid resolution config")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// SearchPath is a filesystem root scanned for module manifests.
	// A valid path must be non-empty and not whitespace-only.
	SearchPath string

	// InvalidSearchPathError is returned when a SearchPath value is empty or
	// whitespace-only. It wraps ErrInvalidSearchPath for errors.Is().
	InvalidSearchPathError struct {
		Value SearchPath
	}

	// CapabilityKey is the manifest key under which module candidates are
	// registered. A valid key must be non-empty and contain no whitespace.
	CapabilityKey string

	// InvalidCapabilityKeyError is returned when a CapabilityKey value is
	// empty or contains whitespace. It wraps ErrInvalidCapabilityKey for
	// errors.Is() compatibility.
	InvalidCapabilityKeyError struct {
		Value CapabilityKey
	}

	// ModuleID is a fully qualified module identifier as it appears in
	// manifests. A valid identifier must be non-empty and contain no
	// whitespace.
	ModuleID string

	// InvalidModuleIDError is returned when a ModuleID value is empty or
	// contains whitespace. It wraps ErrInvalidModuleID for errors.Is().
	InvalidModuleIDError struct {
		Value ModuleID
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidResolutionConfigError is returned when a ResolutionConfig has
	// invalid fields. It wraps ErrInvalidResolutionConfig for errors.Is()
	// compatibility and collects field-level validation errors.
	InvalidResolutionConfigError struct {
		FieldErrors []error
	}

	// InvalidUIConfigError is returned when a UIConfig has invalid fields.
	// It wraps ErrInvalidUIConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// SearchPaths are the roots scanned for module manifests.
		SearchPaths []SearchPath `json:"search_paths" mapstructure:"search_paths"`
		// Resolution configures the resolution engine.
		Resolution ResolutionConfig `json:"resolution" mapstructure:"resolution"`
		// Properties are the environment properties visible to condition
		// filters (overridable per property via MODWIRE_* variables).
		Properties map[string]string `json:"properties" mapstructure:"properties"`
		// UI configures terminal output.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// ResolutionConfig configures the resolution engine.
	ResolutionConfig struct {
		// Enabled is the global resolution switch (default: true).
		Enabled bool `json:"enabled" mapstructure:"enabled"`
		// Exclude lists module identifiers excluded from every trigger.
		Exclude []ModuleID `json:"exclude" mapstructure:"exclude"`
		// Capability overrides the manifest key queried for candidates.
		Capability CapabilityKey `json:"capability" mapstructure:"capability"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// String returns the string representation of the SearchPath.
func (p SearchPath) String() string { return string(p) }

// IsValid returns whether the SearchPath is valid.
// A valid path must be non-empty and not whitespace-only.
func (p SearchPath) IsValid() (bool, []error) {
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidSearchPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidSearchPathError.
func (e *InvalidSearchPathError) Error() string {
	return fmt.Sprintf("invalid search path %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidSearchPath for errors.Is() compatibility.
func (e *InvalidSearchPathError) Unwrap() error { return ErrInvalidSearchPath }

// String returns the string representation of the CapabilityKey.
func (k CapabilityKey) String() string { return string(k) }

// IsValid returns whether the CapabilityKey is valid.
// The zero value ("") is valid and means "use the default capability".
// Non-zero values must contain no whitespace.
func (k CapabilityKey) IsValid() (bool, []error) {
	if k == "" {
		return true, nil
	}
	if strings.TrimSpace(string(k)) == "" || strings.ContainsAny(string(k), " \t") {
		return false, []error{&InvalidCapabilityKeyError{Value: k}}
	}
	return true, nil
}

// Error implements the error interface for InvalidCapabilityKeyError.
func (e *InvalidCapabilityKeyError) Error() string {
	return fmt.Sprintf("invalid capability key %q: must be non-empty and contain no whitespace", e.Value)
}

// Unwrap returns ErrInvalidCapabilityKey for errors.Is() compatibility.
func (e *InvalidCapabilityKeyError) Unwrap() error { return ErrInvalidCapabilityKey }

// String returns the string representation of the ModuleID.
func (id ModuleID) String() string { return string(id) }

// IsValid returns whether the ModuleID is valid.
// A valid identifier must be non-empty and contain no whitespace.
func (id ModuleID) IsValid() (bool, []error) {
	if strings.TrimSpace(string(id)) == "" || strings.ContainsAny(string(id), " \t") {
		return false, []error{&InvalidModuleIDError{Value: id}}
	}
	return true, nil
}

// Error implements the error interface for InvalidModuleIDError.
func (e *InvalidModuleIDError) Error() string {
	return fmt.Sprintf("invalid module identifier %q: must be non-empty and contain no whitespace", e.Value)
}

// Unwrap returns ErrInvalidModuleID for errors.Is() compatibility.
func (e *InvalidModuleIDError) Unwrap() error { return ErrInvalidModuleID }

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// IsValid returns whether the ResolutionConfig has valid fields.
// It delegates to Capability.IsValid() and each Exclude entry's IsValid();
// the Enabled bool needs no validation.
func (c ResolutionConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Capability.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	for _, id := range c.Exclude {
		if valid, fieldErrs := id.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if len(errs) > 0 {
		return false, []error{&InvalidResolutionConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidResolutionConfigError.
func (e *InvalidResolutionConfigError) Error() string {
	return fmt.Sprintf("invalid resolution config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidResolutionConfig for errors.Is() compatibility.
func (e *InvalidResolutionConfigError) Unwrap() error { return ErrInvalidResolutionConfig }

// IsValid returns whether the UIConfig has valid fields.
// It delegates to ColorScheme.IsValid(); bool fields need no validation.
func (c UIConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidUIConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// IsValid returns whether the Config has valid fields.
// It delegates to each SearchPaths entry's IsValid(), Resolution.IsValid(),
// and UI.IsValid(). Properties carries free-form values and needs no
// validation.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	for _, path := range c.SearchPaths {
		if valid, fieldErrs := path.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if valid, fieldErrs := c.Resolution.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		SearchPaths: []SearchPath{},
		Resolution: ResolutionConfig{
			Enabled:    true,
			Exclude:    []ModuleID{},
			Capability: CapabilityKey(registry.DefaultCapability),
		},
		Properties: map[string]string{},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}
