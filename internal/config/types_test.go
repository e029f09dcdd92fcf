// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"testing"
)

func TestSearchPath_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		path  SearchPath
		valid bool
	}{
		{name: "absolute path", path: "/opt/modules", valid: true},
		{name: "relative path", path: "modules", valid: true},
		{name: "empty", path: "", valid: false},
		{name: "whitespace only", path: "   ", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			valid, errs := tt.path.IsValid()
			if valid != tt.valid {
				t.Errorf("SearchPath(%q).IsValid() = %v, want %v", tt.path, valid, tt.valid)
			}
			if !valid && !errors.Is(errs[0], ErrInvalidSearchPath) {
				t.Errorf("error does not wrap ErrInvalidSearchPath: %v", errs[0])
			}
		})
	}
}

func TestCapabilityKey_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		key   CapabilityKey
		valid bool
	}{
		{name: "zero value means default", key: "", valid: true},
		{name: "dotted key", key: "io.modwire.module", valid: true},
		{name: "whitespace only", key: "  ", valid: false},
		{name: "embedded space", key: "io.modwire module", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			valid, errs := tt.key.IsValid()
			if valid != tt.valid {
				t.Errorf("CapabilityKey(%q).IsValid() = %v, want %v", tt.key, valid, tt.valid)
			}
			if !valid && !errors.Is(errs[0], ErrInvalidCapabilityKey) {
				t.Errorf("error does not wrap ErrInvalidCapabilityKey: %v", errs[0])
			}
		})
	}
}

func TestModuleID_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		id    ModuleID
		valid bool
	}{
		{name: "dotted identifier", id: "com.example.data", valid: true},
		{name: "empty", id: "", valid: false},
		{name: "embedded tab", id: "com.example\tdata", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			valid, errs := tt.id.IsValid()
			if valid != tt.valid {
				t.Errorf("ModuleID(%q).IsValid() = %v, want %v", tt.id, valid, tt.valid)
			}
			if !valid && !errors.Is(errs[0], ErrInvalidModuleID) {
				t.Errorf("error does not wrap ErrInvalidModuleID: %v", errs[0])
			}
		})
	}
}

func TestColorScheme_IsValid(t *testing.T) {
	t.Parallel()

	for _, cs := range []ColorScheme{ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight} {
		if valid, _ := cs.IsValid(); !valid {
			t.Errorf("expected %q to be valid", cs)
		}
	}

	valid, errs := ColorScheme("neon").IsValid()
	if valid {
		t.Error("expected neon to be invalid")
	}
	if !errors.Is(errs[0], ErrInvalidColorScheme) {
		t.Errorf("error does not wrap ErrInvalidColorScheme: %v", errs[0])
	}
}

func TestConfig_IsValidCollectsFieldErrors(t *testing.T) {
	t.Parallel()

	cfg := Config{
		SearchPaths: []SearchPath{"", "/opt/modules"},
		Resolution: ResolutionConfig{
			Enabled: true,
			Exclude: []ModuleID{"", "com.example.data"},
		},
		UI: UIConfig{ColorScheme: "neon"},
	}

	valid, errs := cfg.IsValid()
	if valid {
		t.Fatal("expected the config to be invalid")
	}
	if len(errs) != 1 {
		t.Fatalf("expected a single wrapping error, got %d", len(errs))
	}
	if !errors.Is(errs[0], ErrInvalidConfig) {
		t.Errorf("error does not wrap ErrInvalidConfig: %v", errs[0])
	}

	var cfgErr *InvalidConfigError
	if !errors.As(errs[0], &cfgErr) {
		t.Fatal("expected a *InvalidConfigError")
	}
	// Offending fields: one search path, one exclude (wrapped by the
	// resolution error), one color scheme (wrapped by the UI error).
	if len(cfgErr.FieldErrors) != 3 {
		t.Errorf("expected 3 field errors, got %d: %v", len(cfgErr.FieldErrors), cfgErr.FieldErrors)
	}
}

func TestDefaultConfig_IsValid(t *testing.T) {
	t.Parallel()

	if valid, errs := DefaultConfig().IsValid(); !valid {
		t.Errorf("expected the default config to be valid, got %v", errs)
	}
}
