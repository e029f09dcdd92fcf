// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/modwire/modwire/internal/testutil"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.SearchPaths) != 0 {
		t.Errorf("expected default search paths to be empty, got %v", cfg.SearchPaths)
	}

	if !cfg.Resolution.Enabled {
		t.Error("expected resolution to be enabled by default")
	}

	if len(cfg.Resolution.Exclude) != 0 {
		t.Errorf("expected default excludes to be empty, got %v", cfg.Resolution.Exclude)
	}

	if cfg.Resolution.Capability != "io.modwire.module" {
		t.Errorf("expected default capability to be io.modwire.module, got %s", cfg.Resolution.Capability)
	}

	if cfg.UI.ColorScheme != "auto" {
		t.Errorf("expected default color scheme to be auto, got %s", cfg.UI.ColorScheme)
	}

	if cfg.UI.Verbose {
		t.Error("expected default verbose to be false")
	}
}

func TestConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG lookup only applies on linux")
	}

	testXDGPath := "/tmp/test-xdg-config"
	restoreXDG := testutil.MustSetenv(t, "XDG_CONFIG_HOME", testXDGPath)
	defer restoreXDG()

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}

	expected := filepath.Join(testXDGPath, AppName)
	if dir != expected {
		t.Errorf("ConfigDir() = %s, want %s", dir, expected)
	}

	// With XDG_CONFIG_HOME unset the fallback is ~/.config/modwire.
	restoreUnset := testutil.MustUnsetenv(t, "XDG_CONFIG_HOME")
	defer restoreUnset()
	dir, err = ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() returned error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected = filepath.Join(home, ".config", AppName)
	if dir != expected {
		t.Errorf("ConfigDir() = %s, want %s", dir, expected)
	}
}

func TestLoadWithOptions_NoConfigFileUsesDefaults(t *testing.T) {
	cfg, resolved, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigDirPath: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("loadWithOptions() returned error: %v", err)
	}
	if resolved != "" {
		t.Errorf("expected no resolved path, got %q", resolved)
	}
	if !cfg.Resolution.Enabled {
		t.Error("expected defaults to apply when no config file exists")
	}
}

func TestLoadWithOptions_ReadsCUEConfig(t *testing.T) {
	dir := t.TempDir()
	content := `
search_paths: ["/opt/modules"]

resolution: {
	enabled: false
	exclude: ["com.example.legacy"]
	capability: "io.modwire.module"
}

properties: {
	"server.mode": "embedded"
}

ui: {
	color_scheme: "dark"
	verbose:      true
}
`
	testutil.MustWriteFile(t, filepath.Join(dir, "config.cue"), []byte(content), 0o644)

	cfg, resolved, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("loadWithOptions() returned error: %v", err)
	}
	if resolved != filepath.Join(dir, "config.cue") {
		t.Errorf("unexpected resolved path %q", resolved)
	}
	if len(cfg.SearchPaths) != 1 || cfg.SearchPaths[0] != "/opt/modules" {
		t.Errorf("unexpected search paths %v", cfg.SearchPaths)
	}
	if cfg.Resolution.Enabled {
		t.Error("expected resolution.enabled to be false")
	}
	if len(cfg.Resolution.Exclude) != 1 || cfg.Resolution.Exclude[0] != "com.example.legacy" {
		t.Errorf("unexpected excludes %v", cfg.Resolution.Exclude)
	}
	if cfg.Properties["server.mode"] != "embedded" {
		t.Errorf("unexpected properties %v", cfg.Properties)
	}
	if cfg.UI.ColorScheme != ColorSchemeDark || !cfg.UI.Verbose {
		t.Errorf("unexpected UI config %+v", cfg.UI)
	}
}

func TestLoadWithOptions_RejectsInvalidCUE(t *testing.T) {
	dir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(dir, "config.cue"), []byte(`ui: color_scheme: "neon"`), 0o644)

	_, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err == nil {
		t.Fatal("expected an error for a value outside the schema")
	}
	if !strings.Contains(err.Error(), "color_scheme") {
		t.Errorf("expected the error to name the offending field, got: %v", err)
	}
}

func TestLoadWithOptions_RejectsDuplicateSearchPaths(t *testing.T) {
	dir := t.TempDir()
	testutil.MustWriteFile(t, filepath.Join(dir, "config.cue"),
		[]byte(`search_paths: ["/opt/modules", "/opt/modules/"]`), 0o644)

	_, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err == nil {
		t.Fatal("expected an error for duplicate search paths")
	}
	if !strings.Contains(err.Error(), "duplicate path") {
		t.Errorf("expected a duplicate path error, got: %v", err)
	}
}

func TestLoadWithOptions_MissingExplicitFileFails(t *testing.T) {
	_, _, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigFilePath: filepath.Join(t.TempDir(), "nope.cue"),
	})
	if err == nil {
		t.Fatal("expected an error when the explicit config file is missing")
	}
}

func TestLoadWithOptions_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := loadWithOptions(ctx, LoadOptions{ConfigDirPath: t.TempDir()})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestGenerateCUE_RoundTrips(t *testing.T) {
	dir := t.TempDir()
	want := DefaultConfig()
	want.SearchPaths = []SearchPath{"/opt/modules"}
	want.Resolution.Exclude = []ModuleID{"com.example.legacy"}
	want.Properties = map[string]string{"db.url": "postgres://localhost"}
	want.UI.Verbose = true

	testutil.MustWriteFile(t, filepath.Join(dir, "config.cue"), []byte(GenerateCUE(want)), 0o644)

	got, _, err := loadWithOptions(context.Background(), LoadOptions{ConfigDirPath: dir})
	if err != nil {
		t.Fatalf("loadWithOptions() returned error: %v", err)
	}
	if got.SearchPaths[0] != want.SearchPaths[0] {
		t.Errorf("search paths did not round-trip: %v", got.SearchPaths)
	}
	if got.Resolution.Exclude[0] != want.Resolution.Exclude[0] {
		t.Errorf("excludes did not round-trip: %v", got.Resolution.Exclude)
	}
	if got.Properties["db.url"] != want.Properties["db.url"] {
		t.Errorf("properties did not round-trip: %v", got.Properties)
	}
	if !got.UI.Verbose {
		t.Error("ui.verbose did not round-trip")
	}
}
