// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"sync"
)

var (
	globalMu sync.Mutex
	// globalConfig caches the loaded configuration for the process.
	globalConfig *Config
	// configPath records where the cached configuration was loaded from.
	configPath string

	// configFileOverride forces loading from a specific file (set via the
	// --config flag).
	configFileOverride string
	// configDirOverride allows tests to override the config directory.
	// This is necessary because os.UserHomeDir() doesn't reliably respect
	// the HOME environment variable on all platforms (e.g., macOS in CI).
	configDirOverride string
)

// Load returns the process-wide configuration, loading it on first use.
// Subsequent calls return the cached value until an override clears it.
func Load() (*Config, error) {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalConfig != nil {
		return globalConfig, nil
	}

	cfg, resolved, err := loadWithOptions(context.Background(), LoadOptions{
		ConfigFilePath: configFileOverride,
	})
	if err != nil {
		return nil, err
	}

	globalConfig = cfg
	configPath = resolved
	return cfg, nil
}

// ResolvedPath returns the path the cached configuration was loaded from,
// empty when defaults are in effect or nothing has been loaded yet.
func ResolvedPath() string {
	globalMu.Lock()
	defer globalMu.Unlock()
	return configPath
}

// SetConfigFilePathOverride forces subsequent loads to read the given file
// and clears the cache.
func SetConfigFilePathOverride(path string) {
	globalMu.Lock()
	defer globalMu.Unlock()
	configFileOverride = path
	globalConfig = nil
	configPath = ""
}

// SetConfigDirOverride sets a custom config directory path.
// This is primarily intended for testing to bypass os.UserHomeDir() which
// doesn't reliably respect the HOME env var on all platforms (e.g., macOS in CI).
func SetConfigDirOverride(dir string) {
	globalMu.Lock()
	defer globalMu.Unlock()
	configDirOverride = dir
	globalConfig = nil
	configPath = ""
}

// Reset clears overrides and the cached configuration. Call from test
// cleanup to restore defaults.
func Reset() {
	globalMu.Lock()
	defer globalMu.Unlock()
	configFileOverride = ""
	configDirOverride = ""
	globalConfig = nil
	configPath = ""
}
