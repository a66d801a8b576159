// SPDX-License-Identifier: GPL-2.0-only

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// FileName is the name of the per-user configuration file, looked up in the
// user's home directory (%UserProfile% on Windows).
const FileName = ".csmrc"

// Config holds the per-user settings read from ~/.csmrc. It is read once at
// startup and passed by pointer into every operation that needs it; nothing
// below the CLI layer mutates it.
type Config struct {
	// MambaRootPrefix overrides $MAMBA_ROOT_PREFIX when shelling out to
	// micromamba. Empty means the child inherits the parent's value.
	MambaRootPrefix string `mapstructure:"mamba_root_prefix"`

	// NoopMode suppresses all side-effecting execution; csm only reports
	// what it would have done.
	NoopMode bool `mapstructure:"noop_mode"`

	// CacheDir overrides the micromamba cache directory, primarily for
	// test isolation.
	CacheDir string `mapstructure:"cache_dir"`

	// DownloadMicromamba controls whether a missing micromamba may be
	// downloaded. Disabled in tests that must stay off the network.
	DownloadMicromamba bool `mapstructure:"download_micromamba"`
}

// Default returns the configuration used when no ~/.csmrc exists.
func Default() *Config {
	return &Config{
		DownloadMicromamba: true,
	}
}

// Load reads the user's ~/.csmrc if it exists, merging it over the defaults.
// A missing home directory or a missing file yields the defaults; a file that
// exists but cannot be read or parsed is an error.
func Load() (*Config, error) {
	home, err := homeDir()
	if err != nil {
		log.Debug("No home directory, using default config", "err", err)
		return Default(), nil
	}
	return loadFile(filepath.Join(home, FileName))
}

// loadFile reads and parses a single csmrc file, merging it over the defaults.
func loadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Debug("No .csmrc found, using defaults")
		return Default(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	defaults := Default()
	v.SetDefault("mamba_root_prefix", defaults.MambaRootPrefix)
	v.SetDefault("noop_mode", defaults.NoopMode)
	v.SetDefault("cache_dir", defaults.CacheDir)
	v.SetDefault("download_micromamba", defaults.DownloadMicromamba)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	log.Debug("Loaded config", "path", path, "config", fmt.Sprintf("%+v", *cfg))
	return cfg, nil
}

// homeDir resolves the current user's home directory, honoring the test
// override seam in global.go.
func homeDir() (string, error) {
	if homeDirOverride != "" {
		return homeDirOverride, nil
	}
	return os.UserHomeDir()
}
