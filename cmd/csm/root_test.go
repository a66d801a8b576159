// SPDX-License-Identifier: GPL-2.0-only

package cmd

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/Checkmk/csm/internal/config"
	"github.com/Checkmk/csm/internal/mambarc"
	"github.com/Checkmk/csm/internal/testutil"
)

// setupTestHome points both the config lookup and os.UserHomeDir at a fresh
// temporary home, restoring the package globals afterwards.
func setupTestHome(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("redirects HOME, which os.UserHomeDir ignores on Windows")
	}

	home := t.TempDir()
	config.SetHomeDirOverride(home)
	t.Cleanup(config.Reset)
	t.Cleanup(testutil.SetHomeDir(t, home))

	prevVerbose, prevNoop, prevCfg := verbose, noopMode, cfg
	t.Cleanup(func() {
		verbose, noopMode, cfg = prevVerbose, prevNoop, prevCfg
	})
	verbose, noopMode, cfg = false, false, nil
	return home
}

func TestSetupLoadsDefaultsAndCreatesMambarc(t *testing.T) {
	home := setupTestHome(t)

	if err := setup(nil, nil); err != nil {
		t.Fatalf("setup() error = %v", err)
	}
	if cfg == nil {
		t.Fatal("setup() left cfg unset")
	}
	if !cfg.DownloadMicromamba {
		t.Error("setup() lost the download default")
	}
	if _, err := os.Stat(filepath.Join(home, mambarc.FileName)); err != nil {
		t.Errorf("setup() did not create %s: %v", mambarc.FileName, err)
	}
}

func TestSetupNoopFlagOverridesConfig(t *testing.T) {
	home := setupTestHome(t)

	if err := os.WriteFile(filepath.Join(home, config.FileName), []byte("noop_mode: false\n"), 0o644); err != nil {
		t.Fatalf("writing .csmrc: %v", err)
	}
	noopMode = true

	if err := setup(nil, nil); err != nil {
		t.Fatalf("setup() error = %v", err)
	}
	if !cfg.NoopMode {
		t.Error("--noop did not override the config file")
	}
	// Noop mode must also suppress the .mambarc creation.
	if _, err := os.Stat(filepath.Join(home, mambarc.FileName)); !os.IsNotExist(err) {
		t.Error("noop mode created " + mambarc.FileName)
	}
}

func TestSetupRejectsMalformedRC(t *testing.T) {
	home := setupTestHome(t)

	if err := os.WriteFile(filepath.Join(home, config.FileName), []byte("noop_mode: [broken\n"), 0o644); err != nil {
		t.Fatalf("writing .csmrc: %v", err)
	}

	if err := setup(nil, nil); err == nil {
		t.Error("setup() accepted a malformed " + config.FileName)
	}
}

func TestRootCommandWiring(t *testing.T) {
	t.Parallel()

	for _, path := range [][]string{
		{"env", "create"},
		{"env", "list"},
		{"env", "info"},
		{"robot", "new"},
		{"robot", "run"},
	} {
		c, _, err := rootCmd.Find(path)
		if err != nil {
			t.Errorf("rootCmd.Find(%v) error = %v", path, err)
			continue
		}
		if c.Name() != path[len(path)-1] {
			t.Errorf("rootCmd.Find(%v) = %q", path, c.Name())
		}
	}
}
