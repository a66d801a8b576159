// SPDX-License-Identifier: GPL-2.0-only

package micromamba

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/Checkmk/csm/internal/config"
)

func TestCacheDirExplicitOverride(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.CacheDir = filepath.Join(t.TempDir(), "nested", "cache")

	dir, err := cacheDir(cfg)
	if err != nil {
		t.Fatalf("cacheDir() error = %v", err)
	}
	if dir != cfg.CacheDir {
		t.Errorf("cacheDir() = %q, want the configured %q", dir, cfg.CacheDir)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("configured cache dir was not created: %v", err)
	}
	if !info.IsDir() {
		t.Errorf("%q is not a directory", dir)
	}
}

func TestCacheDirIsIdempotent(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.CacheDir = filepath.Join(t.TempDir(), "cache")

	first, err := cacheDir(cfg)
	if err != nil {
		t.Fatalf("first cacheDir() error = %v", err)
	}
	second, err := cacheDir(cfg)
	if err != nil {
		t.Fatalf("second cacheDir() error = %v", err)
	}
	if first != second {
		t.Errorf("cacheDir() not stable: %q then %q", first, second)
	}
}

func TestCacheDirDefaultsToUserCache(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("exercises the XDG cache layout")
	}

	root := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", root)

	dir, err := cacheDir(config.Default())
	if err != nil {
		t.Fatalf("cacheDir() error = %v", err)
	}
	if want := filepath.Join(root, cacheDirName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}
