// SPDX-License-Identifier: GPL-2.0-only

package micromamba

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Checkmk/csm/internal/config"
)

// cacheDirName is the subdirectory of the platform cache root that holds the
// downloaded micromamba binary.
const cacheDirName = "csm"

// cacheDir resolves the directory the downloaded micromamba is persisted in,
// creating it if necessary. An explicit cfg.CacheDir wins (test isolation);
// otherwise the platform's per-user cache root is used. Creation is
// idempotent and safe to repeat on every invocation. The directory is shared
// between unrelated csm runs and is deliberately not locked.
func cacheDir(cfg *config.Config) (string, error) {
	dir := cfg.CacheDir
	if dir == "" {
		root, err := os.UserCacheDir()
		if err != nil {
			return "", fmt.Errorf("could not determine user cache directory: %w", err)
		}
		dir = filepath.Join(root, cacheDirName)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating cache directory %s: %w", dir, err)
	}
	return dir, nil
}
