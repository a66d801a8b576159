// SPDX-License-Identifier: GPL-2.0-only

// Package mambarc creates a default ~/.mambarc so micromamba picks up the
// site's proxy settings without manual setup.
package mambarc

import (
	_ "embed"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Checkmk/csm/internal/config"
)

// FileName is the micromamba configuration file created in the user's home
// directory (%UserProfile%\.mambarc on Windows).
const FileName = ".mambarc"

//go:embed templates/mambarc
var defaultMambarc string

// EnsureDefault creates home/.mambarc from the embedded template if it does
// not exist. An existing file is never touched, and noop mode only reports
// what would have been created.
func EnsureDefault(cfg *config.Config, home string) error {
	path := filepath.Join(home, FileName)

	if cfg.NoopMode {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			log.Info("Would create", "path", path)
		}
		return nil
	}

	// O_EXCL makes creation race-free: whoever loses the race leaves the
	// winner's file alone.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			log.Debug("File already exists, not creating", "path", path)
			return nil
		}
		return err
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteString(strings.TrimLeft(defaultMambarc, "\n")); err != nil {
		return err
	}
	return nil
}
