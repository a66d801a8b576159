// SPDX-License-Identifier: GPL-2.0-only

package config

// homeDirOverride allows tests to override the home directory used for the
// .csmrc lookup. This is necessary because os.UserHomeDir() doesn't reliably
// respect the HOME environment variable on all platforms (e.g., macOS in CI).
var homeDirOverride string

// SetHomeDirOverride sets a custom home directory path. Primarily intended
// for testing.
func SetHomeDirOverride(dir string) {
	homeDirOverride = dir
}

// Reset clears test overrides. Call from test cleanup to restore defaults.
func Reset() {
	homeDirOverride = ""
}
