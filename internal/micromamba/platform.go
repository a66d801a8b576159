// SPDX-License-Identifier: GPL-2.0-only

package micromamba

import (
	"path"
	"runtime"
)

type (
	// platformSpec groups the three OS-dependent values of a micromamba
	// download so they cannot drift apart across separate conditionals: the
	// filename the binary is cached under, the platform tag in the download
	// URL, and the entry path inside the release archive.
	platformSpec struct {
		// BinaryName is the cached filename, e.g. "micromamba.exe" on Windows.
		BinaryName string
		// URLTag is the OS half of the "{os}-{arch}" URL segment.
		URLTag string
		// ArchiveEntry is the slash-separated tar entry holding the binary.
		ArchiveEntry string
	}
)

// platformSpecs maps GOOS values to their micromamba download parameters.
// An absent key means the platform has no official micromamba archive.
var platformSpecs = map[string]platformSpec{
	"linux": {
		BinaryName:   "micromamba",
		URLTag:       "linux",
		ArchiveEntry: path.Join("bin", "micromamba"),
	},
	"windows": {
		BinaryName:   "micromamba.exe",
		URLTag:       "win",
		ArchiveEntry: path.Join("Library", "bin", "micromamba.exe"),
	},
}

// currentPlatform returns the download parameters for the running OS.
// The second return is false on platforms micromamba is not published for;
// this is a static table lookup, not a runtime probe.
func currentPlatform() (platformSpec, bool) {
	return platformFor(runtime.GOOS)
}

// platformFor looks up the download parameters for a GOOS value.
func platformFor(goos string) (platformSpec, bool) {
	spec, ok := platformSpecs[goos]
	return spec, ok
}
