// SPDX-License-Identifier: GPL-2.0-only

package micromamba

import "testing"

func TestPlatformFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		goos     string
		wantOK   bool
		wantSpec platformSpec
	}{
		{
			goos:   "linux",
			wantOK: true,
			wantSpec: platformSpec{
				BinaryName:   "micromamba",
				URLTag:       "linux",
				ArchiveEntry: "bin/micromamba",
			},
		},
		{
			goos:   "windows",
			wantOK: true,
			wantSpec: platformSpec{
				BinaryName:   "micromamba.exe",
				URLTag:       "win",
				ArchiveEntry: "Library/bin/micromamba.exe",
			},
		},
		{goos: "darwin", wantOK: false},
		{goos: "plan9", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			t.Parallel()

			spec, ok := platformFor(tt.goos)
			if ok != tt.wantOK {
				t.Fatalf("platformFor(%q) ok = %v, want %v", tt.goos, ok, tt.wantOK)
			}
			if ok && spec != tt.wantSpec {
				t.Errorf("platformFor(%q) = %+v, want %+v", tt.goos, spec, tt.wantSpec)
			}
		})
	}
}
