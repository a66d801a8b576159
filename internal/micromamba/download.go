// SPDX-License-Identifier: GPL-2.0-only

package micromamba

import (
	"archive/tar"
	"compress/bzip2"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"

	"github.com/Checkmk/csm/internal/config"
)

const (
	// defaultBaseURL is the official micromamba release endpoint.
	defaultBaseURL = "https://micro.mamba.pm"

	// defaultArch is the architecture tag in the download URL.
	// TODO: Do we need to worry about other architectures? (aarch64)
	defaultArch = "64"

	// maxBinaryBytes is the upper bound on the extracted binary size (500 MB).
	// Prevents decompression bombs when extracting micromamba from the archive.
	maxBinaryBytes = 500 << 20
)

var (
	// ErrUnsupportedPlatform indicates micromamba is not published for the
	// running OS.
	ErrUnsupportedPlatform = errors.New("incompatible OS for micromamba download")

	// ErrEntryNotInArchive indicates the downloaded archive holds no
	// micromamba binary at the expected entry path.
	ErrEntryNotInArchive = errors.New("micromamba binary not found in downloaded archive")

	// ErrDownloadDisabled indicates a download would have been needed but is
	// switched off by configuration. Kept distinct from ErrTransportFailure
	// so deterministic tests can tell "disabled" from "failed".
	ErrDownloadDisabled = errors.New("micromamba download disabled by configuration")

	// ErrTransportFailure is the sentinel wrapped by TransportError.
	ErrTransportFailure = errors.New("failed to download micromamba")

	// ErrIOFailure is the sentinel wrapped by IOError.
	ErrIOFailure = errors.New("failed to store micromamba")
)

type (
	// TransportError reports a failed HTTP exchange with the download host.
	// It wraps ErrTransportFailure for errors.Is classification.
	TransportError struct {
		URL        string
		StatusCode int // zero when the request itself failed
		Err        error
	}

	// IOError reports a filesystem failure while caching the binary.
	// It wraps ErrIOFailure for errors.Is classification.
	IOError struct {
		Op  string
		Err error
	}

	// Downloader fetches the micromamba release archive for the current OS
	// and populates the cache with the extracted binary. The zero value is
	// not usable; construct with NewDownloader.
	Downloader struct {
		client  *http.Client
		baseURL string
		arch    string
		logger  *log.Logger
	}

	// DownloaderOption configures a Downloader during construction.
	DownloaderOption func(*Downloader)
)

// Error formats the transport failure with the target URL for diagnosis.
func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to download micromamba from %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("failed to download micromamba from %s: %v", e.URL, e.Err)
}

// Unwrap returns ErrTransportFailure so callers can use errors.Is.
func (e *TransportError) Unwrap() error { return ErrTransportFailure }

// Error formats the filesystem failure with the operation that hit it.
func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns ErrIOFailure so callers can use errors.Is.
func (e *IOError) Unwrap() error { return ErrIOFailure }

// WithDownloadHTTPClient sets a custom HTTP client, useful for tests or proxy
// configurations.
func WithDownloadHTTPClient(c *http.Client) DownloaderOption {
	return func(d *Downloader) {
		d.client = c
	}
}

// WithDownloadBaseURL overrides the download host, primarily for test servers.
func WithDownloadBaseURL(base string) DownloaderOption {
	return func(d *Downloader) {
		d.baseURL = base
	}
}

// WithDownloadArch overrides the architecture tag in the download URL.
func WithDownloadArch(arch string) DownloaderOption {
	return func(d *Downloader) {
		d.arch = arch
	}
}

// WithDownloadLogger overrides the logger used for download progress.
func WithDownloadLogger(l *log.Logger) DownloaderOption {
	return func(d *Downloader) {
		d.logger = l
	}
}

// NewDownloader creates a Downloader with the official endpoint and the
// default 64-bit architecture tag. The default HTTP client carries no
// timeout: the download runs to natural completion or OS-level failure.
func NewDownloader(opts ...DownloaderOption) *Downloader {
	d := &Downloader{
		client:  http.DefaultClient,
		baseURL: defaultBaseURL,
		arch:    defaultArch,
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Ensure returns the path to a micromamba binary in the cache directory,
// downloading and extracting it first if it is not already there. Presence
// alone counts as a cache hit; the content is not revalidated.
func (d *Downloader) Ensure(ctx context.Context, cfg *config.Config) (string, error) {
	spec, ok := currentPlatform()
	if !ok {
		return "", ErrUnsupportedPlatform
	}

	dir, err := cacheDir(cfg)
	if err != nil {
		return "", &IOError{Op: "resolving cache directory", Err: err}
	}
	binPath := filepath.Join(dir, spec.BinaryName)

	if _, err := os.Stat(binPath); err == nil {
		d.logger.Debug("Using cached micromamba", "path", binPath)
		return binPath, nil
	}

	if !cfg.DownloadMicromamba {
		d.logger.Info("Wanted to download micromamba, but downloads are disabled")
		return "", ErrDownloadDisabled
	}

	return d.download(ctx, spec, binPath)
}

// download fetches the release archive and writes the single expected entry
// to binPath with owner-executable permission.
func (d *Downloader) download(ctx context.Context, spec platformSpec, binPath string) (string, error) {
	url := fmt.Sprintf("%s/api/micromamba/%s-%s/latest", d.baseURL, spec.URLTag, d.arch)
	d.logger.Debug("Going to download", "url", url)
	d.logger.Info("micromamba was not found on path; downloading it now")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", &TransportError{URL: url, Err: err}
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return "", &TransportError{URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }() // read-only HTTP response body
	if resp.StatusCode != http.StatusOK {
		return "", &TransportError{URL: url, StatusCode: resp.StatusCode}
	}

	// The archive may be tens of megabytes; stream it through the
	// decompressor instead of buffering it.
	d.logger.Debug("Download completed, streaming through bzip2 decoder")
	tr := tar.NewReader(bzip2.NewReader(resp.Body))

	d.logger.Debug("Looking for entry in the tarfile", "entry", spec.ArchiveEntry)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return "", ErrEntryNotInArchive
		}
		if err != nil {
			return "", &IOError{Op: "reading archive entry", Err: err}
		}
		if hdr.Typeflag != tar.TypeReg || path.Clean(hdr.Name) != spec.ArchiveEntry {
			continue
		}

		d.logger.Debug("Found it, writing it to disk", "path", binPath)
		if err := writeBinary(binPath, tr); err != nil {
			return "", err
		}
		return binPath, nil
	}
}

// writeBinary copies the archive entry to disk and marks it executable by the
// owner on platforms with a POSIX permission model. A partially written file
// is removed on failure.
func writeBinary(binPath string, r io.Reader) error {
	out, err := os.Create(binPath)
	if err != nil {
		return &IOError{Op: "creating " + binPath, Err: err}
	}
	if _, err := io.Copy(out, io.LimitReader(r, maxBinaryBytes)); err != nil {
		_ = out.Close()
		_ = os.Remove(binPath)
		return &IOError{Op: "writing " + binPath, Err: err}
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(binPath)
		return &IOError{Op: "closing " + binPath, Err: err}
	}
	if runtime.GOOS != "windows" {
		if err := os.Chmod(binPath, 0o755); err != nil {
			return &IOError{Op: "marking " + binPath + " executable", Err: err}
		}
	}
	return nil
}
