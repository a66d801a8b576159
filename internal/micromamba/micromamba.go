// SPDX-License-Identifier: GPL-2.0-only

package micromamba

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/Checkmk/csm/internal/config"
)

// binaryName is the bare command name resolved via the system $PATH.
// exec.LookPath appends the platform executable extension on Windows.
const binaryName = "micromamba"

type (
	// Runner drives the fallback protocol that obtains a working micromamba
	// and executes it. Construct with NewRunner.
	Runner struct {
		downloader *Downloader
		logger     *log.Logger

		stdin  io.Reader
		stdout io.Writer
		stderr io.Writer
	}

	// RunnerOption configures a Runner during construction.
	RunnerOption func(*Runner)
)

// WithDownloader overrides the Downloader used for the cache fallback stage,
// useful for pointing tests at a local HTTP server.
func WithDownloader(d *Downloader) RunnerOption {
	return func(r *Runner) {
		r.downloader = d
	}
}

// WithLogger overrides the logger used for stage transitions.
func WithLogger(l *log.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = l
	}
}

// WithStdio redirects the child process's standard streams, primarily for
// tests that capture micromamba's output.
func WithStdio(stdin io.Reader, stdout, stderr io.Writer) RunnerOption {
	return func(r *Runner) {
		r.stdin = stdin
		r.stdout = stdout
		r.stderr = stderr
	}
}

// NewRunner creates a Runner wired to the real endpoint, the default logger,
// and the process's own standard streams.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		logger: log.Default(),
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.downloader == nil {
		r.downloader = NewDownloader(WithDownloadLogger(r.logger))
	}
	return r
}

// Run obtains a working micromamba and executes it with the given arguments,
// blocking until the child exits.
//
// The stages, in order:
//
//  1. If noop mode is on, report the command that would have run and stop.
//  2. Run the micromamba found in $PATH. A completed run is final, and so is
//     an execution failure: if something named micromamba is on $PATH but
//     cannot run, the user has a broken install and needs to see that error,
//     not a confusing download attempt.
//  3. Otherwise fall back to the user cache directory, downloading micromamba
//     into it first when needed. (We cannot rely on this, the cache may be
//     mounted noexec or similar, but we try.)
//  4. Run the cached binary. Anything but a completed run is terminal.
//
// A user- or system-managed install is preferred over the tool-managed copy
// because it respects explicit version pinning; within the fallback, a cached
// copy is preferred over network cost. Errors discarded between stages are
// logged at the point of discard.
func (r *Runner) Run(ctx context.Context, cfg *config.Config, args []string) Result {
	cmd := r.command(ctx, binaryName, cfg, args)

	if cfg.NoopMode {
		// command() already logged what we would have run.
		return NewNoopResult()
	}

	switch res := r.execute(cmd); res.Status {
	case StatusCompleted:
		r.logger.Debug("Ran micromamba found in $PATH")
		return res
	case StatusExecutionFailed:
		r.logger.Debug("micromamba found in $PATH could not be run, aborting")
		return res
	}

	r.logger.Debug("micromamba not found in $PATH, falling back to cache")
	binPath, err := r.downloader.Ensure(ctx, cfg)
	if err != nil {
		r.logger.Error("Could not download micromamba", "err", err)
		return NewExecutionFailedResult()
	}

	cmd = r.command(ctx, binPath, cfg, args)
	switch res := r.execute(cmd); res.Status {
	case StatusCompleted:
		r.logger.Debug("Ran downloaded/cached micromamba", "path", binPath)
		return res
	case StatusExecutionFailed:
		r.logger.Debug("Downloaded micromamba could not be run", "path", binPath)
	}

	r.logger.Error("Could not find a suitable micromamba binary to run")
	r.logger.Error("Please install micromamba manually, ensure it is executable, and place it somewhere in $PATH")
	return NewExecutionFailedResult()
}
