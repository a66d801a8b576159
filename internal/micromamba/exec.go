// SPDX-License-Identifier: GPL-2.0-only

package micromamba

import (
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// execute spawns the command and blocks until the child terminates.
//
// The classification matters to the caller: StatusNotFound is the single
// signal that the fallback chain may continue, so only genuine "no such
// executable" conditions map to it. A binary that exists but cannot be
// spawned or awaited (permission denied, exec format error, a wait failure)
// is StatusExecutionFailed. The child's own exit code is never interpreted as
// a failure of the executor; a non-zero exit is still StatusCompleted.
func (r *Runner) execute(cmd *exec.Cmd) Result {
	if err := cmd.Start(); err != nil {
		if isNotFound(err) {
			// exec.LookPath skips candidates without the executable bit, so a
			// present-but-unrunnable file on $PATH also surfaces as not found.
			// Distinguish it: the user has a broken install and needs to see
			// that, not a confusing download attempt.
			if shadow := findNonExecutable(cmd.Args[0]); shadow != "" {
				r.logger.Error("We found a micromamba binary, but it is not executable", "path", shadow)
				return NewExecutionFailedResult()
			}
			r.logger.Debug("Could not run micromamba at specified path", "err", err)
			return NewNotFoundResult()
		}
		r.logger.Error("We found a micromamba binary, but failed to run it")
		r.logger.Error("Error was", "err", err)
		return NewExecutionFailedResult()
	}

	err := cmd.Wait()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		r.logger.Debug("micromamba exited", "status", cmd.ProcessState.String())
		return NewCompletedResult(cmd.ProcessState)
	case errors.As(err, &exitErr):
		// The child ran to completion with a non-zero status; that is its
		// business, not an executor failure.
		r.logger.Debug("micromamba exited", "status", exitErr.ProcessState.String())
		return NewCompletedResult(exitErr.ProcessState)
	default:
		r.logger.Error("We found a micromamba binary, but failed to wait for it to run")
		r.logger.Error("Error was", "err", err)
		return NewExecutionFailedResult()
	}
}

// isNotFound reports whether a spawn error means the candidate executable
// does not exist: a failed $PATH lookup for a bare name, or a dangling
// absolute path.
func isNotFound(err error) bool {
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist)
}

// findNonExecutable scans $PATH for a regular file with the given bare name
// that lacks execute permission, returning its path or "". Windows has no
// execute bit and bare names with a path separator never hit $PATH, so both
// cases report nothing.
func findNonExecutable(name string) string {
	if runtime.GOOS == "windows" || strings.ContainsRune(name, os.PathSeparator) {
		return ""
	}
	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		if dir == "" {
			dir = "."
		}
		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if info.Mode().Perm()&0o111 == 0 {
			return candidate
		}
	}
	return ""
}
