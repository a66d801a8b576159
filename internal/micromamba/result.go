// SPDX-License-Identifier: GPL-2.0-only

package micromamba

import "os"

const (
	// StatusNoop indicates nothing was executed because noop mode is enabled.
	StatusNoop Status = iota
	// StatusCompleted indicates micromamba ran and exited; the child's own
	// exit status (zero or not) is carried in Result.ProcessState.
	StatusCompleted
	// StatusNotFound indicates the candidate path did not resolve to an
	// executable. This is the only status that continues the fallback chain.
	StatusNotFound
	// StatusExecutionFailed indicates a micromamba binary was found but could
	// not be spawned or awaited.
	StatusExecutionFailed
)

// failureExitCode is surfaced when no child exit code can be reported:
// the acquisition failed outright, or the child was killed by a signal.
const failureExitCode = 1

type (
	// Status is the closed set of outcomes of a micromamba invocation attempt.
	Status int

	// Result is the outcome of trying to shell out to micromamba. It would be
	// nicer to accumulate the errors of every failed fallback attempt, but we
	// follow the simpler discard policy and log each error where it is
	// dropped; only the final status survives in the return value.
	Result struct {
		Status Status
		// ProcessState is set only for StatusCompleted.
		ProcessState *os.ProcessState
	}
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusNoop:
		return "noop"
	case StatusCompleted:
		return "completed"
	case StatusNotFound:
		return "not found"
	case StatusExecutionFailed:
		return "execution failed"
	}
	return "unknown"
}

// NewNoopResult creates a Result for a run suppressed by noop mode.
func NewNoopResult() Result {
	return Result{Status: StatusNoop}
}

// NewCompletedResult creates a Result for a child process that ran and exited.
func NewCompletedResult(state *os.ProcessState) Result {
	return Result{Status: StatusCompleted, ProcessState: state}
}

// NewNotFoundResult creates a Result for a candidate path that does not
// resolve to an executable.
func NewNotFoundResult() Result {
	return Result{Status: StatusNotFound}
}

// NewExecutionFailedResult creates a Result for a binary that exists but
// could not be run.
func NewExecutionFailedResult() Result {
	return Result{Status: StatusExecutionFailed}
}

// ExitCode maps the Result onto a process exit code for the csm process
// itself. A completed run forwards the child's own exit code, falling back to
// a fixed failure code when the child was terminated by a signal and has no
// code to report. Noop mode is a success; everything else is a failure.
func (r Result) ExitCode() int {
	switch r.Status {
	case StatusNoop:
		return 0
	case StatusCompleted:
		if r.ProcessState == nil {
			return failureExitCode
		}
		if code := r.ProcessState.ExitCode(); code >= 0 {
			return code
		}
		// Killed by a signal: ExitCode() reports -1, which cannot be
		// forwarded as-is.
		return failureExitCode
	}
	return failureExitCode
}
