// SPDX-License-Identifier: GPL-2.0-only

package cmd

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitErrorMessage(t *testing.T) {
	t.Parallel()

	withCause := &ExitError{Code: 3, Err: errors.New("underlying failure")}
	if got := withCause.Error(); got != "underlying failure" {
		t.Errorf("Error() = %q, want the cause's message", got)
	}

	bare := &ExitError{Code: 3}
	if got := bare.Error(); got != "exit status 3" {
		t.Errorf("Error() = %q, want %q", got, "exit status 3")
	}
}

func TestExitErrorUnwrapsThroughWrapping(t *testing.T) {
	t.Parallel()

	cause := errors.New("root cause")
	err := fmt.Errorf("env create: %w", &ExitError{Code: 7, Err: cause})

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatal("errors.As failed to find the ExitError")
	}
	if exitErr.Code != 7 {
		t.Errorf("Code = %d, want 7", exitErr.Code)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is failed to reach the cause through ExitError")
	}
}
