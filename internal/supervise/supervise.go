// Package supervise launches a capture invocation as a child process and
// classifies its termination into an exhaustive, testable outcome.
package supervise

import (
	"context"
	"errors"
	"io"
	"os/exec"
)

// Outcome tags the three possible results of supervising a capture child.
type Outcome int

const (
	// OutcomeSuccess means the child exited zero; the artifact contract
	// holds.
	OutcomeSuccess Outcome = iota
	// OutcomeFailure means the child started but exited non-zero. No
	// retry or cleanup is attempted.
	OutcomeFailure
	// OutcomeLaunchError means the child could not start at all, so no
	// diagnostics from inside the session exist.
	OutcomeLaunchError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	case OutcomeLaunchError:
		return "launch-error"
	default:
		return "unknown"
	}
}

// Result is the tagged termination status of one supervised invocation.
type Result struct {
	Outcome Outcome
	// Code is the child's exit status; meaningful only for OutcomeFailure.
	Code int
	// Err is the start failure; meaningful only for OutcomeLaunchError.
	Err error
}

// Launch runs bin with args, streaming the child's output to stdout and
// stderr so session progress is visible live, and waits for completion.
// The exit status is the sole success signal; there is no retry.
func Launch(ctx context.Context, bin string, args []string, stdout, stderr io.Writer) Result {
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		return Result{Outcome: OutcomeLaunchError, Err: err}
	}

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Result{Outcome: OutcomeFailure, Code: exitErr.ExitCode()}
		}
		// Wait can fail without an exit status (e.g. I/O plumbing); the
		// artifact contract does not hold, so treat it like a start
		// failure rather than inventing an exit code.
		return Result{Outcome: OutcomeLaunchError, Err: err}
	}
	return Result{Outcome: OutcomeSuccess}
}
