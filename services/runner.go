package services

import (
	"context"
	"droboapp-panel/utils/logger"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"
)

const (
	// waitDelay bounds how long Wait lingers after the command was killed
	waitDelay = time.Second
	// maxOutput caps the captured command output
	maxOutput = 64 * 1024
)

// RunResult is what an external command left behind
type RunResult struct {
	ExitCode int
	Output   string
	Duration time.Duration
}

// ProcessRunner runs an external command to completion
type ProcessRunner interface {
	Run(ctx context.Context, name string, args ...string) (*RunResult, error)
}

// ExecRunner runs commands with os/exec
type ExecRunner struct {
	timeout time.Duration
	logger  logger.Logger
}

// NewExecRunner creates a runner. A zero timeout leaves commands unbounded.
func NewExecRunner(timeout time.Duration, log logger.Logger) *ExecRunner {
	return &ExecRunner{
		timeout: timeout,
		logger:  log,
	}
}

// Run executes name with args and waits for it to exit. A command that ran and
// exited non-zero is not an error; its code is reported in the result.
//
// Output goes to an unlinked temp file rather than a pipe: daemons started by
// the command inherit it, and Wait must not block until they exit. On timeout
// the whole process group is killed.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (*RunResult, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	out, err := os.CreateTemp("", "droboapp-cmd-*.log")
	if err != nil {
		return &RunResult{ExitCode: -1}, fmt.Errorf("failed to create output file: %w", err)
	}
	os.Remove(out.Name())
	defer out.Close()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = out
	cmd.Stderr = out
	cmd.WaitDelay = waitDelay
	setProcessGroup(cmd)

	start := time.Now()
	err = cmd.Run()
	result := &RunResult{
		ExitCode: 0,
		Output:   readOutput(out),
		Duration: time.Since(start),
	}

	if err == nil {
		r.logger.Debugf("Command %s %v exited 0 in %s", name, args, result.Duration)
		return result, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		result.ExitCode = -1
		return result, fmt.Errorf("command %s did not finish: %w", name, ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		r.logger.Debugf("Command %s %v exited %d in %s", name, args, result.ExitCode, result.Duration)
		return result, nil
	}

	result.ExitCode = -1
	return result, fmt.Errorf("failed to run command %s: %w", name, err)
}

func readOutput(f *os.File) string {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return ""
	}
	data, _ := io.ReadAll(io.LimitReader(f, maxOutput))
	return string(data)
}
