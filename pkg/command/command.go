// pkg/command/command.go

// Package command runs an external program and captures its output.
//
// Every call blocks until the process exits. There are no retries: a failed
// invocation is reported to the caller as is.
package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// Result holds the captured output of one invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner runs a fixed program with varying arguments.
type Runner interface {
	Run(ctx context.Context, args ...string) (*Result, error)
}

// ExitError is returned when the program ran but exited unsuccessfully.
type ExitError struct {
	Program string
	Args    []string
	Result  *Result
	Err     error
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s %s: exit code %d", e.Program, strings.Join(e.Args, " "), e.Result.ExitCode)
	if stderr := strings.TrimSpace(e.Result.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ProgramRunner implements Runner with os/exec.
type ProgramRunner struct {
	program string
	env     []string
}

// Option configures a ProgramRunner.
type Option func(*ProgramRunner)

// WithEnv appends KEY=VALUE pairs to the environment of every invocation.
func WithEnv(env ...string) Option {
	return func(r *ProgramRunner) {
		r.env = append(r.env, env...)
	}
}

// New resolves program on PATH (or uses it as given when it contains a path
// separator) and returns a runner for it.
func New(program string, opts ...Option) (*ProgramRunner, error) {
	path, err := exec.LookPath(program)
	if err != nil {
		return nil, fmt.Errorf("executable %s not found, verify it is installed and on PATH: %w", program, err)
	}
	r := &ProgramRunner{program: path}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Program returns the resolved path of the wrapped program.
func (r *ProgramRunner) Program() string {
	return r.program
}

// Run executes the program with args and waits for it to finish.
func (r *ProgramRunner) Run(ctx context.Context, args ...string) (*Result, error) {
	cmd := exec.CommandContext(ctx, r.program, args...)
	if len(r.env) > 0 {
		cmd.Env = append(cmd.Environ(), r.env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	slog.Debug("exec", "program", r.program, "args", args)
	err := cmd.Run()

	result := &Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err == nil {
		return result, nil
	}
	// A process killed by cancellation exits non-zero too; report the cancellation.
	if ctxErr := ctx.Err(); ctxErr != nil {
		result.ExitCode = -1
		return result, fmt.Errorf("%s %s interrupted: %w", r.program, strings.Join(args, " "), ctxErr)
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		// The process never ran.
		result.ExitCode = -1
		return result, fmt.Errorf("failed to start %s: %w", r.program, err)
	}
	result.ExitCode = exitErr.ExitCode()
	return result, &ExitError{Program: r.program, Args: args, Result: result, Err: err}
}
