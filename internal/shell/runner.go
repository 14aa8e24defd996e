// Package shell runs external OS utilities and reports what happened to them.
//
// A command that started and finished, whatever its exit code, produces a
// Result. A command that could not be started at all produces a *LaunchError.
// Callers that need a zero exit code use Check, which turns a non-zero exit
// into an *ExitError carrying the Result.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// Result is the captured outcome of a command that ran.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Output returns stderr, or stdout when stderr is empty. Several Windows
// utilities (netsh, sc) report failures on stdout.
func (r Result) Output() string {
	if out := strings.TrimSpace(r.Stderr); out != "" {
		return out
	}
	return strings.TrimSpace(r.Stdout)
}

// LaunchError means the command never ran: binary missing, permission denied
// on exec, cancelled context before start.
type LaunchError struct {
	Name string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("launching %s: %v", e.Name, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// ExitError means the command ran and exited non-zero.
type ExitError struct {
	Name   string
	Args   []string
	Result Result
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s %s exited with status %d", e.Name, strings.Join(e.Args, " "), e.Result.ExitCode)
	if out := e.Result.Output(); out != "" {
		msg += ": " + out
	}
	return msg
}

// Runner executes a command and blocks until it exits.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	log *zap.Logger
}

func NewExecRunner(log *zap.Logger) *ExecRunner {
	if log == nil {
		log = zap.NewNop()
	}
	return &ExecRunner{log: log}
}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			r.log.Info("command could not be launched",
				zap.String("name", name), zap.Strings("args", args), zap.Error(err))
			return res, &LaunchError{Name: name, Err: err}
		}
		res.ExitCode = exitErr.ExitCode()
	}

	r.log.Debug("command finished",
		zap.String("name", name), zap.Strings("args", args), zap.Int("exit_code", res.ExitCode))
	return res, nil
}

// Check runs the command and fails unless it exits 0.
func Check(ctx context.Context, r Runner, name string, args ...string) (Result, error) {
	res, err := r.Run(ctx, name, args...)
	if err != nil {
		return res, err
	}
	if !res.Success() {
		return res, &ExitError{Name: name, Args: args, Result: res}
	}
	return res, nil
}
