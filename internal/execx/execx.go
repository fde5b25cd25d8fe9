// Package execx runs external commands on behalf of the engine.
//
// Expected failures (a tool exiting non-zero) are reported in the Outcome,
// never as an error. The only error a Runner returns is a *SpawnError,
// meaning the process could not be started at all.
package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// Request describes one command invocation.
type Request struct {
	Name string
	Args []string
	Dir  string

	// Env is the full child environment. When nil the ambient process
	// environment is inherited unchanged.
	Env []string

	// Capture buffers stdout/stderr into the Outcome. When false the
	// streams are inherited so long-running tools show live progress, and
	// the Outcome's text fields are empty.
	Capture bool

	// Interactive marks a user-facing foreground run (e.g. attaching to an
	// app). If the child dies from an external interrupt, the run is still
	// reported as succeeded rather than as a failure.
	Interactive bool
}

// Outcome is the uniform result of one command invocation.
type Outcome struct {
	Succeeded bool
	Stdout    string
	Stderr    string
}

// SpawnError means the child process could not be started.
type SpawnError struct {
	Name string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawning %q: %v", e.Name, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// Runner executes commands. The engine is written against this interface so
// tests can substitute a recording fake.
type Runner interface {
	Execute(ctx context.Context, req Request) (Outcome, error)
}

// Local runs commands as child processes of the current one.
type Local struct{}

func (Local) Execute(ctx context.Context, req Request) (Outcome, error) {
	cmd := exec.CommandContext(ctx, req.Name, req.Args...)
	cmd.Dir = req.Dir
	if req.Env != nil {
		cmd.Env = req.Env
	}

	var stdout, stderr bytes.Buffer
	if req.Capture {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	} else {
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}

	err := cmd.Run()
	out := Outcome{Stdout: stdout.String(), Stderr: stderr.String()}

	if err == nil {
		out.Succeeded = true
		return out, nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return out, &SpawnError{Name: req.Name, Err: err}
	}

	// Interactive runs are expected to end with the user interrupting the
	// child; a signal death (exit code -1) or the conventional 130 is a
	// graceful stop, not a failure.
	if req.Interactive {
		code := exitErr.ExitCode()
		if code == -1 || code == 130 {
			out.Succeeded = true
			return out, nil
		}
	}

	return out, nil
}

// Shell runs a command line through "sh -c", for invocations that need
// shell features such as pipes (e.g. auto-accepting license prompts).
func Shell(ctx context.Context, r Runner, command string, env []string, capture bool) (Outcome, error) {
	return r.Execute(ctx, Request{
		Name:    "sh",
		Args:    []string{"-c", command},
		Env:     env,
		Capture: capture,
	})
}
