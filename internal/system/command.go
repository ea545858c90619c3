package system

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
)

// Output is what a finished command left behind.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the command exited with status 0.
func (o Output) Success() bool { return o.ExitCode == 0 }

// Diagnostic returns the most useful text for a log line: stderr if present,
// otherwise stdout.
func (o Output) Diagnostic() string {
	if s := strings.TrimSpace(o.Stderr); s != "" {
		return s
	}
	return strings.TrimSpace(o.Stdout)
}

// Runner launches an external command and waits for it.
//
// A non-nil error means the command could not be launched or was killed
// (e.g. context deadline). A non-zero exit status is not an error; callers
// inspect Output.ExitCode.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Output, error)
}

type ExecRunner struct{}

func NewExecRunner() *ExecRunner { return &ExecRunner{} }

func (ExecRunner) Run(ctx context.Context, name string, args ...string) (Output, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := Output{Stdout: stdout.String(), Stderr: stderr.String()}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return out, nil
	case ctx.Err() != nil:
		out.ExitCode = -1
		return out, ctx.Err()
	case errors.As(err, &exitErr):
		out.ExitCode = exitErr.ExitCode()
		return out, nil
	default:
		out.ExitCode = -1
		return out, err
	}
}

// LookPath is exec.LookPath, exposed so preflight checks share one place.
func LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
