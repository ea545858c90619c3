package system

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func requireTool(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not available: %v", name, err)
	}
}

func TestExecRunner_Success(t *testing.T) {
	requireTool(t, "sh")
	out, err := NewExecRunner().Run(context.Background(), "sh", "-c", "echo hello")
	require.NoError(t, err)
	require.True(t, out.Success())
	require.Equal(t, "hello", out.Diagnostic())
}

func TestExecRunner_NonZeroExitIsNotAnError(t *testing.T) {
	requireTool(t, "sh")
	out, err := NewExecRunner().Run(context.Background(), "sh", "-c", "echo nope >&2; exit 3")
	require.NoError(t, err)
	require.Equal(t, 3, out.ExitCode)
	require.False(t, out.Success())
	require.Equal(t, "nope", out.Diagnostic())
}

func TestExecRunner_MissingBinary(t *testing.T) {
	_, err := NewExecRunner().Run(context.Background(), "definitely-not-a-real-binary-xyz")
	require.Error(t, err)
	require.True(t, errors.Is(err, exec.ErrNotFound))
}

func TestExecRunner_DeadlineKillsCommand(t *testing.T) {
	requireTool(t, "sleep")
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	out, err := NewExecRunner().Run(ctx, "sleep", "5")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Equal(t, -1, out.ExitCode)
	require.Less(t, time.Since(start), 3*time.Second)
}

func TestOutput_DiagnosticPrefersStderr(t *testing.T) {
	o := Output{ExitCode: 1, Stdout: "out\n", Stderr: "  err\n"}
	require.Equal(t, "err", o.Diagnostic())
	o.Stderr = ""
	require.Equal(t, "out", o.Diagnostic())
}
