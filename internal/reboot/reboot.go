package reboot

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/hamed0406/netwatchdog/internal/system"
)

// ErrRejected is returned when the reboot command ran but exited non-zero.
var ErrRejected = errors.New("reboot command rejected")

// Rebooter issues the single remedial action. Implementations do not wait for
// the host to go down.
type Rebooter interface {
	Reboot(ctx context.Context) error
}

// CommandRebooter runs "sudo shutdown -r now" by default.
type CommandRebooter struct {
	Runner  system.Runner
	Command []string
}

func NewCommandRebooter(runner system.Runner) *CommandRebooter {
	return &CommandRebooter{
		Runner:  runner,
		Command: []string{"sudo", "shutdown", "-r", "now"},
	}
}

func (r *CommandRebooter) Reboot(ctx context.Context) error {
	if len(r.Command) == 0 {
		return errors.New("reboot command not configured")
	}
	out, err := r.Runner.Run(ctx, r.Command[0], r.Command[1:]...)
	if err != nil {
		return fmt.Errorf("failed to execute %s: %w", r.Command[0], err)
	}
	if !out.Success() {
		msg := out.Diagnostic()
		if msg == "" {
			msg = fmt.Sprintf("exit status %d", out.ExitCode)
		}
		return fmt.Errorf("%w: %s", ErrRejected, msg)
	}
	return nil
}

// DryRun logs the reboot it would have issued.
type DryRun struct {
	Logger *zap.Logger
}

func (d *DryRun) Reboot(ctx context.Context) error {
	d.Logger.Warn("reboot_dry_run", zap.String("would_run", "sudo shutdown -r now"))
	return nil
}
