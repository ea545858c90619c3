package probe

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/hamed0406/netwatchdog/internal/system"
)

// PingChecker sends exactly one ICMP echo request using the system ping tool.
type PingChecker struct {
	Runner  system.Runner
	Timeout time.Duration
	Binary  string
}

func NewPingChecker(runner system.Runner, timeout time.Duration) *PingChecker {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &PingChecker{Runner: runner, Timeout: timeout, Binary: "ping"}
}

// Args builds the ping command line. -W takes whole seconds on Linux, so the
// timeout is rounded up; the context deadline in Check enforces the exact bound.
func (p *PingChecker) Args(target string) []string {
	secs := int(math.Ceil(p.Timeout.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return []string{"-c", "1", "-W", strconv.Itoa(secs), target}
}

func (p *PingChecker) Check(ctx context.Context, target string) CheckResult {
	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	start := time.Now()
	out, err := p.Runner.Run(ctx, p.Binary, p.Args(target)...)
	latency := time.Since(start).Seconds() * 1000 // ms

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return CheckResult{Name: "PING", Message: fmt.Sprintf("no reply within %s", p.Timeout), LatencyMS: latency}
	case err != nil:
		return CheckResult{Name: "PING", Message: fmt.Sprintf("failed to execute %s: %v", p.Binary, err), LatencyMS: latency}
	case !out.Success():
		msg := out.Diagnostic()
		if msg == "" {
			msg = fmt.Sprintf("exit status %d", out.ExitCode)
		}
		return CheckResult{Name: "PING", Message: "ping failed: " + msg, LatencyMS: latency}
	}

	return CheckResult{Name: "PING", Success: true, Message: "reply received", LatencyMS: latency}
}
