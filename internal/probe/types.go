package probe

import (
	"context"
	"errors"
	"strings"
)

// CheckResult holds the outcome of a single probe.
// A failed probe is a value, not an error: timeouts, unreachable hosts and a
// missing ping binary all land here with Success=false and a Message.
type CheckResult struct {
	Name      string  `json:"name"`
	Success   bool    `json:"success"`
	Message   string  `json:"message"`
	LatencyMS float64 `json:"latency_ms,omitempty"`
}

// Checker performs one reachability check against target.
type Checker interface {
	Check(ctx context.Context, target string) CheckResult
}

// ValidateTarget rejects targets that are not bare host names or addresses.
func ValidateTarget(target string) error {
	t := strings.TrimSpace(target)
	switch {
	case t == "":
		return errors.New("target is empty")
	case strings.Contains(t, "://"):
		return errors.New("target must be a host name, not a URL")
	case strings.HasPrefix(t, "-"):
		return errors.New("target must not start with '-'")
	case strings.ContainsAny(t, " \t/"):
		return errors.New("target contains invalid characters")
	}
	return nil
}
