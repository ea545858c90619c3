package domain

import "time"

// State of the monitor's failure-counting state machine.
type State string

const (
	StateHealthy   State = "healthy"   // streak == 0
	StateDegraded  State = "degraded"  // 1 <= streak < threshold
	StateRebooting State = "rebooting" // terminal
)

// StateFor maps a failure streak to its state.
func StateFor(streak, threshold int) State {
	switch {
	case streak <= 0:
		return StateHealthy
	case streak < threshold:
		return StateDegraded
	default:
		return StateRebooting
	}
}

// ProbeResult is one completed monitor cycle.
type ProbeResult struct {
	Seq       uint64    `json:"seq"`
	Target    string    `json:"target"`
	Up        bool      `json:"up"`
	LatencyMS float64   `json:"latency_ms"`
	Reason    string    `json:"reason,omitempty"`
	DNSClass  string    `json:"dns_class,omitempty"`
	Streak    int       `json:"consecutive_failures"`
	State     State     `json:"state"`
	CheckedAt time.Time `json:"checked_at"`
}

// Status is the process-wide view exposed by the status API.
type Status struct {
	Target              string       `json:"target"`
	State               State        `json:"state"`
	ConsecutiveFailures int          `json:"consecutive_failures"`
	FailureThreshold    int          `json:"failure_threshold"`
	Probes              uint64       `json:"probes"`
	StartedAt           time.Time    `json:"started_at"`
	Last                *ProbeResult `json:"last,omitempty"`
	Reboot              *RebootEvent `json:"reboot,omitempty"`
}

// RebootEvent records the single reboot attempt of a process lifetime.
type RebootEvent struct {
	AttemptedAt time.Time `json:"attempted_at"`
	OK          bool      `json:"ok"`
	Error       string    `json:"error,omitempty"`
}
