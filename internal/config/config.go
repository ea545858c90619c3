package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Defaults used when the corresponding environment variable is unset or invalid.
const (
	DefaultTarget           = "google.com"
	DefaultInterval         = 60 * time.Second
	DefaultTimeout          = 5 * time.Second
	DefaultFailureThreshold = 3
)

type Config struct {
	Target           string        // host probed each cycle, e.g. "google.com"
	Interval         time.Duration // wait between probe cycles
	Timeout          time.Duration // upper bound for a single probe
	FailureThreshold int           // consecutive failures that trigger the reboot
	DryRun           bool          // log the reboot instead of issuing it

	LogDir   string // rotating log file directory; empty logs to stderr only
	LogLevel string // debug | info | warn | error

	StatusAddr    string   // status API bind address; empty disables the listener
	StatusAPIKeys []string // optional keys required by the status API
	StatusRPM     int      // per-IP requests per minute on the status API
	StatusBurst   int
}

func FromEnv() Config {
	target := strings.TrimSpace(os.Getenv("WATCHDOG_TARGET"))
	if target == "" {
		target = DefaultTarget
	}

	interval := durationMS("WATCHDOG_INTERVAL_MS", DefaultInterval)
	timeout := durationMS("WATCHDOG_TIMEOUT_MS", DefaultTimeout)

	threshold := DefaultFailureThreshold
	if v := os.Getenv("WATCHDOG_FAILURE_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			threshold = n
		}
	}

	dryRun := false
	if v := os.Getenv("WATCHDOG_DRY_RUN"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			dryRun = b
		}
	}

	// Logs (stderr always; a file only when LOG_DIR is set)
	logDir := strings.TrimSpace(os.Getenv("LOG_DIR"))
	logLevel := strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL")))
	if logLevel == "" {
		logLevel = "info"
	}

	// Status API (off unless an address is given)
	statusRPM := intEnv("STATUS_RPM", 120)
	statusBurst := intEnv("STATUS_BURST", 30)

	return Config{
		Target:           target,
		Interval:         interval,
		Timeout:          timeout,
		FailureThreshold: threshold,
		DryRun:           dryRun,
		LogDir:           logDir,
		LogLevel:         logLevel,
		StatusAddr:       strings.TrimSpace(os.Getenv("STATUS_ADDR")),
		StatusAPIKeys:    splitList(os.Getenv("STATUS_API_KEYS")),
		StatusRPM:        statusRPM,
		StatusBurst:      statusBurst,
	}
}

func durationMS(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return def
}

func intEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
