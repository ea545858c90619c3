// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"strconv"

	"go.uber.org/multierr"

	"github.com/hamed0406/netwatchdog/internal/config"
	"github.com/hamed0406/netwatchdog/internal/probe"
	"github.com/hamed0406/netwatchdog/internal/system"
)

// Tools invoked by the probe and the reboot action.
var requiredTools = []string{"ping", "sudo", "shutdown"}

type env struct {
	lookPath func(string) (string, error)
	euid     int
	ok       func(string)
	warn     func(string)
}

func main() {
	e := env{
		lookPath: system.LookPath,
		euid:     os.Geteuid(),
		ok:       func(msg string) { fmt.Println("✔", msg) },
		warn:     func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) },
	}

	if errs := check(config.FromEnv(), e); errs != nil {
		for _, err := range multierr.Errors(errs) {
			fmt.Fprintln(os.Stderr, "✖", err)
		}
		os.Exit(1)
	}
	e.ok("preflight passed")
}

// check returns every blocking problem combined; warnings go to e.warn.
func check(cfg config.Config, e env) error {
	var errs error

	if err := probe.ValidateTarget(cfg.Target); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("WATCHDOG_TARGET %q: %w", cfg.Target, err))
	} else {
		e.ok("target=" + cfg.Target)
	}

	for _, bin := range requiredTools {
		if path, err := e.lookPath(bin); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s not found on PATH: %w", bin, err))
		} else {
			e.ok(bin + " at " + path)
		}
	}

	if cfg.Timeout >= cfg.Interval {
		e.warn(fmt.Sprintf("probe timeout %s is not shorter than interval %s", cfg.Timeout, cfg.Interval))
	}
	e.ok(fmt.Sprintf("reboot after %d consecutive failures, probing every %s (timeout %s)",
		cfg.FailureThreshold, cfg.Interval, cfg.Timeout))

	if cfg.DryRun {
		e.warn("WATCHDOG_DRY_RUN set; the host will NOT be rebooted.")
	}
	if e.euid != 0 {
		e.warn("not running as root (uid " + strconv.Itoa(e.euid) + "); sudo must allow 'shutdown -r now' without a password.")
	}

	if cfg.LogDir == "" {
		e.ok("logging to stderr only")
	} else {
		e.ok("LOG_DIR=" + cfg.LogDir)
	}

	if cfg.StatusAddr == "" {
		e.ok("status API disabled")
	} else {
		e.ok("STATUS_ADDR=" + cfg.StatusAddr)
		if len(cfg.StatusAPIKeys) == 0 {
			e.warn("STATUS_API_KEYS empty; status API is open to anyone who can reach it.")
		}
	}

	return errs
}
