package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/netwatchdog/internal/domain"
	"github.com/hamed0406/netwatchdog/internal/metrics"
	"github.com/hamed0406/netwatchdog/internal/probe"
	"github.com/hamed0406/netwatchdog/internal/reboot"
	"github.com/hamed0406/netwatchdog/internal/repo"
)

// Diagnoser explains a failed probe for the log. It never affects counting.
type Diagnoser interface {
	Diagnose(ctx context.Context, host string) probe.DNSStatus
}

type MonitorConfig struct {
	Target           string
	Interval         time.Duration
	FailureThreshold int
}

// Monitor probes one target at a fixed interval and reboots the host after
// FailureThreshold consecutive failures.
type Monitor struct {
	Logger   *zap.Logger
	Checker  probe.Checker
	Rebooter reboot.Rebooter
	Config   MonitorConfig

	// Optional collaborators; nil disables them.
	Results   repo.ResultStore
	Status    repo.StatusStore
	Metrics   *metrics.Collector
	Diagnoser Diagnoser

	now func() time.Time
}

func NewMonitor(
	logger *zap.Logger,
	checker probe.Checker,
	rebooter reboot.Rebooter,
	cfg MonitorConfig,
) *Monitor {
	if cfg.Interval <= 0 {
		cfg.Interval = 60 * time.Second
	}
	if cfg.FailureThreshold < 1 {
		cfg.FailureThreshold = 3
	}
	return &Monitor{
		Logger:   logger,
		Checker:  checker,
		Rebooter: rebooter,
		Config:   cfg,
		now:      time.Now,
	}
}

// Run probes until the failure streak reaches the threshold, then issues the
// reboot exactly once and returns. The returned error is the reboot error, if
// any, or ctx.Err() when the context ends first. A failed reboot is not retried.
func (m *Monitor) Run(ctx context.Context) error {
	m.Logger.Info("watchdog_started",
		zap.String("target", m.Config.Target),
		zap.Duration("interval", m.Config.Interval),
		zap.Int("failure_threshold", m.Config.FailureThreshold),
	)

	st := domain.Status{
		Target:           m.Config.Target,
		State:            domain.StateHealthy,
		FailureThreshold: m.Config.FailureThreshold,
		StartedAt:        m.now().UTC(),
	}
	m.publishStatus(ctx, st)

	failures := 0
	for {
		out := m.Checker.Check(ctx, m.Config.Target)
		if ctx.Err() != nil {
			m.Logger.Info("watchdog_stopped", zap.Error(ctx.Err()))
			return ctx.Err()
		}

		res := domain.ProbeResult{
			Target:    m.Config.Target,
			Up:        out.Success,
			LatencyMS: out.LatencyMS,
			Reason:    out.Message,
			CheckedAt: m.now().UTC(),
		}

		if out.Success {
			if failures > 0 {
				m.Logger.Info("connectivity_restored",
					zap.String("target", m.Config.Target),
					zap.Int("failures", failures),
				)
			}
			failures = 0
			m.Logger.Info("probe_ok",
				zap.String("target", m.Config.Target),
				zap.Float64("latency_ms", out.LatencyMS),
			)
		} else {
			failures++
			res.DNSClass = m.diagnose(ctx)
			if ctx.Err() != nil {
				m.Logger.Info("watchdog_stopped", zap.Error(ctx.Err()))
				return ctx.Err()
			}
			fields := []zap.Field{
				zap.String("target", m.Config.Target),
				zap.Int("consecutive_failures", failures),
				zap.Int("failure_threshold", m.Config.FailureThreshold),
				zap.String("reason", out.Message),
			}
			if res.DNSClass != "" {
				fields = append(fields, zap.String("dns_class", res.DNSClass))
			}
			if failures < m.Config.FailureThreshold {
				m.Logger.Warn("probe_failed", fields...)
			} else {
				m.Logger.Error("connectivity_lost", fields...)
			}
		}

		res.Streak = failures
		res.State = domain.StateFor(failures, m.Config.FailureThreshold)
		st.State = res.State
		st.ConsecutiveFailures = failures
		st.Probes++
		m.record(ctx, res, &st)

		if res.State == domain.StateRebooting {
			// A stop request never escalates into a reboot.
			if ctx.Err() != nil {
				m.Logger.Info("watchdog_stopped", zap.Error(ctx.Err()))
				return ctx.Err()
			}
			return m.reboot(ctx, &st)
		}

		if err := m.wait(ctx); err != nil {
			m.Logger.Info("watchdog_stopped", zap.Error(err))
			return err
		}
	}
}

func (m *Monitor) reboot(ctx context.Context, st *domain.Status) error {
	m.Logger.Error("reboot_initiated",
		zap.String("target", m.Config.Target),
		zap.Int("consecutive_failures", st.ConsecutiveFailures),
	)

	// The reboot has no deadline and must not be cut short by a late signal.
	err := m.Rebooter.Reboot(context.WithoutCancel(ctx))

	ev := &domain.RebootEvent{AttemptedAt: m.now().UTC(), OK: err == nil}
	if err != nil {
		ev.Error = err.Error()
	}
	st.Reboot = ev
	m.publishStatus(ctx, *st)
	if m.Metrics != nil {
		m.Metrics.ObserveReboot(err)
	}

	if err != nil {
		m.Logger.Error("reboot_failed", zap.Error(err))
		return fmt.Errorf("reboot: %w", err)
	}
	m.Logger.Info("reboot_requested")
	return nil
}

func (m *Monitor) wait(ctx context.Context) error {
	t := time.NewTimer(m.Config.Interval)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (m *Monitor) diagnose(ctx context.Context) string {
	if m.Diagnoser == nil {
		return ""
	}
	d := m.Diagnoser.Diagnose(ctx, m.Config.Target)
	m.Logger.Debug("dns_diagnosis",
		zap.String("host", d.Host),
		zap.String("class", d.Class),
		zap.Int("ips", len(d.IPs)),
		zap.Bool("has_ns", d.HasNS),
		zap.String("resolver_error", d.ResolverError),
	)
	return d.Class
}

func (m *Monitor) record(ctx context.Context, res domain.ProbeResult, st *domain.Status) {
	if m.Metrics != nil {
		m.Metrics.ObserveProbe(res)
	}
	if m.Results != nil {
		stored, err := m.Results.Append(ctx, res)
		if err != nil {
			m.Logger.Warn("results_append_error", zap.Error(err))
		} else {
			res = stored
		}
	}
	last := res
	st.Last = &last
	m.publishStatus(ctx, *st)
}

func (m *Monitor) publishStatus(ctx context.Context, st domain.Status) {
	if m.Status == nil {
		return
	}
	if err := m.Status.SetStatus(ctx, st); err != nil {
		m.Logger.Warn("status_store_error", zap.Error(err))
	}
}
