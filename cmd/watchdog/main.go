package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/hamed0406/netwatchdog/internal/config"
	"github.com/hamed0406/netwatchdog/internal/httpapi"
	"github.com/hamed0406/netwatchdog/internal/logging"
	"github.com/hamed0406/netwatchdog/internal/metrics"
	"github.com/hamed0406/netwatchdog/internal/probe"
	"github.com/hamed0406/netwatchdog/internal/reboot"
	"github.com/hamed0406/netwatchdog/internal/repo/memory"
	"github.com/hamed0406/netwatchdog/internal/scheduler"
	"github.com/hamed0406/netwatchdog/internal/system"
)

func main() {
	cfg := config.FromEnv()
	logger := logging.NewLogger(cfg.LogDir, cfg.LogLevel)
	defer logger.Sync()
	logger = logger.With(zap.String("run_id", uuid.NewString()))

	if err := probe.ValidateTarget(cfg.Target); err != nil {
		logger.Fatal("invalid_target", zap.String("target", cfg.Target), zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := system.NewExecRunner()
	var rebooter reboot.Rebooter = reboot.NewCommandRebooter(runner)
	if cfg.DryRun {
		rebooter = &reboot.DryRun{Logger: logger}
	}

	store := memory.New(memory.DefaultCapacity)
	collector := metrics.NewCollector()

	mon := scheduler.NewMonitor(logger, probe.NewPingChecker(runner, cfg.Timeout), rebooter, scheduler.MonitorConfig{
		Target:           cfg.Target,
		Interval:         cfg.Interval,
		FailureThreshold: cfg.FailureThreshold,
	})
	mon.Results = store
	mon.Status = store
	mon.Metrics = collector
	mon.Diagnoser = probe.NewDNSDiagnoser()

	srv := startStatusServer(cfg, logger, store, collector)

	runErr := mon.Run(ctx)
	if errors.Is(runErr, context.Canceled) {
		runErr = nil
	}
	if err := multierr.Combine(runErr, stopStatusServer(srv)); err != nil {
		// A failed reboot leaves the host unmonitored; exit non-zero so the
		// service manager can restart the watchdog.
		logger.Error("watchdog_exited", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	logger.Info("watchdog_exited")
}

func startStatusServer(cfg config.Config, logger *zap.Logger, store *memory.Store, collector *metrics.Collector) *http.Server {
	if cfg.StatusAddr == "" {
		return nil
	}
	api := httpapi.NewServer(logger, store, store, collector.Handler())
	srv := &http.Server{
		Addr: cfg.StatusAddr,
		Handler: api.Router(httpapi.RouterOptions{
			APIKeys: cfg.StatusAPIKeys,
			RPM:     cfg.StatusRPM,
			Burst:   cfg.StatusBurst,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("status_listen", zap.String("addr", cfg.StatusAddr))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("status_server_error", zap.Error(err))
		}
	}()
	return srv
}

func stopStatusServer(srv *http.Server) error {
	if srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
