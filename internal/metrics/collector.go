package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hamed0406/netwatchdog/internal/domain"
)

// Collector holds all Prometheus metrics
type Collector struct {
	registry *prometheus.Registry

	// Probe metrics
	ProbesTotal   *prometheus.CounterVec
	ProbeDuration prometheus.Histogram

	// State metrics
	ConsecutiveFailures prometheus.Gauge
	State               prometheus.Gauge

	// Remedial action
	RebootsTotal *prometheus.CounterVec
}

// NewCollector creates all metrics on a private registry so tests can build
// as many collectors as they like.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Collector{
		registry: reg,

		ProbesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "netwatchdog_probes_total",
				Help: "Total number of probes by result",
			},
			[]string{"result"},
		),

		ProbeDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "netwatchdog_probe_duration_seconds",
				Help:    "Probe duration in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
		),

		ConsecutiveFailures: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "netwatchdog_consecutive_failures",
				Help: "Current consecutive probe failure streak",
			},
		),

		State: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "netwatchdog_state",
				Help: "Monitor state (0=HEALTHY, 1=DEGRADED, 2=REBOOTING)",
			},
		),

		RebootsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "netwatchdog_reboots_total",
				Help: "Reboot attempts by result",
			},
			[]string{"result"},
		),
	}
}

// ObserveProbe records one completed cycle.
func (c *Collector) ObserveProbe(r domain.ProbeResult) {
	result := "failure"
	if r.Up {
		result = "success"
	}
	c.ProbesTotal.WithLabelValues(result).Inc()
	c.ProbeDuration.Observe(r.LatencyMS / 1000)
	c.ConsecutiveFailures.Set(float64(r.Streak))
	c.State.Set(stateValue(r.State))
}

// ObserveReboot records the outcome of the reboot attempt.
func (c *Collector) ObserveReboot(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.RebootsTotal.WithLabelValues(result).Inc()
}

// Handler serves the collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func stateValue(s domain.State) float64 {
	switch s {
	case domain.StateDegraded:
		return 1
	case domain.StateRebooting:
		return 2
	default:
		return 0
	}
}
