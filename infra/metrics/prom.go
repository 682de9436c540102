package metrics

import (
	"time"

	coremetrics "github.com/chloebrgr/docksched/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records scheduling decisions in Prometheus metrics.
type PromSink struct {
	decisions *prometheus.CounterVec
	latency   *prometheus.HistogramVec
	occupancy *prometheus.GaugeVec
	resets    prometheus.Counter
}

// NewPromSink registers scheduling metrics on the default Prometheus registerer.
// The Prometheus server should be started separately using cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(cfg coremetrics.Config, reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	decisions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scheduling_decisions_total",
		Help: "Total number of scheduling decisions",
	}, []string{"requested_port", "assigned_port", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "scheduling_latency_seconds",
		Help:    "Time between request intake and decision",
		Buckets: prometheus.DefBuckets,
	}, []string{"status"})
	occupancy := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "port_assignments",
		Help: "Number of committed assignments per docking port",
	}, []string{"port"})
	resets := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "schedule_resets_total",
		Help: "Total number of schedule wipes",
	})

	if err := reg.Register(decisions); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			decisions = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(latency); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			latency = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(occupancy); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			occupancy = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(resets); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			resets = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}

	return &PromSink{decisions: decisions, latency: latency, occupancy: occupancy, resets: resets}, nil
}

// RecordDecisions increments the decision counter and observes latencies.
func (s *PromSink) RecordDecisions(recs []coremetrics.DecisionRecord) error {
	for _, r := range recs {
		s.decisions.WithLabelValues(r.RequestedPort, r.AssignedPort, string(r.Status)).Inc()
		s.latency.WithLabelValues(string(r.Status)).Observe(r.Latency.Seconds())
	}
	return nil
}

// RecordOccupancy sets the per-port assignment gauges.
func (s *PromSink) RecordOccupancy(perPort map[string]int) error {
	for port, n := range perPort {
		s.occupancy.WithLabelValues(port).Set(float64(n))
	}
	return nil
}

// RecordReset counts schedule wipes.
func (s *PromSink) RecordReset(int, time.Time) error {
	s.resets.Inc()
	return nil
}
