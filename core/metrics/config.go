package metrics

import "github.com/chloebrgr/docksched/core/factory"

// Config defines settings for metrics sinks.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
	// PrometheusPort is the listen address of the /metrics endpoint when a
	// prometheus sink is configured, e.g. ":9100".
	PrometheusPort string `json:"prometheus_port"`
}
