// Package metrics defines interfaces and record types for observing
// scheduling decisions. Sinks like the Prometheus and InfluxDB
// implementations in infra/metrics record accept/reject outcomes and port
// occupancy and can be combined through the factory helpers, which return a
// fan-out sink automatically when multiple sinks are configured.
package metrics
