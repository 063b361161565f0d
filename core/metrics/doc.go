// Package metrics defines the sinks a prediction run reports to. Sinks are
// built from configuration through a factory registry; infra/metrics
// registers the Prometheus textfile, InfluxDB and MQTT implementations.
// NewMetricsSink returns a MultiSink automatically when several sinks are
// configured.
package metrics
