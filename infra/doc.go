// Package infra contains technical adapters: the dataset loader, zerolog
// logging, the MQTT publisher and the metrics sinks. These packages depend
// only on the types and interfaces defined in the core packages.
package infra
