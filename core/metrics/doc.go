// Package metrics defines the run summary of a simulation and the sinks that
// record it. Sinks like PromSink and InfluxSink live in infra/metrics and
// register themselves by name; NewSink returns a MultiSink automatically
// when multiple sinks are configured.
package metrics
