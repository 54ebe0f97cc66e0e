/*
Package observability turns engine lifecycle events into Prometheus metrics.

Metrics are registered on a caller-provided registerer so tests and embedders can use
isolated registries.
*/
package observability
