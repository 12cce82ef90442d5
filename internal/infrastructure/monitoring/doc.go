// Package monitoring provides Prometheus metrics for the introspection
// daemon: HTTP request counters, registry pair gauges and resolution cache
// activity mirrored from the conversions registry's internal counters.
//
// Metrics are exposed via promhttp on /metrics; cache gauges are refreshed
// by WatchRegistry on a fixed interval.
package monitoring
