// Command docstored serves the conversion registry of the built-in document
// store profile over a read-only HTTP API: registered pairs, simple type
// checks, write target resolution, cache statistics and Prometheus metrics.
//
// Configuration comes from the environment (PORT, HOST, LOG_LEVEL, LOG_DEV,
// REGISTRY_MANIFEST); see internal/infrastructure/config.
package main
