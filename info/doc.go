// Package info exposes service metadata next to the registered operations:
// status, liveness and readiness probes, build information, and the
// resolved OpenAPI document as JSON or YAML.
package info
