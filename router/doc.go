// Package router wraps the host router that operations are registered on
// with the cross-cutting HTTP layers: CORS, per-request timeouts, rate
// limiting, request logging and, when enabled, OpenAPI request validation.
package router
