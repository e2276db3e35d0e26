// Package responder renders operation results and failures as JSON. It
// writes plain success bodies, the {"message"} error body used by the
// operation registry, and RFC 9457 problem documents for callers that
// prefer them.
package responder
