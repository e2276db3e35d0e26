// Package compose combines context-aware functions into larger units of
// work. Sequence threads a merged Record through dependent stages, Parallel
// fans a named set of tasks out and joins their results, and Retry re-runs
// a failing task a bounded number of times with a fixed delay.
//
// None of the helpers impose timeouts. Callers that need one should derive
// a context with a deadline before invoking them.
package compose
