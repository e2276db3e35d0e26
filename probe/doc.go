// Package probe turns dependency checks into readiness/liveness functions
// for the info endpoints: plain ping functions, MongoDB clients and the
// operation registry itself.
package probe
