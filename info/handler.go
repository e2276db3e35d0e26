package info

import (
	"time"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/drblury/opweaver/probe"
	"github.com/drblury/opweaver/responder"
)

// InfoProvider returns the payload exposed by the version endpoint.
type InfoProvider func() any

// SpecProvider returns the OpenAPI document served by the document endpoints,
// usually operation.Handle.Spec.
type SpecProvider func() *openapi3.T

// InfoOption configures NewInfoHandler.
type InfoOption func(*InfoHandler)

const defaultProbeTimeout = 2 * time.Second

// ProbeFunc is executed to determine the outcome of liveness or readiness
// probes. Returning a non-nil error marks the probe as failed.
type ProbeFunc = probe.Func

// InfoHandler serves the auxiliary endpoints of a service built on the
// operation registry.
type InfoHandler struct {
	*responder.Responder
	infoProvider    InfoProvider
	specProvider    SpecProvider
	probeTimeout    time.Duration
	livenessChecks  []ProbeFunc
	readinessChecks []ProbeFunc
}

// NewInfoHandler constructs an InfoHandler with an empty version payload
// and no spec.
func NewInfoHandler(opts ...InfoOption) *InfoHandler {
	ih := &InfoHandler{
		Responder: responder.NewResponder(),
		infoProvider: func() any {
			return map[string]string{}
		},
		probeTimeout: defaultProbeTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(ih)
		}
	}
	return ih
}

// WithInfoResponder replaces the responder used to craft JSON responses.
func WithInfoResponder(r *responder.Responder) InfoOption {
	return func(ih *InfoHandler) {
		if r != nil {
			ih.Responder = r
		}
	}
}

// WithInfoProvider swaps the default metadata provider.
func WithInfoProvider(provider InfoProvider) InfoOption {
	return func(ih *InfoHandler) {
		if provider != nil {
			ih.infoProvider = provider
		}
	}
}

// WithSpecProvider sets the source of the document served by GetOpenAPIJSON
// and GetOpenAPIYAML.
func WithSpecProvider(provider SpecProvider) InfoOption {
	return func(ih *InfoHandler) {
		ih.specProvider = provider
	}
}

// WithProbeTimeout adjusts the maximum duration allowed for probe checks.
func WithProbeTimeout(timeout time.Duration) InfoOption {
	return func(ih *InfoHandler) {
		if timeout > 0 {
			ih.probeTimeout = timeout
		}
	}
}

// WithLivenessChecks replaces the liveness checks.
func WithLivenessChecks(checks ...ProbeFunc) InfoOption {
	return func(ih *InfoHandler) {
		ih.livenessChecks = filterProbes(checks)
	}
}

// WithReadinessChecks replaces the readiness checks.
func WithReadinessChecks(checks ...ProbeFunc) InfoOption {
	return func(ih *InfoHandler) {
		ih.readinessChecks = filterProbes(checks)
	}
}
