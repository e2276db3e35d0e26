package operation

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/drblury/opweaver/responder"
)

var allowedMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodDelete,
	http.MethodPatch,
}

// Route describes a registration made through a Handle.
type Route struct {
	Path      string
	Method    string
	Pattern   string
	Operation *openapi3.Operation
}

// Registry holds the resolved document and the configuration used to
// register routes.
type Registry struct {
	opts      Options
	spec      *openapi3.T
	responder *responder.Responder

	mu     sync.Mutex
	routes []Route
}

// Init resolves the OpenAPI document and returns a Registry ready to be
// activated on a host.
func Init(ctx context.Context, opts ...Option) (*Registry, error) {
	settings := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(settings)
		}
	}
	if settings.Spec == nil {
		return nil, ErrSpecRequired
	}

	doc, err := settings.Spec(ctx)
	if err != nil {
		return nil, err
	}

	resp := settings.Responder
	if resp == nil {
		resp = responder.NewResponder(responder.WithLogger(settings.Logger))
	}

	return &Registry{
		opts:      *settings,
		spec:      doc,
		responder: resp,
	}, nil
}

// Handle is returned by Activate. It exposes the configuration and allows
// registering further operations.
type Handle struct {
	registry *Registry
}

// Activate registers every entry of the static API on host, in path then
// method order. The first failing entry stops the loop.
func (reg *Registry) Activate(host Host) (*Handle, error) {
	paths := make([]string, 0, len(reg.opts.API))
	for path := range reg.opts.API {
		paths = append(paths, path)
	}
	slices.Sort(paths)

	for _, path := range paths {
		methods := reg.opts.API[path]
		names := make([]string, 0, len(methods))
		for method := range methods {
			names = append(names, method)
		}
		slices.Sort(names)

		for _, method := range names {
			if err := reg.Register(host, path, method, methods[method]); err != nil {
				return nil, err
			}
		}
	}
	return &Handle{registry: reg}, nil
}

// Options returns the configuration the registry was built from.
func (h *Handle) Options() Options {
	return h.registry.opts
}

// Spec returns the resolved document.
func (h *Handle) Spec() *openapi3.T {
	return h.registry.spec
}

// Register adds one more operation on host.
func (h *Handle) Register(host Host, path, method string, handler Handler) error {
	return h.registry.Register(host, path, method, handler)
}

// Routes returns the registrations made so far.
func (h *Handle) Routes() []Route {
	return h.registry.Routes()
}

// RouteCount returns how many operations are registered.
func (h *Handle) RouteCount() int {
	h.registry.mu.Lock()
	defer h.registry.mu.Unlock()
	return len(h.registry.routes)
}

// Routes returns the registrations made so far.
func (reg *Registry) Routes() []Route {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return slices.Clone(reg.routes)
}

// Register wires handler for the operation at path and method on host.
// path is the template as written in the document, without the base URI.
func (reg *Registry) Register(host Host, path, method string, handler Handler) error {
	verb := strings.ToUpper(method)
	if !slices.Contains(allowedMethods, verb) {
		return fmt.Errorf("%w: %s", ErrUnsupportedMethod, method)
	}
	if handler == nil {
		return fmt.Errorf("nil handler for %s %s", verb, path)
	}

	pattern, err := RoutePattern(strings.TrimSuffix(reg.opts.BaseURI, "/") + path)
	if err != nil {
		return err
	}

	op, ok := lookupOperation(reg.spec, path, verb)
	if !ok {
		return fmt.Errorf("%w: %s %s", ErrOperationNotFound, verb, path)
	}

	route := &operationRoute{
		registry: reg,
		path:     path,
		method:   verb,
		op:       op,
		status:   SuccessStatus(op),
		handler:  handler,
	}
	if err := host.Handle(verb, pattern, route); err != nil {
		return fmt.Errorf("register %s %s: %w", verb, pattern, err)
	}

	reg.mu.Lock()
	reg.routes = append(reg.routes, Route{Path: path, Method: verb, Pattern: pattern, Operation: op})
	reg.mu.Unlock()

	reg.opts.Logger.Debug("operation registered",
		slog.String("method", verb),
		slog.String("path", path),
		slog.String("pattern", pattern),
		slog.String("operationId", op.OperationID),
	)
	return nil
}
