package operation

import (
	"context"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/drblury/opweaver/responder"
)

// Context is created for every request served by a registered route and is
// owned by that request alone.
type Context struct {
	Request  *http.Request
	Response http.ResponseWriter

	// Path and Method identify the operation in the document.
	Path   string
	Method string

	Operation *openapi3.Operation
	Spec      *openapi3.T

	// Global holds the result of the global middleware, if one is configured.
	Global any
	// Middleware holds the result of the route middleware installed with
	// WithMiddleware.
	Middleware any

	// TraceID is set before the error handler runs and matches the
	// traceId of the logged failure.
	TraceID string
}

// Context returns the request context.
func (c *Context) Context() context.Context {
	if c == nil || c.Request == nil {
		return context.Background()
	}
	return c.Request.Context()
}

// PathParam returns the named path parameter captured by the host.
func (c *Context) PathParam(name string) string {
	if c == nil {
		return ""
	}
	return PathParams(c.Request)[name]
}

// Query returns the first value of the named query parameter.
func (c *Context) Query(name string) string {
	if c == nil || c.Request == nil || c.Request.URL == nil {
		return ""
	}
	return c.Request.URL.Query().Get(name)
}

// Bind decodes the JSON request body into v. Decoding failures are
// reported as a 400 *Error.
func (c *Context) Bind(v any) error {
	if err := responder.DecodeRequestBody(c.Request, v); err != nil {
		return &Error{Status: http.StatusBadRequest, Message: "invalid request body: " + err.Error(), Err: err}
	}
	return nil
}

type pathParamsKey struct{}

// WithPathParams returns a copy of r carrying the given path parameters.
// Host adapters call it before invoking the route handler.
func WithPathParams(r *http.Request, params map[string]string) *http.Request {
	if r == nil || len(params) == 0 {
		return r
	}
	return r.WithContext(context.WithValue(r.Context(), pathParamsKey{}, params))
}

// PathParams returns the path parameters attached by the host adapter.
func PathParams(r *http.Request) map[string]string {
	if r == nil {
		return nil
	}
	params, _ := r.Context().Value(pathParamsKey{}).(map[string]string)
	return params
}
