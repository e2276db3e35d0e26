package operation

import (
	"log/slog"
	"net/http"

	"github.com/drblury/opweaver/responder"
)

// Option configures Init.
type Option func(*Options)

// Options is the configuration a Registry was built from. Handle.Options
// returns it unchanged.
type Options struct {
	Spec             SpecLoader
	BaseURI          string
	API              API
	ErrorHandler     ErrorHandler
	GlobalMiddleware GlobalMiddleware
	Logger           *slog.Logger
	Responder        *responder.Responder
}

func defaultOptions() *Options {
	return &Options{
		Logger: slog.Default(),
	}
}

// WithSpec sets the loader for the OpenAPI document. It is required.
func WithSpec(loader SpecLoader) Option {
	return func(o *Options) {
		o.Spec = loader
	}
}

// WithBaseURI prefixes every registered route. A trailing slash is
// ignored when routes are built; Options keeps the value as given.
func WithBaseURI(baseURI string) Option {
	return func(o *Options) {
		o.BaseURI = baseURI
	}
}

// WithAPI sets the handlers registered by Activate.
func WithAPI(api API) Option {
	return func(o *Options) {
		o.API = api
	}
}

// WithErrorHandler replaces the default {"message"} error response.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(o *Options) {
		o.ErrorHandler = handler
	}
}

// WithGlobalMiddleware installs a function run before every handler.
func WithGlobalMiddleware(mw GlobalMiddleware) Option {
	return func(o *Options) {
		o.GlobalMiddleware = mw
	}
}

// WithLogger sets the logger receiving a record for every failed request.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

// WithResponder overrides the responder used to write bodies. By default
// one is created around the configured logger.
func WithResponder(r *responder.Responder) Option {
	return func(o *Options) {
		o.Responder = r
	}
}

// ProblemErrorHandler renders failures as RFC 9457 problem documents
// through r instead of the {"message"} body. The document carries the
// trace id of the failure already logged by the registry.
func ProblemErrorHandler(r *responder.Responder) ErrorHandler {
	return func(err error, ctx *Context, _ http.Handler) {
		status, message := describe(err)
		r.RespondProblem(ctx.Response, ctx.Request, status, message, ctx.TraceID)
	}
}
