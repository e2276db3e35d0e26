package router

import (
	"log/slog"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/justinas/alice"
)

// Option configures the router via the functional options pattern.
type Option func(*options)

type options struct {
	config         Config
	logger         *slog.Logger
	validationSpec *openapi3.T
	prepend        []alice.Constructor
	append         []alice.Constructor
	enableCORS     bool
	enableTimeout  bool
	enableLogging  bool
}

func defaultOptions() *options {
	return &options{
		config:        Config{Timeout: 30 * time.Second},
		logger:        slog.Default(),
		enableCORS:    true,
		enableTimeout: true,
		enableLogging: true,
	}
}

func (o *options) chain() alice.Chain {
	chain := alice.New(o.prepend...)
	if o.enableLogging && o.logger != nil {
		chain = chain.Append(loggingMiddleware(o.logger, o.config.QuietdownRoutes, o.config.HideHeaders))
	}
	if o.enableCORS && len(o.config.CORS.Origins) > 0 {
		chain = chain.Append(corsMiddleware(o.config.CORS))
	}
	if o.config.RateLimit.RequestsPerSecond > 0 {
		chain = chain.Append(rateLimitMiddleware(o.config.RateLimit))
	}
	if o.enableTimeout && o.config.Timeout > 0 {
		chain = chain.Append(timeoutMiddleware(o.config.Timeout))
	}
	if o.validationSpec != nil {
		chain = chain.Append(RequestValidator(o.validationSpec))
	}
	return chain.Append(o.append...)
}

// WithConfig replaces the router configuration with the provided value.
func WithConfig(cfg Config) Option {
	configCopy := sanitizeConfig(cfg)
	return func(o *options) {
		o.config = configCopy
	}
}

// WithLogger provides the structured logger used by the logging middleware.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRequestValidation validates every request against doc before it
// reaches the routes. Operation handlers do not validate on their own, so
// this is the place to opt in.
func WithRequestValidation(doc *openapi3.T) Option {
	return func(o *options) {
		o.validationSpec = doc
	}
}

// WithMiddlewares prepends custom middlewares ahead of the default chain.
func WithMiddlewares(middlewares ...alice.Constructor) Option {
	return func(o *options) {
		o.prepend = append(o.prepend, middlewares...)
	}
}

// WithTrailingMiddlewares appends middlewares after the default chain.
func WithTrailingMiddlewares(middlewares ...alice.Constructor) Option {
	return func(o *options) {
		o.append = append(o.append, middlewares...)
	}
}

// WithoutCORSMiddleware disables the CORS middleware regardless of configuration.
func WithoutCORSMiddleware() Option {
	return func(o *options) {
		o.enableCORS = false
	}
}

// WithoutTimeoutMiddleware disables the timeout middleware.
func WithoutTimeoutMiddleware() Option {
	return func(o *options) {
		o.enableTimeout = false
	}
}

// WithoutLoggingMiddleware disables the logging middleware.
func WithoutLoggingMiddleware() Option {
	return func(o *options) {
		o.enableLogging = false
	}
}
