package router

import (
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	oapiMW "github.com/oapi-codegen/nethttp-middleware"
	"golang.org/x/time/rate"
)

// New wraps routes with the configured middleware chain. Middlewares
// added with WithMiddlewares run first, then logging, CORS, rate limiting,
// timeout and validation, then WithTrailingMiddlewares.
func New(routes http.Handler, opts ...Option) http.Handler {
	if routes == nil {
		panic("router: handler cannot be nil")
	}

	settings := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(settings)
		}
	}
	return settings.chain().Then(routes)
}

// RequestValidator validates requests against doc. Requests that match no
// operation of doc are rejected with 404, so it should only wrap handlers
// serving the operations of doc.
func RequestValidator(doc *openapi3.T) func(http.Handler) http.Handler {
	// Servers are dropped so validation does not depend on the host the
	// service is reached through.
	filtered := *doc
	filtered.Servers = nil

	return oapiMW.OapiRequestValidatorWithOptions(&filtered, &oapiMW.Options{
		Options: openapi3filter.Options{
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		},
	})
}

func loggingMiddleware(logger *slog.Logger, quietdownRoutes, hideHeaders []string) func(http.Handler) http.Handler {
	quiet := cloneStrings(quietdownRoutes)
	redacted := cloneStrings(hideHeaders)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if slices.Contains(quiet, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			headers := r.Header.Clone()
			redactHeaders(headers, redacted)

			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			logger.LogAttrs(r.Context(), slog.LevelDebug, "request",
				slog.String("path", r.URL.Path),
				slog.String("method", r.Method),
				slog.Any("header", headers),
				slog.Int("status", rec.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (s *statusRecorder) WriteHeader(status int) {
	if !s.wroteHeader {
		s.status = status
		s.wroteHeader = true
	}
	s.ResponseWriter.WriteHeader(status)
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

func corsMiddleware(cfg CORSConfig) func(http.Handler) http.Handler {
	methods := strings.Join(cfg.Methods, ",")
	headers := strings.Join(cfg.Headers, ",")
	origins := cloneStrings(cfg.Origins)
	wildcard := slices.Contains(origins, "*")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			// A wildcard is never reflected when credentials are allowed.
			switch {
			case slices.Contains(origins, origin):
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
				if cfg.AllowCredentials {
					w.Header().Set("Access-Control-Allow-Credentials", "true")
				}
			case wildcard && !cfg.AllowCredentials:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func rateLimitMiddleware(cfg RateLimitConfig) func(http.Handler) http.Handler {
	burst := cfg.Burst
	if burst <= 0 {
		burst = max(1, int(cfg.RequestsPerSecond))
	}
	limiter := rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	retryAfter := strconv.Itoa(max(1, int(math.Ceil(1/cfg.RequestsPerSecond))))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Retry-After", retryAfter)
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func timeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, "Timeout")
	}
}

func redactHeaders(headers http.Header, hideHeaders []string) {
	for _, header := range hideHeaders {
		canonical := http.CanonicalHeaderKey(header)
		values, exists := headers[canonical]
		if !exists {
			continue
		}

		redactedLen := 0
		for _, value := range values {
			redactedLen += len(value)
		}
		headers[canonical] = []string{fmt.Sprintf("[REDACTED - %d bytes]", redactedLen)}
	}
}
