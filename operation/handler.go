package operation

import "net/http"

// Handler serves one operation. The returned value is written as the JSON
// response body.
type Handler func(ctx *Context) (any, error)

// GlobalMiddleware runs before every handler. Its result is stored in
// Context.Global.
type GlobalMiddleware func(ctx *Context) (any, error)

// ErrorHandler takes over the response when the global middleware or the
// handler fails. route is the http.Handler registered for the operation.
type ErrorHandler func(err error, ctx *Context, route http.Handler)

// API maps path templates to upper- or lower-case method names to handlers.
type API map[string]map[string]Handler

// Result lets a handler choose the response status explicitly.
type Result struct {
	Status int
	Body   any
}

// Reply builds a Result. A zero status falls back to the inferred one.
func Reply(status int, body any) Result {
	return Result{Status: status, Body: body}
}

// WithMiddleware runs mw before controller and hands its result to the
// controller, both as the typed argument and in Context.Middleware of the
// copy the controller receives.
func WithMiddleware[M any](mw func(ctx *Context) (M, error), controller func(ctx *Context, m M) (any, error)) Handler {
	return func(ctx *Context) (any, error) {
		result, err := mw(ctx)
		if err != nil {
			return nil, err
		}
		augmented := *ctx
		augmented.Middleware = result
		return controller(&augmented, result)
	}
}

// Typed adapts a function taking a decoded JSON request body. Operations
// without a body can use struct{} as Req and skip decoding.
func Typed[Req, Resp any](fn func(ctx *Context, req Req) (Resp, error)) Handler {
	return func(ctx *Context) (any, error) {
		var req Req
		if _, empty := any(req).(struct{}); !empty {
			if err := ctx.Bind(&req); err != nil {
				return nil, err
			}
		}
		return fn(ctx, req)
	}
}
