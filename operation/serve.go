package operation

import (
	"log/slog"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/drblury/opweaver/responder"
)

type operationRoute struct {
	registry *Registry
	path     string
	method   string
	op       *openapi3.Operation
	status   int
	handler  Handler
}

func (rt *operationRoute) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	reg := rt.registry
	ctx := &Context{
		Request:   r,
		Response:  w,
		Path:      rt.path,
		Method:    rt.method,
		Operation: rt.op,
		Spec:      reg.spec,
	}

	body, err := rt.run(ctx)
	if err != nil {
		rt.fail(ctx, err)
		return
	}

	status := rt.status
	if result, ok := body.(Result); ok {
		if result.Status != 0 {
			status = result.Status
		}
		body = result.Body
	}
	reg.responder.RespondWithJSON(w, r, status, body)
}

func (rt *operationRoute) run(ctx *Context) (any, error) {
	if mw := rt.registry.opts.GlobalMiddleware; mw != nil {
		global, err := mw(ctx)
		if err != nil {
			return nil, err
		}
		ctx.Global = global
	}
	return rt.handler(ctx)
}

func (rt *operationRoute) fail(ctx *Context, err error) {
	reg := rt.registry
	status, message := describe(err)
	ctx.TraceID = responder.NewTraceID()
	reg.opts.Logger.ErrorContext(ctx.Context(), "operation failed",
		slog.String("traceId", ctx.TraceID),
		slog.String("method", rt.method),
		slog.String("path", rt.path),
		slog.Int("status", status),
		slog.Any("error", err),
	)

	if eh := reg.opts.ErrorHandler; eh != nil {
		eh(err, ctx, rt)
		return
	}
	reg.responder.RespondMessage(ctx.Response, ctx.Request, status, message)
}
