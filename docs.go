// Package opweaver bundles helpers for serving an OpenAPI document as a Go
// HTTP API. The document is the source of truth for routes and default
// response codes; handlers are plain functions returning a body or an error.
//
// # Packages
//
//   - operation: loads the document once, registers handlers for its
//     operations on a host router (net/http ServeMux, gorilla/mux or gin) and
//     runs the global middleware, handler and response for every request.
//   - compose: Sequence, Parallel and Retry for combining context-aware
//     steps inside handlers and at startup.
//   - responder: JSON bodies, {"message"} errors and problem details with
//     trace ids.
//   - router: the outer middleware chain (logging, CORS, rate limiting,
//     timeouts and optional request validation).
//   - info: status, health, version and OpenAPI document endpoints.
//   - probe: readiness checks for ping functions, MongoDB and the registry.
//   - jsonutil: thin sonic wrappers.
//
// # Quick Start
//
//	reg, err := operation.Init(ctx,
//	    operation.WithSpec(operation.FromFile("openapi.yaml")),
//	    operation.WithAPI(operation.API{
//	        "/pets/{id}": {"get": getPet},
//	    }),
//	    operation.WithLogger(logger),
//	)
//	if err != nil {
//	    return err
//	}
//
//	mux := http.NewServeMux()
//	handle, err := reg.Activate(operation.ServeMuxHost(mux))
//	if err != nil {
//	    return err
//	}
//	_ = handle.Register(operation.ServeMuxHost(mux), "/pets", "post", createPet)
//
//	http.ListenAndServe(":8080", router.New(mux, router.WithLogger(logger)))
//
// The weaverd command wires all packages together around an in-memory items
// catalogue.
package opweaver
