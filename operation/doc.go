// Package operation registers handlers for the operations of an OpenAPI
// document on a host router.
//
// Init resolves the document once. Registry.Activate then registers the
// static API map on a Host and returns a Handle for further registrations.
// Each route runs the optional global middleware, then the handler, and
// writes the handler result as JSON with the first 2xx status the
// operation declares. Failures are logged and rendered either by a custom
// ErrorHandler or as {"message": ...} with the status carried by *Error.
//
// Hosts receive route patterns with colon placeholders (/items/:id).
// ServeMuxHost, MuxHost and GinHost adapt that syntax to net/http,
// gorilla/mux and gin, and expose path parameters through PathParams.
package operation
