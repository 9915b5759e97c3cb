// Package server provides HTTP routing, middleware, and a stub jam session backend.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Stub Backend
//
// [StubBackend] answers the four jam session endpoints with canned JSON so the
// client can be exercised without a microphone or synthesizer. It can be told
// to reject every request with a fixed error message.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
