// Package server provides HTTP routing, middleware, and the fail-soft movie proxy endpoint.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers so that the first middleware added runs outermost, following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Movies Proxy
//
// [MoviesHandler] serves GET /api/movies, forwarding {query, page} to the
// configured catalog and echoing the page shape verbatim. Any source-side
// failure is substituted with an empty-results page and a 200 status; the
// endpoint never propagates an error status to its callers.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
