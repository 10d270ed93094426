package server

import (
	"net/http"
)

// Middleware wraps an http.Handler with additional behavior such as request
// logging.
type Middleware func(http.Handler) http.Handler

// Handler is an http.Handler that knows which path patterns it serves, so
// routers can register it without a separate route table.
type Handler interface {
	http.Handler
	Routes() []string
}

// Router registers handlers and middleware and serves as the top-level
// http.Handler for the proxy.
type Router interface {
	Use(middleware ...Middleware)
	Handle(method, path string, handler http.Handler)
	Handler(handler Handler)
	ServeHTTP(w http.ResponseWriter, r *http.Request)
}
