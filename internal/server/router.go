package server

import (
	"net/http"
	"strings"
)

// BasicRouter is a small [Router] over [http.ServeMux] that wraps every
// registered handler with the middleware stack.
type BasicRouter struct {
	mux         *http.ServeMux
	middlewares []Middleware
}

// NewBasicRouter creates an empty [BasicRouter].
func NewBasicRouter() *BasicRouter {
	return &BasicRouter{mux: http.NewServeMux()}
}

// Use appends middleware to the stack. Middleware added first runs outermost.
func (r *BasicRouter) Use(middleware ...Middleware) {
	r.middlewares = append(r.middlewares, middleware...)
}

// Handle registers handler for path, rejecting other methods with 405.
func (r *BasicRouter) Handle(method, path string, handler http.Handler) {
	wrapped := r.Apply(handler)

	r.mux.HandleFunc(path, func(w http.ResponseWriter, req *http.Request) {
		if !strings.EqualFold(req.Method, method) {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		wrapped.ServeHTTP(w, req)
	})
}

// Handler registers handler under every route it reports via [Handler.Routes].
func (r *BasicRouter) Handler(handler Handler) {
	wrapped := r.Apply(handler)
	for _, route := range handler.Routes() {
		r.mux.Handle(route, wrapped)
	}
}

// ServeHTTP implements [http.Handler] for the entire router.
func (r *BasicRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Apply wraps handler with the middleware stack, last added innermost.
func (r *BasicRouter) Apply(handler http.Handler) http.Handler {
	for i := len(r.middlewares) - 1; i >= 0; i-- {
		handler = r.middlewares[i](handler)
	}
	return handler
}
