package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cineflixx/cfx/internal/shared"
)

// Logging returns a [Middleware] that logs method, path, status, and duration
// for every request.
func Logging(logger *log.Logger) Middleware {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", time.Since(start),
			)
		})
	}
}

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
