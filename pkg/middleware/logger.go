package middleware

import (
	"net/http"
	"time"

	"github.com/shashiranjanraj/vastra/pkg/logger"
	"github.com/shashiranjanraj/vastra/pkg/reqid"
)

// responseWriter captures the status code for the access log line.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Logger writes one access-log line per request and seeds the context
// with a logger pre-tagged with the request_id, so every service log
// under this request correlates. Wire reqid.Middleware() before it.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		reqLog := logger.L.With("request_id", reqid.FromCtx(r.Context()))
		r = r.WithContext(logger.InjectLogger(r.Context(), reqLog))

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		reqLog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration", time.Since(start).String(),
			"ip", clientIP(r),
		)
	})
}
