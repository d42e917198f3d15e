package api

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"customerapi/pkg/otel"
)

type ctxKey int

const requestIDKey ctxKey = 1

// statusResponseWriter captures the response status for logging and
// metrics, since http.ResponseWriter does not expose it.
type statusResponseWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusResponseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// traceMiddleware seeds the request context with the tracer so handlers can
// open spans via otel.AddSpan.
func (s *Server) traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.InjectTracing(r.Context(), s.tracer)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestIDMiddleware assigns a request id when the client did not send one
// and reflects it on the response.
func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// logMiddleware writes one line per request once the handler finished.
func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		srw := &statusResponseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(srw, r)

		ctx := r.Context()
		id, _ := ctx.Value(requestIDKey).(string)
		s.log.Info(ctx, "request completed",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", srw.status,
			"since", time.Since(start).String(),
		)
	})
}
