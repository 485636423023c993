// Package middleware provides HTTP middleware for the API.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/lunarhall/taskdeck-api/internal/api/shared"
	"github.com/lunarhall/taskdeck-api/internal/platform/logger"
)

// NewTraceMiddleware returns middleware that adds a trace ID to the
// request context and stores a trace-scoped logger alongside it, so
// downstream handlers and stores log with the trace ID attached.
// It should be applied early in the middleware chain.
func NewTraceMiddleware(baseLogger *slog.Logger) func(http.Handler) http.Handler {
	if baseLogger == nil {
		panic("nil logger passed to NewTraceMiddleware")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())
			traceID := shared.GetTraceID(ctx)

			log := baseLogger.With(slog.String("trace_id", traceID))
			ctx = logger.WithLogger(ctx, log)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
