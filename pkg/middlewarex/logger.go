package middlewarex

import (
	"log/slog"
	"net/http"

	"gb_market/pkg/contextx"
	"gb_market/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Logger puts a request scoped logger into the context. It must run after TraceID.
func Logger(base *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			log := base.With(
				slog.String(logx.FieldHTTPMethod, r.Method),
				slog.String(logx.FieldURL, r.URL.Path),
				slog.String(logx.FieldIP, r.RemoteAddr),
			)

			if traceID, err := contextx.TraceIDFromContext(ctx); err == nil {
				log = log.With(slog.String(logx.FieldTraceID, traceID.String()))
			}

			next.ServeHTTP(w, r.WithContext(contextx.WithLogger(ctx, log)))
		})
	}
}
