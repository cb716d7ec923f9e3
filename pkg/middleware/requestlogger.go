package middleware

import (
	"log/slog"
	"net/http"

	"github.com/Taqinou/enzo-gazzoli-portfolio/pkg/logger"
)

// RequestLogger stores a request-scoped logger in the context, enriched with
// the correlation, session, trace and span IDs plus the authenticated
// subject. Handlers retrieve it with logger.FromContext.
//
// Mount it after RequestLogging and Tracing so their IDs are present.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if id := r.Header.Get(SessionHeader); id != "" && validCorrelationID(id) {
				ctx = logger.WithSessionID(ctx, id)
			}

			enriched := logger.WithContext(ctx, base)
			if sub := SubjectFromContext(ctx); sub != "" {
				enriched = enriched.With(slog.String("subject", sub))
			}

			ctx = logger.NewContext(ctx, enriched)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionHeader lets the front-end tag requests with its quote session so
// contact submissions can be correlated with the simulator state.
const SessionHeader = "X-Quote-Session"
