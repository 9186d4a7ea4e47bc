package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/condosys/condo-management/pkg/logger"
)

type requestIDKey struct{}

// RequestID assigns a trace id to every request, propagating an inbound
// X-Trace-ID when the caller supplied one.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get("X-Trace-ID")
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := context.WithValue(r.Context(), requestIDKey{}, traceID)
		ctx = logger.With(ctx, "traceID", traceID)

		w.Header().Set("X-Trace-ID", traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFromContext returns the trace id assigned by RequestID, if any.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
